package util

import "testing"

func TestAbs(t *testing.T) {
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(int64(-100)) != 100 {
		t.Error("Abs(int64(-100)) should be 100")
	}
	if Abs(-0.25) != 0.25 {
		t.Error("Abs(-0.25) should be 0.25")
	}
	if Abs(3.5) != 3.5 {
		t.Error("Abs(3.5) should be 3.5")
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{9.9, 10},
		{3.4, 3},
		{3.5, 4},
		{2.5, 3},
		{0, 0},
		{-0.5, 0},
		{-1.6, -2},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
