package statefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/types"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	src, err := eid.New(eid.Config{Mode: types.ModeBurstFrameErasure, BurstIndex: 6, Seed: 77})
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		src.Next()
	}

	path := filepath.Join(t.TempDir(), "sta")
	require.NoError(t, Save(path, src.Export()))

	st, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, src.Export(), *st)

	restored, err := eid.Restore(*st)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		require.Equal(t, src.Next(), restored.Next())
	}
}

func TestLoadMissing(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sta")
	require.NoError(t, os.WriteFile(path, []byte("mode: Q\nrate: 1\n"), 0o644))
	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestApplyPrecedence(t *testing.T) {
	p := Params{Mode: types.ModeBitError, Rate: 0.01, Gamma: 0}

	got, restore, notice := Apply(p, nil)
	assert.Equal(t, p, got)
	assert.False(t, restore)
	assert.NotEmpty(t, notice)

	st := &eid.State{Mode: types.ModeBitError, Rate: 0.03, Gamma: 0.5}
	got, restore, notice = Apply(p, st)
	assert.True(t, restore)
	assert.Equal(t, 0.03, got.Rate)
	assert.Equal(t, 0.5, got.Gamma)
	assert.Contains(t, notice, "BER")

	other := &eid.State{Mode: types.ModeFrameErasure, Rate: 0.2}
	got, restore, _ = Apply(p, other)
	assert.False(t, restore)
	assert.Equal(t, p, got)

	burst := Params{Mode: types.ModeBurstFrameErasure, Rate: 0.01, BurstIndex: 2}
	got, restore, _ = Apply(burst, &eid.State{Mode: types.ModeBurstFrameErasure, Index: 9})
	assert.True(t, restore)
	assert.Equal(t, 9, got.BurstIndex)
	assert.InDelta(t, 0.045, got.Rate, 1e-12)
}
