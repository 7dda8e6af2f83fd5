package eid

import "github.com/thesyncim/eidpatt/types"

// CounterTotal returns good + sum(k * counters[k]), the number of frames the
// counters account for. For a Burst source it equals Drawn().
func CounterTotal(counters []int64) int64 {
	if len(counters) == 0 {
		return 0
	}
	total := counters[0]
	for k := 1; k < len(counters); k++ {
		total += int64(k) * counters[k]
	}
	return total
}

// RunLengths builds counters in the Burst layout from a decoded stream.
// Bursts longer than size-1 are folded into the last bucket.
func RunLengths(symbols []types.Symbol, size int) []int64 {
	if size < 2 {
		size = 2
	}
	counters := make([]int64, size)
	run := 0
	flush := func() {
		if run == 0 {
			return
		}
		if run >= size {
			run = size - 1
		}
		counters[run]++
		run = 0
	}
	for _, s := range symbols {
		if s == types.SymbolDisturbed {
			run++
			continue
		}
		flush()
		counters[0]++
	}
	flush()
	return counters
}
