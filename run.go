package eidpatt

// Run holds the counters of one generation pass.
type Run struct {
	Iteration int   // 1-based convergence iteration
	Generated int64 // symbols written, preamble included
	Processed int64 // symbols written from Start on
	Disturbed int64 // disturbed symbols, all in the processed region
}

// WholeRate returns Disturbed/Generated.
func (r Run) WholeRate() (float64, error) {
	if r.Generated == 0 {
		return 0, ErrEmptyRun
	}
	return float64(r.Disturbed) / float64(r.Generated), nil
}

// TailRate returns Disturbed/Processed, the rate after the preamble.
func (r Run) TailRate() (float64, error) {
	if r.Processed == 0 {
		return 0, ErrEmptyTail
	}
	return float64(r.Disturbed) / float64(r.Processed), nil
}

// Rate returns TailRate when tail is set, WholeRate otherwise.
func (r Run) Rate(tail bool) (float64, error) {
	if tail {
		return r.TailRate()
	}
	return r.WholeRate()
}

// Iteration is the outcome of one convergence pass.
type Iteration struct {
	Run

	Whole float64 // whole-pattern rate
	Tail  float64 // tail-only rate; zero when HasTail is false

	HasTail bool

	// Observed is the rate the tolerance is judged on, and Deviation is
	// target minus Observed.
	Observed  float64
	Deviation float64
}

func newIteration(run Run, req Request) (Iteration, error) {
	it := Iteration{Run: run}
	var err error
	if it.Whole, err = run.WholeRate(); err != nil {
		return it, invalid(err)
	}
	if tail, err := run.TailRate(); err == nil {
		it.Tail, it.HasTail = tail, true
	} else if req.TailStatistics {
		return it, invalid(err)
	}
	if req.TailStatistics {
		it.Observed = it.Tail
	} else {
		it.Observed = it.Whole
	}
	it.Deviation = req.Rate - it.Observed
	return it, nil
}
