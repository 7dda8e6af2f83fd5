package eidpatt

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/sink"
	"github.com/thesyncim/eidpatt/util"
)

// Observer is called after every convergence iteration.
type Observer func(it Iteration)

type options struct {
	logger    *log.Logger
	observers []Observer
	window    int
}

// Option configures Converge.
type Option func(*options)

// WithLogger routes diagnostics to l. By default they are discarded.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers fn to be called after every iteration.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

// WithWindowSize sets the number of symbols per write.
func WithWindowSize(n int) Option {
	return func(o *options) { o.window = n }
}

// Report summarises a Converge call.
type Report struct {
	// Request is the normalised request that was run.
	Request Request

	// Quantized is set when a BFER rate was moved onto the model grid.
	Quantized *QuantizeNotice

	// Tolerance is the enforced tolerance, negative when disabled.
	// MinTolerance is the precision bound it was checked against.
	Tolerance    float64
	MinTolerance float64

	Iterations []Iteration

	// Converged is false only when a tolerance was enforced and the last
	// iteration still missed it.
	Converged bool
}

// Final returns the last iteration, whose pattern is the one left in the sink.
func (r *Report) Final() Iteration {
	if len(r.Iterations) == 0 {
		return Iteration{}
	}
	return r.Iterations[len(r.Iterations)-1]
}

// Converge regenerates the pattern until its rate is within tolerance of
// the target or MaxIterations passes have run.
//
// Every pass rewinds s, so s ends up holding the last pass, which is not
// necessarily the closest one. On a fatal error the partial report is
// returned together with the error.
func Converge(req Request, src eid.Source, s sink.Sink, opts ...Option) (*Report, error) {
	o := options{window: DefaultWindowSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	norm, notice, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	if notice != nil {
		o.logger.Warn("burst erasure rate quantized",
			"from", notice.From, "to", notice.To, "index", notice.Index)
	}

	tol, minTol, err := effectiveTolerance(norm)
	if err != nil {
		return nil, err
	}
	if tol >= 0 {
		o.logger.Info("error tolerance set", "tolerance", tol, "min", minTol)
	}
	if norm.TailStatistics {
		o.logger.Info("statistics counted on tail", "from", norm.Start, "to", norm.Length)
	} else if norm.Start > 1 {
		o.logger.Warn("statistics include the undisturbed preamble",
			"segment", norm.Length, "preamble", norm.SkipLength())
	}

	gen := &Generator{req: norm, win: NewWindow(o.window)}
	rep := &Report{Request: norm, Quantized: notice, Tolerance: tol, MinTolerance: minTol}

	for {
		if norm.Reset {
			src.Reset()
		}
		run, err := gen.Run(src, s)
		if err != nil {
			return rep, err
		}
		run.Iteration = len(rep.Iterations) + 1

		it, err := newIteration(run, norm)
		if err != nil {
			return rep, err
		}
		rep.Iterations = append(rep.Iterations, it)

		kv := []any{"iteration", run.Iteration,
			"whole_dev", norm.Rate - it.Whole, "whole_pct", 100 * it.Whole}
		if it.HasTail {
			kv = append(kv, "tail_dev", norm.Rate-it.Tail, "tail_pct", 100*it.Tail)
		}
		o.logger.Info("pattern generated", kv...)
		for _, fn := range o.observers {
			fn(it)
		}

		within := tol >= 0 && util.Abs(it.Deviation) <= tol
		if tol < 0 || within {
			rep.Converged = true
			break
		}
		if run.Iteration >= norm.MaxIterations {
			o.logger.Warn("tolerance not met",
				"iterations", run.Iteration, "tolerance", tol, "deviation", it.Deviation)
			break
		}
	}
	return rep, nil
}
