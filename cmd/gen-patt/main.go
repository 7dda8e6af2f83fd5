// Command gen-patt generates bit error and frame erasure pattern files.
//
// Usage:
//
//	gen-patt [options] pattern-file [mode frno start state-file rate]
//	gen-patt -fer -rate 0.03 -n 10000 fer3.pat
//	gen-patt -bfer -rate 0.05 -n 20000 -tol 0 -max 20 -g192 bfer5.g192
//	gen-patt -compact -gamma 0.5 -tol 0.001 ber.pat R 50000 1 ber.sta 0.02
//
// Positional arguments, when given, override the matching options. The
// model state is loaded from and saved back to the state file (default
// "sta"), so consecutive invocations continue the same random sequence.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/thesyncim/eidpatt"
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/eid/statefile"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/internal/logging"
	"github.com/thesyncim/eidpatt/internal/report"
	"github.com/thesyncim/eidpatt/journal"
	"github.com/thesyncim/eidpatt/sink"
	"github.com/thesyncim/eidpatt/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type options struct {
	pattern   string
	mode      types.Mode
	format    g192.Format
	length    int64
	start     int64
	rate      float64
	gamma     float64
	tolerance float64
	maxIter   int
	reset     bool
	tailStat  bool
	quiet     bool
	seed      uint64
	stateFile string
	journal   string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("gen-patt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	ber := fs.Bool("ber", false, "Random bit errors, Gilbert model (default)")
	fer := fs.Bool("fer", false, "Random frame erasures, Gilbert model")
	bfer := fs.Bool("bfer", false, "Burst frame erasures, Bellcore model")
	rate := fs.Float64("rate", -1, "Desired bit error or frame erasure rate")
	gamma := fs.Float64("gamma", 0, "Correlation factor for -ber and -fer (0 to 1)")
	n := fs.Int64("n", 0, "Number of bits or frames in the pattern")
	start := fs.Int64("start", 1, "First bit or frame that may be disturbed")
	tailStat := fs.Bool("tailstat", false, "Count statistics from -start on only")
	byteFmt := fs.Bool("byte", false, "Byte-oriented G.192 softbits (default)")
	g192Fmt := fs.Bool("g192", false, "16-bit G.192 softbits")
	bitFmt := fs.Bool("bit", false, "Compact binary, one bit per symbol")
	compactFmt := fs.Bool("compact", false, "Same as -bit")
	reset := fs.Bool("reset", false, "Reset the model before every iteration")
	maxIter := fs.Int("max", eidpatt.DefaultMaxIterations, "Maximum number of iterations")
	tol := fs.Float64("tol", eidpatt.ToleranceDisabled, "Maximum deviation from the rate; 0 picks the minimum, negative runs once")
	quiet := fs.Bool("q", false, "Quiet: only print warnings and the summary")
	seed := fs.Uint64("seed", 0, "Random seed for a new model (0 picks the default)")
	stateFile := fs.String("state", "sta", "Model state file; empty disables it")
	journalPath := fs.String("journal", "", "Record the run in this SQLite journal")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	o := options{
		mode:      types.ModeBitError,
		format:    g192.FormatByte,
		length:    *n,
		start:     *start,
		rate:      *rate,
		gamma:     *gamma,
		tolerance: *tol,
		maxIter:   *maxIter,
		reset:     *reset,
		tailStat:  *tailStat,
		quiet:     *quiet,
		seed:      *seed,
		stateFile: *stateFile,
		journal:   *journalPath,
	}
	// -bfer beats -fer beats -ber; -bit and -compact beat -g192 beats -byte.
	switch {
	case *bfer:
		o.mode = types.ModeBurstFrameErasure
	case *fer:
		o.mode = types.ModeFrameErasure
	case *ber:
		o.mode = types.ModeBitError
	}
	switch {
	case *bitFmt || *compactFmt:
		o.format = g192.FormatCompact
	case *g192Fmt:
		o.format = g192.FormatWide16
	case *byteFmt:
		o.format = g192.FormatByte
	}

	pos := fs.Args()
	if len(pos) == 0 {
		fs.Usage()
		return o, errors.New("missing pattern file")
	}
	o.pattern = pos[0]
	var err error
	if len(pos) > 1 {
		if o.mode, err = types.ParseMode(pos[1]); err != nil {
			return o, err
		}
	}
	if len(pos) > 2 {
		if o.length, err = strconv.ParseInt(pos[2], 10, 64); err != nil {
			return o, fmt.Errorf("frno: %w", err)
		}
	}
	if len(pos) > 3 {
		if o.start, err = strconv.ParseInt(pos[3], 10, 64); err != nil {
			return o, fmt.Errorf("start: %w", err)
		}
	}
	if len(pos) > 4 {
		o.stateFile = pos[4]
	}
	if len(pos) > 5 {
		if o.rate, err = strconv.ParseFloat(pos[5], 64); err != nil {
			return o, fmt.Errorf("rate: %w", err)
		}
	}
	if len(pos) > 6 {
		return o, fmt.Errorf("unexpected argument %q", pos[6])
	}
	return o, nil
}

// counterer is implemented by the burst model.
type counterer interface {
	Counters() []int64
}

func run(args []string, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "gen-patt: %v\n", err)
		}
		return eidpatt.ExitUsage
	}
	logger := logging.New(stderr, "gen-patt", o.quiet)

	var saved *eid.State
	if o.stateFile != "" {
		if saved, err = statefile.Load(o.stateFile); err != nil {
			logger.Error("cannot load state", "file", o.stateFile, "err", err)
			return eidpatt.ExitIO
		}
	}
	params, restore, notice := statefile.Apply(statefile.Params{
		Mode:  o.mode,
		Rate:  o.rate,
		Gamma: o.gamma,
	}, saved)
	if o.stateFile != "" {
		logger.Info(notice, "file", o.stateFile)
	}
	if params.Rate < 0 {
		logger.Error("no rate given and no saved state to take it from")
		return eidpatt.ExitUsage
	}

	req := eidpatt.Request{
		Mode:           o.mode,
		Length:         o.length,
		Start:          o.start,
		Rate:           params.Rate,
		Gamma:          params.Gamma,
		Tolerance:      o.tolerance,
		MaxIterations:  o.maxIter,
		Reset:          o.reset,
		TailStatistics: o.tailStat,
		Format:         o.format,
	}
	norm, _, err := req.Normalize()
	if err != nil {
		logger.Error("invalid request", "err", err)
		return eidpatt.ExitCode(err)
	}

	var src eid.Source
	if restore {
		src, err = eid.Restore(*saved)
	} else {
		src, err = eid.New(eid.Config{
			Mode:       norm.Mode,
			Rate:       norm.Rate,
			Gamma:      norm.Gamma,
			BurstIndex: norm.BurstIndex,
			Seed:       o.seed,
		})
	}
	if err != nil {
		logger.Error("cannot build model", "err", err)
		return eidpatt.ExitValidation
	}

	out, err := sink.Create(o.pattern)
	if err != nil {
		logger.Error("cannot create pattern file", "err", err)
		return eidpatt.ExitIO
	}
	defer out.Close()

	opts := []eidpatt.Option{eidpatt.WithLogger(logger)}
	var jr *journal.Journal
	var session int64
	if o.journal != "" {
		if jr, err = journal.Open(o.journal); err != nil {
			logger.Error("cannot open journal", "err", err)
			return eidpatt.ExitIO
		}
		defer jr.Close()
		if session, err = jr.Begin(o.pattern, norm, o.tolerance); err != nil {
			logger.Error("cannot start journal session", "err", err)
			return eidpatt.ExitIO
		}
		opts = append(opts, eidpatt.WithObserver(jr.Observer(session, func(err error) {
			logger.Warn("journal", "err", err)
		})))
	}

	rep, err := eidpatt.Converge(req, src, out, opts...)
	if err != nil {
		logger.Error("pattern generation failed", "err", err)
		return eidpatt.ExitCode(err)
	}
	if err := out.Close(); err != nil {
		logger.Error("cannot close pattern file", "err", err)
		return eidpatt.ExitIO
	}

	if o.stateFile != "" {
		if err := statefile.Save(o.stateFile, src.Export()); err != nil {
			logger.Error("cannot save state", "err", err)
			return eidpatt.ExitIO
		}
	}
	if jr != nil {
		if err := finishJournal(jr, session, rep, o.pattern); err != nil {
			logger.Warn("journal", "err", err)
		}
	}

	sum := report.Summary{Pattern: o.pattern, StateFile: o.stateFile, Report: rep}
	if c, ok := src.(counterer); ok {
		sum.Counters = c.Counters()
	}
	fmt.Fprintln(stderr, report.Render(sum))
	return eidpatt.ExitOK
}

func finishJournal(jr *journal.Journal, session int64, rep *eidpatt.Report, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return jr.Finish(session, rep, data)
}
