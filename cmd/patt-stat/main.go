// Command patt-stat decodes an error pattern file and prints its
// disturbance rate and burst length histogram.
//
// Usage:
//
//	patt-stat -mode fer -format g192 fer.g192
//	patt-stat -mode ber -format compact -n 50000 -start 1001 ber.pat
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thesyncim/eidpatt"
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/internal/logging"
	"github.com/thesyncim/eidpatt/internal/report"
	"github.com/thesyncim/eidpatt/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("patt-stat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", "byte", "Pattern format: byte, g192, bit or compact")
	modeName := fs.String("mode", "ber", "Pattern mode: ber, fer or bfer")
	n := fs.Int64("n", 0, "Number of symbols (0 reads the whole file; required for compact)")
	start := fs.Int64("start", 1, "First symbol counted in the tail rate")
	buckets := fs.Int("buckets", eid.BurstModelSize, "Histogram size; longer bursts share the last bucket")
	if err := fs.Parse(args); err != nil {
		return eidpatt.ExitUsage
	}
	logger := logging.New(stderr, "patt-stat", false)
	if fs.NArg() != 1 {
		fs.Usage()
		return eidpatt.ExitUsage
	}
	path := fs.Arg(0)

	format, err := g192.ParseFormat(*formatName)
	if err != nil {
		logger.Error("bad -format", "err", err)
		return eidpatt.ExitUsage
	}
	if format == g192.FormatCompact && *n <= 0 {
		// The last byte may carry up to 7 padding bits that look like OK symbols.
		logger.Error("compact patterns need -n")
		return eidpatt.ExitUsage
	}
	mode, err := types.ParseMode(*modeName)
	if err != nil {
		logger.Error("bad -mode", "err", err)
		return eidpatt.ExitUsage
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("cannot read pattern", "err", err)
		return eidpatt.ExitIO
	}
	count := *n
	if count <= 0 {
		count = g192.SymbolCount(format, int64(len(data)))
	}
	if *start < 1 || *start > max(count, 1) {
		logger.Error("bad -start", "start", *start, "symbols", count)
		return eidpatt.ExitValidation
	}

	syms, err := g192.Decode(data, format, mode, int(count))
	if err != nil {
		logger.Error("cannot decode pattern", "err", err)
		if errors.Is(err, g192.ErrTruncated) {
			return eidpatt.ExitIO
		}
		return eidpatt.ExitValidation
	}

	st := report.Stats{
		Pattern:   path,
		Format:    format,
		Mode:      mode,
		Start:     *start,
		Histogram: eid.RunLengths(syms, *buckets),
	}
	st.Run.Generated = int64(len(syms))
	for i, s := range syms {
		if int64(i)+1 >= *start {
			st.Run.Processed++
		}
		if s == types.SymbolDisturbed {
			st.Run.Disturbed++
		}
	}
	fmt.Fprintln(stdout, report.RenderStats(st))
	return eidpatt.ExitOK
}
