// Package eidpatt generates deterministic error and erasure patterns for
// impairing encoded speech bitstreams.
//
// A pattern is a stream of indicator symbols, one per payload bit (BER
// mode) or per frame (FER and BFER modes). Each symbol says whether the bit
// should be flipped or the frame erased. Patterns are written in one of the
// layouts of package g192 and applied to a G.192 bitstream by XOR-ing
// softbits or dropping erased frames.
//
// # Generation
//
// A Request describes the pattern: mode, length, the first symbol that may
// be disturbed, the target rate and the output format. Symbols before the
// start position form a preamble that is always written undisturbed; the
// symbol source is not consulted for it.
//
//	req := eidpatt.Request{
//	    Mode:          types.ModeFrameErasure,
//	    Length:        10000,
//	    Start:         1,
//	    Rate:          0.03,
//	    Tolerance:     eidpatt.ToleranceAuto,
//	    MaxIterations: 100,
//	    Format:        g192.FormatByte,
//	}
//	src, _ := eid.New(eid.Config{Mode: req.Mode, Rate: req.Rate})
//	out, _ := sink.Create("fer3.byte")
//	defer out.Close()
//	report, err := eidpatt.Converge(req, src, out)
//
// # Convergence
//
// Converge regenerates the whole pattern until the observed rate is within
// the tolerance of the target or MaxIterations is reached. Each iteration
// rewinds the sink, so the file always holds the last attempt. Because the
// disturbed count is an integer, a tolerance tighter than MinTolerance can
// never be met and is rejected before anything is generated.
package eidpatt
