// Package eid implements the seedable error insertion device (EID) models
// that drive pattern generation.
//
// Two models are provided:
//   - Gilbert: a two-state Markov chain parameterised by a long-run rate and
//     a correlation factor gamma. It produces payload bit errors (BER) or
//     random frame erasures (FER).
//   - Burst: a table-driven burst frame erasure model with 60 severity
//     steps between 0.5% and 30%, in the style of the Bellcore model. The
//     probability that a frame is erased depends on how many frames in a row
//     have already been erased.
//
// Every Source is deterministic for a given seed. Its full internal state,
// including the random generator, can be exported and restored so that a
// later run continues the exact same stream.
package eid
