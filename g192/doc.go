// Package g192 encodes error/erasure indicator streams in the three layouts
// used for bitstream impairment with G.192-style tools.
//
// # Layouts
//
//   - Wide16: every symbol is a 16-bit little-endian word. Payload bits use
//     the softbit words 0x007F (no error) and 0x0081 (bit error). Frame flags
//     use 0x6B21 (good frame) and 0x6B20 (erased frame).
//   - Byte: the low byte of the Wide16 word: 0x7F/0x81 and 0x21/0x20.
//   - Compact: hard bits, eight symbols per byte. Bit 0 holds the symbol
//     that occurs first in time; 1 means disturbed. Unused high bits of a
//     trailing partial byte are zero.
//
// An error pattern is applied by XOR-ing it with the softbits written by a
// speech encoder, or by dropping frames flagged as erased.
package g192
