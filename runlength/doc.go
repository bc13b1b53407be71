// Package runlength rewrites a bit vector as the sequence of gaps between its
// set bits, and back.
//
// Bits are numbered from the most significant bit of the first byte. Each gap
// counts the bit positions scanned since the previous set bit, including the
// set bit that ends it. The first gap is measured from the start of the
// buffer. For example, the two bytes
//
//	0010 0000  1000 0000
//
// give the gaps 3 and 6: two zeros and a one, then five zeros and a one.
//
// A bit vector doesn't usually end on a set bit, so before encoding a virtual
// byte of all ones is appended. This gives the gap sequence a well-defined end
// no matter how the real input finishes, and the decoder strips that byte
// again. One consequence is that every valid gap sequence covers a whole
// number of bytes and its last eight bits are set.
//
// Per-byte work is driven by a 256-entry lookup [Table] that lists, for every
// byte value, the runs its eight bits split into. When a byte ends in zeros,
// its entry finishes with the number of trailing zeros followed by a 0 marker,
// and the encoder splices that partial run onto the first run of the next
// byte.

package runlength
