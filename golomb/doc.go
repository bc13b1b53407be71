// Package golomb packs gap sequences with a Golomb-Rice code, and provides the
// whole-buffer encode and decode operations built on top of it.
//
// Each positive value v is split with the divisor b into a quotient
// q = (v-1)/b and a remainder r = v - q*b in [1, b]. The quotient is written in
// unary (q one-bits, then a zero-bit) and the remainder with a truncated binary
// code: with k = ceil(log2(b)) and d = 2^k - b, remainders up to d take k-1
// bits and the rest take k bits. When b is a power of two d is 0 and every
// remainder takes exactly k bits.
//
// The divisor is estimated from the fraction p of zero bits in the input,
// modelling gaps as geometrically distributed:
//
//	b = ceil(-ln(2) / ln(p))
//
// The divisor is not stored in the output. Callers must keep it next to the
// packed bytes and hand it back to [Decode]; decoding with a different divisor
// silently produces different output.
//
// Symbols are written back to back, most significant bit first, and the final
// byte is padded with zero bits. There is no header and no symbol count.

package golomb
