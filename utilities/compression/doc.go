// Package compression provides general-purpose codecs to compare the Golomb
// coder against, and to shrink bit vectors that are too dense for it.
//
// A Golomb-Rice code only pays off for sparse vectors. A vector with roughly
// as many set bits as clear ones gets a divisor of 1 and packs to about the
// same size it started at, so it's worth knowing what an ordinary compressor
// would have done with it. The `stats` command of the CLI reports the sizes
// produced by every compressor here next to the Golomb size.
//
// The byte-level run-length schemes come from the image compression this
// package originally did. There are a variety of run-length encodings; RLE8
// refers to the algorithm used by the Microsoft BMP file format. A brief
// explanation: if a byte B occurs N times where N >= 2, B is written twice,
// followed by a third (unsigned) byte indicating how many additional times B
// occurred. For example:
//
//	WXXXXXXXXXXXXXXXYZZ
//	W XX 13 Y ZZ 0
//
// Runs longer than 257 bytes are split. Bit vectors with long stretches of
// zero bytes collapse well under RLE8, and zlib squeezes out what's left.
//
// RLE90 is the BinHex scheme: 0x90 is a marker, `90 N` repeats the previous
// byte N more times, and `90 00` stands for a literal 0x90.
//
// None of these formats are used by the Golomb encoder itself.
package compression
