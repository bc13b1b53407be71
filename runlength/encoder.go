package runlength

import (
	"math/bits"

	"github.com/dargueta/bvcodec"
)

// SentinelByte is the virtual byte appended to every input before encoding.
const SentinelByte = 0xff

// Encode converts a bit vector into its gap sequence. The input may be empty,
// in which case the result only describes the sentinel byte.
//
// Inputs longer than `maxSize` bytes are rejected with
// [bvcodec.ErrInputTooLarge] before any work is done.
func Encode(input []byte, maxSize int) ([]uint64, error) {
	if err := bvcodec.CheckInputSize(len(input), maxSize); err != nil {
		return nil, err
	}

	enc := newEncoder(EncodedLength(input))
	for _, v := range input {
		enc.appendByte(v)
	}
	enc.appendByte(SentinelByte)
	return enc.gaps, nil
}

// EncodedLength returns the number of gaps [Encode] produces for `input`. Every
// set bit ends exactly one gap, and the sentinel byte contributes eight more.
func EncodedLength(input []byte) int {
	return CountSetBits(input) + 8
}

// CountSetBits returns the number of bits set in the buffer.
func CountSetBits(input []byte) int {
	total := 0
	for _, v := range input {
		total += bits.OnesCount8(v)
	}
	return total
}

type encoder struct {
	gaps          []uint64
	pendingSplice bool
}

func newEncoder(expectedLength int) *encoder {
	// One extra slot for the splice marker that's overwritten by the next byte.
	return &encoder{gaps: make([]uint64, 0, expectedLength+1)}
}

func (enc *encoder) appendByte(v byte) {
	entry := Lookup(v)
	runs := entry.Lengths()

	if enc.pendingSplice {
		// The output currently ends with [..., zeroCount, 0]. Fold this byte's
		// first run into the zero count and drop the marker. If this byte
		// begins with a set bit the first run is 1, which closes the gap.
		last := len(enc.gaps) - 1
		enc.gaps[last-1] += uint64(runs[0])
		enc.gaps = enc.gaps[:last]
		runs = runs[1:]
		enc.pendingSplice = false
	}

	for _, run := range runs {
		enc.gaps = append(enc.gaps, uint64(run))
	}
	enc.pendingSplice = entry.Unterminated()
}
