package runlength

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/utilities/bitcursor"
)

// Decode rebuilds a bit vector from its gap sequence and strips the sentinel
// byte added by [Encode].
//
// The sequence must cover a whole number of bytes and end on the sentinel
// byte, and the resulting buffer must not be larger than `maxSize` bytes.
// Anything else fails with [bvcodec.ErrMalformedStream]. A single trailing 0
// (an unspliced marker) is tolerated; zeros anywhere else are not.
func Decode(gaps []uint64, maxSize int) ([]byte, error) {
	if len(gaps) > 0 && gaps[len(gaps)-1] == 0 {
		gaps = gaps[:len(gaps)-1]
	}
	if len(gaps) == 0 {
		return nil, bvcodec.ErrMalformedStream.WithMessage("gap sequence is empty")
	}

	totalBits, err := TotalBits(gaps)
	if err != nil {
		return nil, err
	}
	if totalBits%8 != 0 {
		return nil, bvcodec.ErrMalformedStream.WithMessage(
			fmt.Sprintf("gaps cover %d bits, not a whole number of bytes", totalBits))
	}

	// Check the size before allocating anything. The last byte is the sentinel.
	outputSize := totalBits/8 - 1
	if outputSize > uint64(maxSize) {
		return nil, bvcodec.ErrMalformedStream.WithMessage(
			fmt.Sprintf(
				"gaps decode to %d bytes, limit is %d", outputSize, maxSize))
	}

	decoded := bitmap.Bitmap(make([]byte, outputSize+1))
	position := 0
	for _, gap := range gaps {
		position += int(gap)
		decoded.Set(bitcursor.BitmapIndex(position-1), true)
	}

	if decoded[outputSize] != SentinelByte {
		return nil, bvcodec.ErrMalformedStream.WithMessage(
			fmt.Sprintf(
				"final byte is %#02x, expected sentinel %#02x",
				decoded[outputSize],
				SentinelByte))
	}
	return decoded[:outputSize], nil
}

// TotalBits returns the number of bits covered by a gap sequence. Zero gaps
// are rejected with [bvcodec.ErrMalformedStream].
func TotalBits(gaps []uint64) (uint64, error) {
	total := uint64(0)
	for i, gap := range gaps {
		if gap == 0 {
			return 0, bvcodec.ErrMalformedStream.WithMessage(
				fmt.Sprintf("gap %d of %d is zero", i, len(gaps)))
		}
		if total+gap < total {
			return 0, bvcodec.ErrMalformedStream.WithMessage(
				fmt.Sprintf("gap %d overflows the bit count", i))
		}
		total += gap
	}
	return total, nil
}
