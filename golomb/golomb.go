package golomb

import (
	"fmt"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/runlength"
)

// Encode compresses a bit vector of at most `maxSize` bytes. It returns the
// packed bytes and the Golomb divisor that must be passed to [Decode] along
// with them.
//
// Inputs with no set bits or no clear bits fail with
// [bvcodec.ErrDegenerateDensity], since no divisor can be estimated for them.
func Encode(input []byte, maxSize int) ([]byte, uint32, error) {
	if err := bvcodec.CheckInputSize(len(input), maxSize); err != nil {
		return nil, 0, err
	}

	b, err := EstimateParameter(input)
	if err != nil {
		return nil, 0, err
	}

	gaps, err := runlength.Encode(input, maxSize)
	if err != nil {
		return nil, 0, err
	}

	packed, err := EncodeGaps(gaps, b)
	if err != nil {
		return nil, 0, err
	}
	return packed, b, nil
}

// Decode reverses [Encode]. `b` must be the divisor [Encode] returned, and
// `maxSize` bounds the size of the decoded buffer.
func Decode(packed []byte, b uint32, maxSize int) ([]byte, error) {
	gaps, err := DecodeGapsLimit(packed, b, maxSize)
	if err != nil {
		return nil, err
	}

	decoded, err := runlength.Decode(gaps, maxSize)
	if err != nil {
		return nil, fmt.Errorf(
			"unpacked %d gaps but run-length decoding failed: %w", len(gaps), err)
	}
	return decoded, nil
}
