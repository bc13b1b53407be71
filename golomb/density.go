package golomb

import (
	"fmt"
	"math"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/runlength"
)

// EstimateDensity returns the fraction of bits in the buffer that are zero.
// Buffers that are empty, all ones, or all zeros fail with
// [bvcodec.ErrDegenerateDensity].
func EstimateDensity(input []byte) (float64, error) {
	totalBits := len(input) * 8
	if totalBits == 0 {
		return 0, bvcodec.ErrDegenerateDensity.WithMessage("input is empty")
	}

	setBits := runlength.CountSetBits(input)
	switch setBits {
	case 0:
		return 0, bvcodec.ErrDegenerateDensity.WithMessage("no bits are set")
	case totalBits:
		return 0, bvcodec.ErrDegenerateDensity.WithMessage("every bit is set")
	}
	return float64(totalBits-setBits) / float64(totalBits), nil
}

// ParameterForDensity computes the Golomb divisor for a zero-bit fraction `p`,
// which must be strictly between 0 and 1.
func ParameterForDensity(p float64) (uint32, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, bvcodec.ErrDegenerateDensity.WithMessage(
			fmt.Sprintf("zero-bit fraction %v is not in (0, 1)", p))
	}

	b := math.Ceil(-math.Ln2 / math.Log(p))
	if b < 1 {
		b = 1
	}
	if b > math.MaxUint32 {
		return 0, bvcodec.ErrDegenerateDensity.WithMessage(
			fmt.Sprintf("zero-bit fraction %v is too close to 1", p))
	}
	return uint32(b), nil
}

// EstimateParameter returns the Golomb divisor best suited to the buffer.
func EstimateParameter(input []byte) (uint32, error) {
	p, err := EstimateDensity(input)
	if err != nil {
		return 0, err
	}
	return ParameterForDensity(p)
}
