package golomb

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/utilities/bitcursor"
	"github.com/noxer/bytewriter"
)

// divisor holds the per-stream constants of the truncated binary code.
type divisor struct {
	b uint64
	// k is ceil(log2(b)), the width of a long remainder.
	k uint8
	// d is the number of remainders that get the short (k-1 bit) code.
	d uint64
}

func newDivisor(b uint32) (divisor, error) {
	if b == 0 {
		return divisor{}, bvcodec.ErrInvalidArgument.WithMessage(
			"Golomb parameter must be at least 1")
	}

	k := uint8(bits.Len32(b - 1))
	return divisor{
		b: uint64(b),
		k: k,
		d: (uint64(1) << k) - uint64(b),
	}, nil
}

// split divides a positive value into its quotient and its remainder in [1, b].
func (dv divisor) split(v uint64) (q, r uint64) {
	q = (v - 1) / dv.b
	return q, v - q*dv.b
}

// remainderBits gives the width of the truncated binary code for `r`. With
// k == 0 (b == 1) the remainder is always 1 and takes no bits at all.
func (dv divisor) remainderBits(r uint64) uint8 {
	if dv.k == 0 {
		return 0
	}
	if r > dv.d {
		return dv.k
	}
	return dv.k - 1
}

func (dv divisor) symbolBits(v uint64) uint64 {
	q, r := dv.split(v)
	return q + 1 + uint64(dv.remainderBits(r))
}

func (dv divisor) writeSymbol(w *bitcursor.Writer, v uint64) error {
	q, r := dv.split(v)

	if err := w.WriteRepeated(true, q); err != nil {
		return err
	}
	if err := w.WriteBit(false); err != nil {
		return err
	}

	if r > dv.d {
		return w.WriteBits(r-1+dv.d, dv.remainderBits(r))
	}
	return w.WriteBits(r-1, dv.remainderBits(r))
}

func (dv divisor) readSymbol(r *bitcursor.Reader) (uint64, error) {
	q := uint64(0)
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			break
		}
		q++
	}

	x := uint64(0)
	if dv.k > 0 {
		var err error
		x, err = r.ReadBits(dv.k - 1)
		if err != nil {
			return 0, err
		}

		if x+1 > dv.d {
			low, err := r.ReadBits(1)
			if err != nil {
				return 0, err
			}
			x = (x<<1 | low) - dv.d
		}
	}
	return x + 1 + q*dv.b, nil
}

// EncodedBitLength returns the exact number of bits [EncodeGaps] writes for
// `gaps`, not counting padding.
func EncodedBitLength(gaps []uint64, b uint32) (uint64, error) {
	dv, err := newDivisor(b)
	if err != nil {
		return 0, err
	}

	total := uint64(0)
	for i, v := range gaps {
		if v == 0 {
			return 0, bvcodec.ErrMalformedStream.WithMessage(
				fmt.Sprintf("gap %d of %d is zero and can't be encoded", i, len(gaps)))
		}
		total += dv.symbolBits(v)
	}
	return total, nil
}

// EncodeGaps packs a gap sequence with the Golomb divisor `b`. The output is
// exactly as long as needed to hold every symbol, with the last byte padded
// with zero bits.
func EncodeGaps(gaps []uint64, b uint32) ([]byte, error) {
	dv, err := newDivisor(b)
	if err != nil {
		return nil, err
	}

	bitLength, err := EncodedBitLength(gaps, b)
	if err != nil {
		return nil, err
	}
	byteLength := (bitLength + 7) / 8
	if byteLength > math.MaxInt32 {
		return nil, bvcodec.ErrAllocationFailure.WithMessage(
			fmt.Sprintf("encoded output would take %d bytes", byteLength))
	}

	packed := make([]byte, byteLength)
	writer := bitcursor.NewWriter(bytewriter.New(packed))
	for i, v := range gaps {
		if err := dv.writeSymbol(writer, v); err != nil {
			return nil, fmt.Errorf("failed to write gap %d of %d: %w", i, len(gaps), err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return packed, nil
}

// DecodeGaps unpacks a gap sequence written by [EncodeGaps] with the same
// divisor `b`.
//
// Gap sequences always describe whole bytes, so decoding ends at the last
// symbol that brings the running total to a multiple of 8 bits. Only zero
// padding inside the final byte may follow it; a stream cut short anywhere
// else fails with [bvcodec.ErrMalformedStream].
func DecodeGaps(packed []byte, b uint32) ([]uint64, error) {
	return decodeGaps(packed, b, math.MaxUint64)
}

// DecodeGapsLimit is like [DecodeGaps] but fails as soon as the gaps describe
// more than `maxSize` bytes, not counting the run-length sentinel byte. This
// bounds the work done on corrupted input.
func DecodeGapsLimit(packed []byte, b uint32, maxSize int) ([]uint64, error) {
	if maxSize < 0 {
		return nil, bvcodec.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("maximum size can't be negative, got %d", maxSize))
	}
	if uint64(maxSize) >= math.MaxUint64/8-2 {
		return decodeGaps(packed, b, math.MaxUint64)
	}
	// The sentinel byte, plus the padding symbols that can follow it.
	return decodeGaps(packed, b, (uint64(maxSize)+1)*8+7)
}

func decodeGaps(packed []byte, b uint32, bitBudget uint64) ([]uint64, error) {
	dv, err := newDivisor(b)
	if err != nil {
		return nil, err
	}
	if len(packed) == 0 {
		return nil, bvcodec.ErrMalformedStream.WithMessage("packed stream is empty")
	}

	reader := bitcursor.NewReader(packed)
	gaps := make([]uint64, 0, len(packed))
	total := uint64(0)

	// Length and end bit offset of the longest prefix that ends on a byte
	// boundary.
	keepLength := 0
	keepEnd := 0

	for reader.Remaining() > 0 {
		start := reader.Position()
		inPadding := reader.OnlyPaddingLeft()

		v, err := dv.readSymbol(reader)
		if err != nil {
			if inPadding && errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("failed to read symbol %d at %s: %w", len(gaps), start, err)
		}

		total += v
		if total > bitBudget || total < v {
			return nil, bvcodec.ErrMalformedStream.WithMessage(
				fmt.Sprintf("gaps exceed the %d-bit limit at %s", bitBudget, start))
		}

		gaps = append(gaps, v)
		if total%8 == 0 {
			keepLength = len(gaps)
			keepEnd = reader.Position().Offset()
		}
	}

	if keepLength == 0 {
		return nil, bvcodec.ErrMalformedStream.WithMessage(
			"stream doesn't describe a single whole byte")
	}
	if !bitcursor.IsPadding(packed, keepEnd) {
		return nil, bvcodec.ErrMalformedStream.WithMessage(
			fmt.Sprintf(
				"stream ends at %s but is %d bytes long",
				bitcursor.PositionOf(keepEnd),
				len(packed)))
	}
	return gaps[:keepLength], nil
}
