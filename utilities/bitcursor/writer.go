package bitcursor

import (
	"fmt"
	"io"

	"github.com/dargueta/bvcodec"
	"github.com/icza/bitio"
)

// Writer appends bits to an [io.Writer], most significant bit first.
type Writer struct {
	bw  *bitio.Writer
	pos Position
}

// NewWriter creates a Writer that sends its output to `out`. The final partial
// byte is only written once [Writer.Close] is called.
func NewWriter(out io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(out)}
}

// Position returns the position the next bit will be written to.
func (w *Writer) Position() Position {
	return w.pos
}

// WriteBits writes the `n` lowest bits of `v`, highest of those first. Bits of
// `v` above `n` are ignored.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if n > 64 {
		return bvcodec.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("can't write %d bits at once, maximum is 64", n))
	}
	if n == 0 {
		return nil
	}
	if n < 64 {
		v &= (uint64(1) << n) - 1
	}

	if err := w.bw.WriteBits(v, n); err != nil {
		return bvcodec.ErrAllocationFailure.Wrap(err).WithMessage(
			fmt.Sprintf("writing %d bits at %s", n, w.pos))
	}
	w.pos = w.pos.Advance(int(n))
	return nil
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit bool) error {
	if err := w.bw.WriteBool(bit); err != nil {
		return bvcodec.ErrAllocationFailure.Wrap(err).WithMessage(
			fmt.Sprintf("writing bit at %s", w.pos))
	}
	w.pos = w.pos.Advance(1)
	return nil
}

// WriteRepeated writes `count` copies of the same bit value.
func (w *Writer) WriteRepeated(bit bool, count uint64) error {
	var pattern uint64
	if bit {
		pattern = ^uint64(0)
	}

	for count > 0 {
		chunk := uint8(32)
		if count < 32 {
			chunk = uint8(count)
		}
		if err := w.WriteBits(pattern, chunk); err != nil {
			return err
		}
		count -= uint64(chunk)
	}
	return nil
}

// Close zero-pads the final byte and flushes it to the output. It does not
// close the underlying writer.
func (w *Writer) Close() error {
	if err := w.bw.Close(); err != nil {
		return bvcodec.ErrAllocationFailure.Wrap(err).WithMessage(
			fmt.Sprintf("flushing final byte at %s", w.pos))
	}
	return nil
}
