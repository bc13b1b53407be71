package bitcursor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dargueta/bvcodec"
	"github.com/icza/bitio"
)

// Reader consumes bits from a byte slice, most significant bit first. Unlike
// the underlying bit reader it never reads past the end of the slice; asking
// for more bits than remain is an [bvcodec.ErrMalformedStream] error wrapping
// [io.ErrUnexpectedEOF], and consumes nothing.
type Reader struct {
	br   *bitio.Reader
	data []byte
	pos  Position
}

func NewReader(data []byte) *Reader {
	return &Reader{
		br:   bitio.NewReader(bytes.NewReader(data)),
		data: data,
	}
}

// Position returns the position of the next bit to be read.
func (r *Reader) Position() Position {
	return r.pos
}

// Remaining gives the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos.Offset()
}

func (r *Reader) checkAvailable(n int) error {
	if n > r.Remaining() {
		return bvcodec.ErrMalformedStream.Wrap(io.ErrUnexpectedEOF).WithMessage(
			fmt.Sprintf("need %d bits at %s, only %d left", n, r.pos, r.Remaining()))
	}
	return nil
}

// ReadBits reads `n` bits and returns them as the low bits of the result, the
// first bit read being the most significant.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if n > 64 {
		return 0, bvcodec.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("can't read %d bits at once, maximum is 64", n))
	}
	if n == 0 {
		return 0, nil
	}
	if err := r.checkAvailable(int(n)); err != nil {
		return 0, err
	}

	value, err := r.br.ReadBits(n)
	if err != nil {
		return 0, bvcodec.ErrMalformedStream.Wrap(err).WithMessage(
			fmt.Sprintf("reading %d bits at %s", n, r.pos))
	}
	r.pos = r.pos.Advance(int(n))
	return value, nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if err := r.checkAvailable(1); err != nil {
		return false, err
	}

	bit, err := r.br.ReadBool()
	if err != nil {
		return false, bvcodec.ErrMalformedStream.Wrap(err).WithMessage(
			fmt.Sprintf("reading bit at %s", r.pos))
	}
	r.pos = r.pos.Advance(1)
	return bit, nil
}

// OnlyPaddingLeft returns true if every unread bit lies in the final byte and
// is zero, which is what a writer leaves behind after [Writer.Close].
func (r *Reader) OnlyPaddingLeft() bool {
	return IsPadding(r.data, r.pos.Offset())
}

// IsPadding returns true if every bit of `data` from the bit offset `offset`
// onwards lies in the final byte and is zero.
func IsPadding(data []byte, offset int) bool {
	remaining := len(data)*8 - offset
	if remaining <= 0 {
		return remaining == 0
	}
	if remaining >= 8 {
		return false
	}

	mask := byte(1<<remaining) - 1
	return data[len(data)-1]&mask == 0
}
