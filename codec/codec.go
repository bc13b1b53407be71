// Package codec bundles the run-length and Golomb-Rice stages behind a single
// configured object.
package codec

import (
	"fmt"
	"io"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/golomb"
	"github.com/dargueta/bvcodec/runlength"
)

// Encoded is the result of Golomb-encoding a bit vector. Both fields are
// needed to decode it.
type Encoded struct {
	Data  []byte
	Param uint32
}

// Codec applies a fixed set of [bvcodec.Options] to every call. It holds no
// mutable state and can be shared between goroutines.
type Codec struct {
	opts bvcodec.Options
}

func New(opts bvcodec.Options) (*Codec, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Codec{opts: opts}, nil
}

// Default returns a codec using [bvcodec.DefaultOptions].
func Default() *Codec {
	return &Codec{opts: bvcodec.DefaultOptions()}
}

func (c *Codec) Options() bvcodec.Options {
	return c.opts
}

// RunLengthEncode converts a bit vector to its gap sequence.
func (c *Codec) RunLengthEncode(input []byte) ([]uint64, error) {
	return runlength.Encode(input, c.opts.MaxInputSize)
}

// RunLengthDecode converts a gap sequence back to the bit vector it came from.
func (c *Codec) RunLengthDecode(gaps []uint64) ([]byte, error) {
	return runlength.Decode(gaps, c.opts.MaxInputSize)
}

func (c *Codec) GolombEncode(input []byte) (Encoded, error) {
	packed, b, err := golomb.Encode(input, c.opts.MaxInputSize)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Data: packed, Param: b}, nil
}

func (c *Codec) GolombDecode(encoded Encoded) ([]byte, error) {
	return golomb.Decode(encoded.Data, encoded.Param, c.opts.MaxInputSize)
}

// EncodeFrom reads an entire bit vector from `r` and Golomb-encodes it. No more
// than one byte past the configured maximum is ever read from `r`.
func (c *Codec) EncodeFrom(r io.Reader) (Encoded, error) {
	input, err := c.readLimited(r)
	if err != nil {
		return Encoded{}, err
	}
	return c.GolombEncode(input)
}

func (c *Codec) readLimited(r io.Reader) ([]byte, error) {
	limit := int64(c.opts.MaxInputSize) + 1
	input, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read bit vector: %w", err)
	}
	if err = c.opts.CheckInputSize(len(input)); err != nil {
		return nil, err
	}
	return input, nil
}
