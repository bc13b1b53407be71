package compression

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/dargueta/bvcodec"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// DefaultLevel selects each compressor's own default level.
const DefaultLevel = -1

// Compressor is a general-purpose whole-buffer codec. Compressors are
// stateless and safe for concurrent use.
//
// Both methods return the number of bytes written to the output. If an error
// occurred, the value is undefined and should not be used.
type Compressor interface {
	Name() string
	CompressTo(input io.Reader, output io.Writer, level int) (int64, error)
	DecompressTo(input io.Reader, output io.Writer) (int64, error)
}

var registry = map[string]Compressor{}

func register(c Compressor) {
	if _, exists := registry[c.Name()]; exists {
		panic(fmt.Errorf("duplicate compressor %q", c.Name()))
	}
	registry[c.Name()] = c
}

func init() {
	register(Zlib)
	register(Zstd)
	register(RLE8Zlib)
	register(RLE90)
}

// Lookup returns the compressor registered under `name`.
func Lookup(name string) (Compressor, error) {
	c, ok := registry[name]
	if !ok {
		return nil, bvcodec.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("no compressor named %q", name))
	}
	return c, nil
}

// Names returns the names of all registered compressors in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compress is a convenience function wrapping [Compressor.CompressTo] for
// in-memory buffers.
func Compress(c Compressor, data []byte, level int) ([]byte, error) {
	var output bytes.Buffer
	_, err := c.CompressTo(bytes.NewReader(data), &output, level)
	if err != nil {
		return nil, fmt.Errorf("%s compression failed: %w", c.Name(), err)
	}
	return output.Bytes(), nil
}

// Decompress reverses [Compress]. The output size is not bounded; use
// [DecompressLimit] on untrusted input.
func Decompress(c Compressor, data []byte) ([]byte, error) {
	var output bytes.Buffer
	_, err := c.DecompressTo(bytes.NewReader(data), &output)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", c.Name(), err)
	}
	return output.Bytes(), nil
}

// DecompressLimit is like [Decompress] but fails with
// [bvcodec.ErrInputTooLarge] as soon as the output would exceed `limit` bytes.
func DecompressLimit(c Compressor, data []byte, limit int) ([]byte, error) {
	output := limitedBuffer{limit: limit}
	_, err := c.DecompressTo(bytes.NewReader(data), &output)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", c.Name(), err)
	}
	return output.buf.Bytes(), nil
}

type limitedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.limit {
		return 0, bvcodec.ErrInputTooLarge.WithMessage(
			fmt.Sprintf("decompressed data exceeds %d bytes", b.limit))
	}
	return b.buf.Write(p)
}

// countingWriter tracks how many bytes a compressing writer has emitted.
type countingWriter struct {
	w     io.Writer
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

////////////////////////////////////////////////////////////////////////////////
// zlib

type zlibCompressor struct{}

// Zlib compresses with zlib, using the same levels as compress/zlib.
var Zlib Compressor = zlibCompressor{}

func (zlibCompressor) Name() string {
	return "zlib"
}

func (zlibCompressor) CompressTo(input io.Reader, output io.Writer, level int) (int64, error) {
	counter := countingWriter{w: output}
	zw, err := zlib.NewWriterLevel(&counter, level)
	if err != nil {
		return 0, bvcodec.ErrInvalidArgument.Wrap(err)
	}

	if _, err = io.Copy(zw, input); err != nil {
		zw.Close()
		return counter.count, err
	}
	err = zw.Close()
	return counter.count, err
}

func (zlibCompressor) DecompressTo(input io.Reader, output io.Writer) (int64, error) {
	zr, err := zlib.NewReader(input)
	if err != nil {
		return 0, bvcodec.ErrMalformedStream.Wrap(err)
	}
	defer zr.Close()
	return io.Copy(output, zr)
}

////////////////////////////////////////////////////////////////////////////////
// zstd

type zstdCompressor struct{}

// Zstd compresses with Zstandard. Levels follow the zstd command line tool.
var Zstd Compressor = zstdCompressor{}

func (zstdCompressor) Name() string {
	return "zstd"
}

func (zstdCompressor) CompressTo(input io.Reader, output io.Writer, level int) (int64, error) {
	encoderLevel := zstd.SpeedDefault
	if level != DefaultLevel {
		encoderLevel = zstd.EncoderLevelFromZstd(level)
	}

	counter := countingWriter{w: output}
	zw, err := zstd.NewWriter(&counter, zstd.WithEncoderLevel(encoderLevel))
	if err != nil {
		return 0, bvcodec.ErrInvalidArgument.Wrap(err)
	}

	if _, err = io.Copy(zw, input); err != nil {
		zw.Close()
		return counter.count, err
	}
	err = zw.Close()
	return counter.count, err
}

func (zstdCompressor) DecompressTo(input io.Reader, output io.Writer) (int64, error) {
	zr, err := zstd.NewReader(input)
	if err != nil {
		return 0, bvcodec.ErrMalformedStream.Wrap(err)
	}
	defer zr.Close()
	return io.Copy(output, zr)
}

////////////////////////////////////////////////////////////////////////////////
// RLE8 + zlib

type rle8ZlibCompressor struct{}

// RLE8Zlib run-length encodes the input with RLE8, then compresses the result
// with zlib. The level is passed to zlib.
var RLE8Zlib Compressor = rle8ZlibCompressor{}

func (rle8ZlibCompressor) Name() string {
	return "rle8+zlib"
}

func (rle8ZlibCompressor) CompressTo(input io.Reader, output io.Writer, level int) (int64, error) {
	counter := countingWriter{w: output}
	zw, err := zlib.NewWriterLevel(&counter, level)
	if err != nil {
		return 0, bvcodec.ErrInvalidArgument.Wrap(err)
	}

	if _, err = CompressRLE8(input, zw); err != nil {
		zw.Close()
		return counter.count, err
	}
	err = zw.Close()
	return counter.count, err
}

func (rle8ZlibCompressor) DecompressTo(input io.Reader, output io.Writer) (int64, error) {
	zr, err := zlib.NewReader(input)
	if err != nil {
		return 0, bvcodec.ErrMalformedStream.Wrap(err)
	}
	defer zr.Close()
	return DecompressRLE8(zr, output)
}

////////////////////////////////////////////////////////////////////////////////
// RLE90

type rle90Compressor struct{}

// RLE90 is the BinHex run-length scheme on its own. It ignores the level.
var RLE90 Compressor = rle90Compressor{}

func (rle90Compressor) Name() string {
	return "rle90"
}

func (rle90Compressor) CompressTo(input io.Reader, output io.Writer, _ int) (int64, error) {
	return CompressRLE90(input, output)
}

func (rle90Compressor) DecompressTo(input io.Reader, output io.Writer) (int64, error) {
	return DecompressRLE90(input, output)
}
