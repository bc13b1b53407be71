package codec_test

import (
	"errors"
	"io"
	mathrand "math/rand"
	"sync"
	"testing"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/codec"
	bvtesting "github.com/dargueta/bvcodec/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T, maxSize int) *codec.Codec {
	c, err := codec.New(bvcodec.Options{MaxInputSize: maxSize})
	require.NoError(t, err)
	return c
}

func TestNew__InvalidOptions(t *testing.T) {
	c, err := codec.New(bvcodec.Options{})
	assert.ErrorIs(t, err, bvcodec.ErrInvalidArgument)
	assert.Nil(t, c)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, bvcodec.DefaultOptions(), codec.Default().Options())
}

func TestRunLength(t *testing.T) {
	c := newCodec(t, 4)

	gaps, err := c.RunLengthEncode([]byte{1, 5, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []uint64{8, 6, 2, 6, 8, 2, 1, 1, 1, 1, 1, 1, 1, 1}, gaps)

	decoded, err := c.RunLengthDecode(gaps)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 5, 4, 5}, decoded)

	_, err = c.RunLengthEncode(make([]byte, 5))
	assert.ErrorIs(t, err, bvcodec.ErrInputTooLarge)
}

func TestGolomb(t *testing.T) {
	c := newCodec(t, 4)

	encoded, err := c.GolombEncode([]byte{1, 5, 4, 5})
	require.NoError(t, err)
	assert.Equal(
		t,
		codec.Encoded{Data: []byte{0xb9, 0x33, 0x64, 0x00, 0x00, 0x00}, Param: 4},
		encoded)

	decoded, err := c.GolombDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 5, 4, 5}, decoded)
}

func TestGolombDecode__OutputExceedsLimit(t *testing.T) {
	large := newCodec(t, 64)
	small := newCodec(t, 8)

	encoded, err := large.GolombEncode(bvtesting.SetBits(64, 5, 300))
	require.NoError(t, err)

	_, err = small.GolombDecode(encoded)
	assert.ErrorIs(t, err, bvcodec.ErrMalformedStream)
}

func TestEncodeFrom(t *testing.T) {
	c := newCodec(t, 1024)
	original := bvtesting.CreateSparseBitmap(mathrand.New(mathrand.NewSource(7)), 1024, 0.02)

	encoded, err := c.EncodeFrom(bvtesting.LoadBitmapStream(t, original))
	require.NoError(t, err)

	decoded, err := c.GolombDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeFrom__TooLarge(t *testing.T) {
	c := newCodec(t, 1023)
	original := bvtesting.SetBits(1024, 12)

	_, err := c.EncodeFrom(bvtesting.LoadBitmapStream(t, original))
	assert.ErrorIs(t, err, bvcodec.ErrInputTooLarge)
}

type failingReader struct{}

var errReadFailed = errors.New("read failed")

func (failingReader) Read([]byte) (int, error) {
	return 0, errReadFailed
}

func TestEncodeFrom__ReadError(t *testing.T) {
	c := codec.Default()

	_, err := c.EncodeFrom(failingReader{})
	assert.ErrorIs(t, err, errReadFailed)
}

func TestEncodeFrom__StopsAfterLimit(t *testing.T) {
	c := newCodec(t, 16)
	stream := bvtesting.LoadBitmapStream(t, bvtesting.SetBits(64, 1))

	_, err := c.EncodeFrom(stream)
	require.ErrorIs(t, err, bvcodec.ErrInputTooLarge)

	position, err := stream.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.EqualValues(t, 17, position, "read past the limit")
}

func TestCodec__Concurrent(t *testing.T) {
	c := codec.Default()

	wg := sync.WaitGroup{}
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := mathrand.New(mathrand.NewSource(seed))
			for i := 0; i < 25; i++ {
				original := bvtesting.CreateSparseBitmap(r, 1+r.Intn(2048), r.Float64())
				encoded, err := c.GolombEncode(original)
				if !assert.NoError(t, err) {
					return
				}
				decoded, err := c.GolombDecode(encoded)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, original, decoded)
			}
		}(int64(worker))
	}
	wg.Wait()
}
