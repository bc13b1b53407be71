package compression_test

import (
	"bytes"
	"io"
	"testing"

	bvtesting "github.com/dargueta/bvcodec/testing"
	c "github.com/dargueta/bvcodec/utilities/compression"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RLETestCase struct {
	Input          []byte
	ExpectedOutput []byte
	Name           string
}

type rleFunc func(input io.Reader, output io.Writer) (int64, error)

func TestCompressRLE8__Basic(t *testing.T) {
	tests := []RLETestCase{
		{[]byte{}, []byte{}, "empty"},
		{[]byte{4, 4}, []byte{4, 4, 0}, "run with two only"},
		{[]byte{0, 1, 2, 3, 4}, []byte{0, 1, 2, 3, 4}, "no runs"},
		{[]byte{6, 1, 3, 0, 0}, []byte{6, 1, 3, 0, 0, 0}, "two at end"},
		{[]byte{6, 1, 0, 0, 0}, []byte{6, 1, 0, 0, 1}, "three at end"},
		{[]byte{9, 5, 5, 5, 5, 5, 3, 7}, []byte{9, 5, 5, 3, 3, 7}, "short run"},
		{
			[]byte{9, 5, 5, 5, 5, 5, 5, 3, 3, 3, 3, 7, 2, 6},
			[]byte{9, 5, 5, 4, 3, 3, 2, 7, 2, 6},
			"adjacent runs",
		},
		{
			bytes.Repeat([]byte{5}, 1024),
			[]byte{5, 5, 255, 5, 5, 255, 5, 5, 255, 5, 5, 251},
			"single long run",
		},
		{bytes.Repeat([]byte{8}, 257), []byte{8, 8, 255}, "257"},
		{bytes.Repeat([]byte{8}, 258), []byte{8, 8, 255, 8}, "258"},
		{bytes.Repeat([]byte{8}, 259), []byte{8, 8, 255, 8, 8, 0}, "259"},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				runCompressionTestCase(t, c.CompressRLE8, test)
			},
		)
	}
}

func TestRLE8RoundTrip(t *testing.T) {
	tests := map[string][]byte{
		"completely random": bvtesting.CreateRandomBitmap(1852, t),
		"entirely nulls":    make([]byte, 571),
		"entirely non-null": bytes.Repeat([]byte{182}, 934),
		"empty":             {},
		"single set bits":   bvtesting.SetBits(2048, 3, 9000, 16383),
	}

	for name, data := range tests {
		t.Run(
			name,
			func(t *testing.T) {
				runRoundTripTestCase(t, c.CompressRLE8, c.DecompressRLE8, data)
			},
		)
	}
}

func TestRLE8Decompress__MissingRepeatCount(t *testing.T) {
	data := []byte{9, 1, 4, 4}
	decompressed := make([]byte, 16)
	writer := bytewriter.New(decompressed)

	_, err := c.DecompressRLE8(bytes.NewReader(data), writer)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func runCompressionTestCase(t *testing.T, compress rleFunc, test RLETestCase) {
	inputBuffer := bytes.NewBuffer(test.Input)
	outputBuffer := make([]byte, len(test.ExpectedOutput)*2)
	outputWriter := bytewriter.New(outputBuffer)

	n, err := compress(inputBuffer, outputWriter)
	require.NoError(t, err)
	assert.EqualValues(t, len(test.ExpectedOutput), n, "wrong number of bytes written")
	assert.Equal(t, test.ExpectedOutput, outputBuffer[:n], "output data is wrong")
}

func runRoundTripTestCase(t *testing.T, compress, decompress rleFunc, originalData []byte) {
	inputBuffer := bytes.NewBuffer(originalData)

	// If the source data is sufficiently random, the "compressed" data can
	// actually be larger than the input.
	compressedBuffer := make([]byte, len(originalData)*2)
	compressedWriter := bytewriter.New(compressedBuffer)

	n, err := compress(inputBuffer, compressedWriter)
	require.NoError(t, err, "unexpected error while compressing")
	t.Logf("compressed %d to %d", len(originalData), n)

	outputBuffer := make([]byte, len(originalData))
	outputWriter := bytewriter.New(outputBuffer)
	compressedReader := bytes.NewReader(compressedBuffer[:n])

	n, err = decompress(compressedReader, outputWriter)
	require.NoError(t, err, "unexpected error while decompressing")
	assert.EqualValues(t, len(originalData), n, "decompressed size is wrong")
	assert.Equal(t, originalData, outputBuffer, "decompressed data doesn't match")
}
