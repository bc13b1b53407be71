package testing

import (
	"io"
	"testing"

	"github.com/dargueta/bvcodec/golomb"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadBitmapStream returns a seekable in-memory stream over a copy of `data`.
//
//   - Writes to the stream do not affect `data`.
//   - The stream's size is fixed to `len(data)`. Attempting to write past the
//     end of this buffer will trigger an error.
func LoadBitmapStream(t *testing.T, data []byte) io.ReadWriteSeeker {
	require.NotNil(t, data, "bitmap is nil")

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return bytesextra.NewReadWriteSeeker(dataCopy)
}

// RequireGolombRoundTrip encodes `original`, decodes the result, and fails the
// test unless the output is identical. It returns the packed bytes and the
// divisor that was used.
func RequireGolombRoundTrip(t *testing.T, original []byte, maxSize int) ([]byte, uint32) {
	packed, b, err := golomb.Encode(original, maxSize)
	require.NoError(t, err, "error while encoding")
	require.GreaterOrEqual(t, b, uint32(1), "divisor must be positive")

	decoded, err := golomb.Decode(packed, b, maxSize)
	require.NoError(t, err, "error while decoding")
	require.Equal(t, len(original), len(decoded), "decoded data length is wrong")
	require.Equal(t, original, decoded, "decoded data is wrong")
	return packed, b
}
