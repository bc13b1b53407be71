package testing

import (
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/bvcodec/utilities/bitcursor"
	"github.com/stretchr/testify/require"
)

// CreateRandomBitmap returns `size` bytes of uniformly random data. It is
// guaranteed to either return a valid slice or fail the test and abort.
func CreateRandomBitmap(size int, t *testing.T) []byte {
	data := make([]byte, size)

	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d random bytes", size)
	return data
}

// CreateSparseBitmap returns a bit vector of `size` bytes where every bit is set
// with probability `density`.
//
// At least one bit is always set and at least one is always clear, so the
// result can be Golomb-encoded regardless of `density`. `size` must be at
// least 1.
func CreateSparseBitmap(r *mathrand.Rand, size int, density float64) []byte {
	totalBits := size * 8
	data := bitmap.Bitmap(make([]byte, size))

	for i := 0; i < totalBits; i++ {
		if r.Float64() < density {
			data.Set(bitcursor.BitmapIndex(i), true)
		}
	}

	forced := r.Intn(totalBits)
	data.Set(bitcursor.BitmapIndex(forced), true)
	data.Set(bitcursor.BitmapIndex((forced+1)%totalBits), false)
	return data
}

// SetBits returns a bit vector of `size` bytes with exactly the given bits set,
// numbered from the most significant bit of the first byte.
func SetBits(size int, positions ...int) []byte {
	data := bitmap.Bitmap(make([]byte, size))
	for _, position := range positions {
		data.Set(bitcursor.BitmapIndex(position), true)
	}
	return data
}
