package main

import (
	"bytes"
	"io"
	mathrand "math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/codec"
	bvtesting "github.com/dargueta/bvcodec/testing"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp runs the CLI with the given arguments and returns what it printed.
func runApp(t *testing.T, args ...string) (string, error) {
	stdout := bytes.Buffer{}
	app := newApp(&stdout, newLogger(io.Discard))
	err := app.Run(append([]string{"bvcodec"}, args...))
	return stdout.String(), err
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEncodeDecode(t *testing.T) {
	original := bvtesting.CreateSparseBitmap(mathrand.New(mathrand.NewSource(3)), 2048, 0.02)
	inputPath := writeTempFile(t, "vector.bin", original)
	dir := t.TempDir()
	packedPath := filepath.Join(dir, "vector.gr")
	outputPath := filepath.Join(dir, "vector.out")

	stdout, err := runApp(t, "encode", inputPath, packedPath)
	require.NoError(t, err)
	param := strings.TrimSpace(stdout)
	require.NotEmpty(t, param)

	_, err = runApp(t, "decode", "--param", param, packedPath, outputPath)
	require.NoError(t, err)

	decoded, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncode__ReferenceVector(t *testing.T) {
	inputPath := writeTempFile(t, "vector.bin", []byte{1, 5, 4, 5})
	packedPath := filepath.Join(t.TempDir(), "vector.gr")

	stdout, err := runApp(t, "encode", inputPath, packedPath)
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	packed, err := os.ReadFile(packedPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xb9, 0x33, 0x64, 0x00, 0x00, 0x00}, packed)
}

func TestEncode__MaxSizeOverridesProfile(t *testing.T) {
	inputPath := writeTempFile(t, "vector.bin", bvtesting.SetBits(64, 10))
	packedPath := filepath.Join(t.TempDir(), "vector.gr")

	_, err := runApp(t, "--max-size", "63", "encode", inputPath, packedPath)
	assert.ErrorIs(t, err, bvcodec.ErrInputTooLarge)

	_, err = runApp(t, "--profile", "small", "encode", inputPath, packedPath)
	assert.NoError(t, err)
}

func TestEncode__Degenerate(t *testing.T) {
	inputPath := writeTempFile(t, "zeros.bin", make([]byte, 32))
	_, err := runApp(t, "encode", inputPath, filepath.Join(t.TempDir(), "out"))
	assert.ErrorIs(t, err, bvcodec.ErrDegenerateDensity)
}

func TestDecode__BadParam(t *testing.T) {
	inputPath := writeTempFile(t, "vector.gr", []byte{0xb9, 0x33, 0x64, 0x00, 0x00, 0x00})
	outputPath := filepath.Join(t.TempDir(), "out")

	_, err := runApp(t, "decode", "--param", "0", inputPath, outputPath)
	assert.ErrorIs(t, err, bvcodec.ErrInvalidArgument)

	_, err = runApp(t, "decode", inputPath, outputPath)
	assert.Error(t, err, "--param is required")
}

func TestWrongArgumentCount(t *testing.T) {
	_, err := runApp(t, "encode", "only-one")
	assert.ErrorIs(t, err, bvcodec.ErrInvalidArgument)

	_, err = runApp(t, "stats")
	assert.ErrorIs(t, err, bvcodec.ErrInvalidArgument)
}

func TestUnknownProfile(t *testing.T) {
	inputPath := writeTempFile(t, "vector.bin", []byte{1, 5, 4, 5})
	_, err := runApp(t, "--profile", "nope", "encode", inputPath, filepath.Join(t.TempDir(), "out"))
	assert.ErrorIs(t, err, bvcodec.ErrInvalidArgument)
}

func TestCompressDecompress(t *testing.T) {
	original := bvtesting.SetBits(4096, 1, 2, 3, 20000, 32767)
	inputPath := writeTempFile(t, "vector.bin", original)
	dir := t.TempDir()

	for _, name := range []string{"zlib", "zstd", "rle8+zlib", "rle90"} {
		t.Run(
			name,
			func(t *testing.T) {
				packedPath := filepath.Join(dir, name+".packed")
				outputPath := filepath.Join(dir, name+".out")

				_, err := runApp(t, "compress", "--codec", name, inputPath, packedPath)
				require.NoError(t, err)

				_, err = runApp(t, "decompress", "--codec", name, packedPath, outputPath)
				require.NoError(t, err)

				decompressed, err := os.ReadFile(outputPath)
				require.NoError(t, err)
				assert.Equal(t, original, decompressed)
			},
		)
	}
}

func TestDecompress__OutputLimit(t *testing.T) {
	inputPath := writeTempFile(t, "vector.bin", make([]byte, 8192))
	dir := t.TempDir()
	packedPath := filepath.Join(dir, "packed")

	_, err := runApp(t, "compress", inputPath, packedPath)
	require.NoError(t, err)

	_, err = runApp(t, "--max-size", "4096", "decompress", packedPath, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, bvcodec.ErrInputTooLarge)
}

func TestStats(t *testing.T) {
	sparsePath := writeTempFile(t, "sparse.bin", []byte{1, 5, 4, 5})
	zerosPath := writeTempFile(t, "zeros.bin", make([]byte, 16))

	stdout, err := runApp(t, "stats", sparsePath, zerosPath)
	require.NoError(t, err)

	var rows []VectorStats
	require.NoError(t, gocsv.UnmarshalString(stdout, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, sparsePath, rows[0].File)
	assert.Equal(t, 4, rows[0].Size)
	assert.Equal(t, 6, rows[0].SetBits)
	assert.InDelta(t, 26.0/32.0, rows[0].ZeroDensity, 1e-9)
	assert.EqualValues(t, 4, rows[0].Param)
	assert.Equal(t, 14, rows[0].Gaps)
	assert.Equal(t, 6, rows[0].Golomb)
	assert.Positive(t, rows[0].Zlib)
	assert.Positive(t, rows[0].Zstd)
	assert.Positive(t, rows[0].RLE8Zlib)
	assert.Equal(t, 4, rows[0].RLE90)

	assert.Equal(t, 16, rows[1].Size)
	assert.Equal(t, 0, rows[1].SetBits)
	assert.EqualValues(t, 0, rows[1].Param)
	assert.Equal(t, 0, rows[1].Golomb)
	assert.Equal(t, 1.0, rows[1].ZeroDensity)
}

func TestComputeStats__Dense(t *testing.T) {
	data := bytes.Repeat([]byte{0x55}, 64)
	stats, err := computeStats(codec.Default(), "dense", data)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, stats.ZeroDensity, 1e-12)
	assert.LessOrEqual(t, stats.Param, uint32(2))
	assert.Equal(t, 64*4+8, stats.Gaps)
	assert.Positive(t, stats.Golomb)
}

func TestProfiles(t *testing.T) {
	stdout, err := runApp(t, "profiles")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "slug,name,max_input_size,codec,level,notes", lines[0])
	assert.Contains(t, stdout, "default,Default,131072,zlib,-1,")
}
