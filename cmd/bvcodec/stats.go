package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/codec"
	"github.com/dargueta/bvcodec/golomb"
	"github.com/dargueta/bvcodec/runlength"
	"github.com/dargueta/bvcodec/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// VectorStats is one row of the `stats` command's output. Sizes are in bytes.
// Golomb columns are zero when the vector's density is degenerate.
type VectorStats struct {
	File        string  `csv:"file"`
	Size        int     `csv:"size"`
	SetBits     int     `csv:"set_bits"`
	ZeroDensity float64 `csv:"zero_density"`
	Param       uint32  `csv:"param"`
	Gaps        int     `csv:"gaps"`
	Golomb      int     `csv:"golomb"`
	Zlib        int     `csv:"zlib"`
	Zstd        int     `csv:"zstd"`
	RLE8Zlib    int     `csv:"rle8_zlib"`
	RLE90       int     `csv:"rle90"`
}

func computeStats(bvc *codec.Codec, name string, data []byte) (VectorStats, error) {
	stats := VectorStats{
		File:    name,
		Size:    len(data),
		SetBits: runlength.CountSetBits(data),
		Gaps:    runlength.EncodedLength(data),
	}

	density, err := golomb.EstimateDensity(data)
	if err == nil {
		stats.ZeroDensity = density
		encoded, err := bvc.GolombEncode(data)
		if err != nil {
			return stats, err
		}
		stats.Param = encoded.Param
		stats.Golomb = len(encoded.Data)
	} else if !errors.Is(err, bvcodec.ErrDegenerateDensity) {
		return stats, err
	} else if stats.SetBits == 0 {
		stats.ZeroDensity = 1
	}

	sizes := map[compression.Compressor]*int{
		compression.Zlib:     &stats.Zlib,
		compression.Zstd:     &stats.Zstd,
		compression.RLE8Zlib: &stats.RLE8Zlib,
		compression.RLE90:    &stats.RLE90,
	}
	for compressor, size := range sizes {
		compressed, err := compression.Compress(compressor, data, compression.DefaultLevel)
		if err != nil {
			return stats, err
		}
		*size = len(compressed)
	}
	return stats, nil
}

func readVector(path string, maxSize int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for reading: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if err = bvcodec.CheckInputSize(len(data), maxSize); err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return data, nil
}

func printStats(c *cli.Context, logger *logrus.Logger) error {
	if c.NArg() == 0 {
		return bvcodec.ErrInvalidArgument.WithMessage("no files given")
	}

	bvc, err := newCodec(c)
	if err != nil {
		return err
	}

	rows := make([]VectorStats, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := readVector(path, bvc.Options().MaxInputSize)
		if err != nil {
			return err
		}

		row, err := computeStats(bvc, path, data)
		if err != nil {
			return fmt.Errorf("failed to compute statistics for %q: %w", path, err)
		}
		logger.WithFields(logrus.Fields{
			"input":  path,
			"bytes":  row.Size,
			"param":  row.Param,
			"packed": row.Golomb,
		}).Debug("computed statistics")
		rows = append(rows, row)
	}

	output, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fmt.Errorf("failed to format statistics: %w", err)
	}
	_, err = fmt.Fprint(c.App.Writer, output)
	return err
}
