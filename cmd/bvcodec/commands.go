package main

import (
	"fmt"
	"math"
	"os"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/codec"
	"github.com/dargueta/bvcodec/profiles"
	"github.com/dargueta/bvcodec/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// resolveProfile returns the profile selected on the command line, with any
// overriding flags applied.
func resolveProfile(c *cli.Context) (profiles.Profile, error) {
	profile, err := profiles.Get(c.String("profile"))
	if err != nil {
		return profiles.Profile{}, err
	}

	if c.IsSet("max-size") {
		profile.MaxInputSize = c.Int("max-size")
	}
	if c.IsSet("codec") {
		profile.Compressor = c.String("codec")
	}
	if c.IsSet("level") {
		profile.Level = c.Int("level")
	}
	return profile, profile.Options().Validate()
}

func newCodec(c *cli.Context) (*codec.Codec, error) {
	profile, err := resolveProfile(c)
	if err != nil {
		return nil, err
	}
	return codec.New(profile.Options())
}

func inputOutputArgs(c *cli.Context) (string, string, error) {
	if c.NArg() != 2 {
		return "", "", bvcodec.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("expected INPUT and OUTPUT, got %d arguments", c.NArg()))
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}

func encodeFile(c *cli.Context, logger *logrus.Logger) error {
	inputPath, outputPath, err := inputOutputArgs(c)
	if err != nil {
		return err
	}

	bvc, err := newCodec(c)
	if err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open file for reading: %w", err)
	}
	defer inputFile.Close()

	encoded, err := bvc.EncodeFrom(inputFile)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", inputPath, err)
	}

	if err = os.WriteFile(outputPath, encoded.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"param":  encoded.Param,
		"packed": len(encoded.Data),
	}).Debug("encoded bit vector")

	_, err = fmt.Fprintln(c.App.Writer, encoded.Param)
	return err
}

func decodeFile(c *cli.Context, logger *logrus.Logger) error {
	inputPath, outputPath, err := inputOutputArgs(c)
	if err != nil {
		return err
	}

	param := c.Uint("param")
	if param == 0 || param > math.MaxUint32 {
		return bvcodec.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("divisor must be in [1, %d], got %d", uint32(math.MaxUint32), param))
	}

	bvc, err := newCodec(c)
	if err != nil {
		return err
	}

	packed, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	decoded, err := bvc.GolombDecode(codec.Encoded{Data: packed, Param: uint32(param)})
	if err != nil {
		return fmt.Errorf("failed to decode %q: %w", inputPath, err)
	}

	logger.WithFields(logrus.Fields{
		"input": inputPath,
		"param": param,
		"bytes": len(decoded),
	}).Debug("decoded bit vector")

	if err = os.WriteFile(outputPath, decoded, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func compressFile(c *cli.Context, logger *logrus.Logger) error {
	inputPath, outputPath, err := inputOutputArgs(c)
	if err != nil {
		return err
	}

	profile, err := resolveProfile(c)
	if err != nil {
		return err
	}
	compressor, err := profile.GetCompressor()
	if err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open file for reading: %w", err)
	}
	defer inputFile.Close()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open file for writing: %w", err)
	}
	defer outputFile.Close()

	nWritten, err := compressor.CompressTo(inputFile, outputFile, profile.Level)
	if err != nil {
		return fmt.Errorf("%s compression failed: %w", compressor.Name(), err)
	}

	logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"codec":  compressor.Name(),
		"level":  profile.Level,
		"packed": nWritten,
	}).Debug("compressed file")
	return outputFile.Close()
}

func decompressFile(c *cli.Context, logger *logrus.Logger) error {
	inputPath, outputPath, err := inputOutputArgs(c)
	if err != nil {
		return err
	}

	profile, err := resolveProfile(c)
	if err != nil {
		return err
	}
	compressor, err := profile.GetCompressor()
	if err != nil {
		return err
	}

	compressed, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	decompressed, err := compression.DecompressLimit(
		compressor, compressed, profile.MaxInputSize)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"input": inputPath,
		"codec": compressor.Name(),
		"bytes": len(decompressed),
	}).Debug("decompressed file")

	if err = os.WriteFile(outputPath, decompressed, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func listProfiles(c *cli.Context, _ *logrus.Logger) error {
	all := profiles.All()
	output, err := gocsv.MarshalString(&all)
	if err != nil {
		return fmt.Errorf("failed to format profiles: %w", err)
	}

	_, err = fmt.Fprint(c.App.Writer, output)
	return err
}
