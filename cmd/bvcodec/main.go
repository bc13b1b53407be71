package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newLogger(output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// newApp builds the command line application. Command output goes to `stdout`,
// log messages to the logger.
func newApp(stdout io.Writer, logger *logrus.Logger) *cli.App {
	return &cli.App{
		Name:   "bvcodec",
		Usage:  "Compress sparse bit vectors with a Golomb-Rice code",
		Writer: stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Value:   "default",
				Usage:   "predefined settings to start from (see the `profiles` command)",
			},
			&cli.IntFlag{
				Name:  "max-size",
				Usage: "largest uncompressed bit vector in bytes; overrides the profile",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debugging information",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Golomb-encode a bit vector and print the divisor needed to decode it",
				ArgsUsage: "INPUT OUTPUT",
				Action:    withLogger(logger, encodeFile),
			},
			{
				Name:      "decode",
				Usage:     "Decode a Golomb-encoded bit vector",
				ArgsUsage: "INPUT OUTPUT",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:     "param",
						Aliases:  []string{"b"},
						Usage:    "the divisor printed by `encode`",
						Required: true,
					},
				},
				Action: withLogger(logger, decodeFile),
			},
			{
				Name:      "stats",
				Usage:     "Print compression statistics for bit vectors as CSV",
				ArgsUsage: "FILE...",
				Action:    withLogger(logger, printStats),
			},
			{
				Name:      "compress",
				Usage:     "Compress a file with a general-purpose compressor",
				ArgsUsage: "INPUT OUTPUT",
				Flags:     compressorFlags(true),
				Action:    withLogger(logger, compressFile),
			},
			{
				Name:      "decompress",
				Usage:     "Reverse the `compress` command",
				ArgsUsage: "INPUT OUTPUT",
				Flags:     compressorFlags(false),
				Action:    withLogger(logger, decompressFile),
			},
			{
				Name:   "profiles",
				Usage:  "List the predefined profiles as CSV",
				Action: withLogger(logger, listProfiles),
			},
		},
	}
}

func compressorFlags(withLevel bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "codec",
			Usage: "compressor to use; defaults to the profile's",
		},
	}
	if withLevel {
		flags = append(flags, &cli.IntFlag{
			Name:  "level",
			Usage: "compression level; defaults to the profile's",
		})
	}
	return flags
}

type action func(c *cli.Context, logger *logrus.Logger) error

func withLogger(logger *logrus.Logger, fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		return fn(c, logger)
	}
}

func main() {
	logger := newLogger(os.Stderr)
	app := newApp(os.Stdout, logger)

	err := app.Run(os.Args)
	if err != nil {
		logger.WithError(err).Fatal("command failed")
	}
}
