package bvcodec

import "fmt"

// DefaultMaxInputSize is the largest bit vector, in bytes, accepted by default.
const DefaultMaxInputSize = 128 * 1024

// Options holds the limits every encode and decode call is checked against.
type Options struct {
	// MaxInputSize is the largest uncompressed buffer, in bytes, that will be
	// encoded or produced by decoding. It must be positive.
	MaxInputSize int
}

func DefaultOptions() Options {
	return Options{MaxInputSize: DefaultMaxInputSize}
}

// Validate returns [ErrInvalidArgument] if the options can't be used.
func (o Options) Validate() error {
	if o.MaxInputSize <= 0 {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf("maximum input size must be positive, got %d", o.MaxInputSize))
	}
	return nil
}

// CheckInputSize returns [ErrInputTooLarge] if a buffer of `size` bytes exceeds
// the configured maximum.
func (o Options) CheckInputSize(size int) error {
	return CheckInputSize(size, o.MaxInputSize)
}

// CheckInputSize is the option-free version of [Options.CheckInputSize].
func CheckInputSize(size, maxSize int) error {
	if size > maxSize {
		return ErrInputTooLarge.WithMessage(
			fmt.Sprintf("%d bytes given, limit is %d", size, maxSize))
	}
	return nil
}
