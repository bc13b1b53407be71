package bvcodec

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrAllocationFailure is returned when an output buffer can't be obtained or
// a fixed-size output buffer would overflow.
var ErrAllocationFailure = rootError.WithMessage("Cannot allocate output buffer")

// ErrInputTooLarge is returned when an input exceeds the configured maximum
// size. It's always detected before any processing starts.
var ErrInputTooLarge = rootError.WithMessage("Input exceeds maximum size")

// ErrDegenerateDensity is returned when the input has no set bits or no clear
// bits, so no Golomb parameter can be estimated from it.
var ErrDegenerateDensity = rootError.WithMessage("Bit density is degenerate")

// ErrMalformedStream is returned when a gap sequence or packed bitstream is
// empty, truncated, or decodes to an implausible length.
var ErrMalformedStream = rootError.WithMessage("Malformed encoded stream")

var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
