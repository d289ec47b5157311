package bootpack

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// PackError is the error type returned by every stage of the packer. All of
// them are fatal; nothing in the pipeline retries.
type PackError interface {
	error
	WithMessage(message string) PackError
	Wrap(err error) PackError
}

type basePackError string

const rootError = basePackError("")

var ErrUsage = rootError.WithMessage("Invalid usage")
var ErrInputOpen = rootError.WithMessage("Error opening input file")
var ErrOutputOpen = rootError.WithMessage("Error opening output file")
var ErrEmptyInput = rootError.WithMessage("Input file is empty")
var ErrAllocation = rootError.WithMessage("Memory allocation failed")
var ErrShortRead = rootError.WithMessage("Error reading input file")
var ErrWriteFailed = rootError.WithMessage("Error writing output file")
var ErrInvalidSettings = rootError.WithMessage("Invalid settings")
var ErrImageTooLarge = rootError.WithMessage("Packed image does not fit on the medium")
var ErrVerifyFailed = rootError.WithMessage("Packed image failed verification")

func (e basePackError) Error() string {
	return string(e)
}

func (e basePackError) WithMessage(message string) PackError {
	return customPackError{
		message:       message,
		originalError: e,
	}
}

func (e basePackError) Wrap(err error) PackError {
	return customPackError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customPackError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customPackError) Error() string {
	return e.message
}

func (e customPackError) WithMessage(message string) PackError {
	return customPackError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customPackError) Wrap(err error) PackError {
	return customPackError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customPackError) Unwrap() error {
	return e.originalError
}
