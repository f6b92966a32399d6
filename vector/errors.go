package vector

import (
	"errors"
	"fmt"
)

var (
	ErrInputTooBig   = errors.New("vector: input too big")
	ErrInvalidParams = errors.New("vector: invalid parameters")
	ErrInvalidRatio  = errors.New("vector: invalid ratio")
	// ErrWordAlignment means the active bit count is not a multiple of the data width.
	ErrWordAlignment = errors.New("vector: active bits do not fill whole words")
	// ErrByteAlignment means a bit count is not a multiple of 8.
	ErrByteAlignment = errors.New("vector: bit count is not a multiple of 8")
	ErrTooFewRecords = errors.New("vector: reference has too few records")
)

// ValidationError is returned for parameter and invariant violations. It is
// never transient: retrying with the same inputs fails the same way.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, format string, a ...any) error {
	return &ValidationError{Err: err, Detail: fmt.Sprintf(format, a...)}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
