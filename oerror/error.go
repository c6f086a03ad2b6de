package oerror

import "fmt"

// CapsimError is the error type returned when input geometry or configuration is invalid.
type CapsimError struct {
	Err string
}

func New(format string, args ...any) *CapsimError {
	return &CapsimError{Err: fmt.Sprintf(format, args...)}
}

func (e *CapsimError) Error() string {
	return e.Err
}
