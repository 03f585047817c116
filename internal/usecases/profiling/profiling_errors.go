package profiling

import (
	"errors"
	"fmt"
)

var ErrDatasetUnavailable = errors.New("customer dataset unavailable")

type ProfileError struct {
	Err     error
	Code    string
	Details string
}

func (e *ProfileError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

func NewProfileError(err error, code, details string) *ProfileError {
	return &ProfileError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
