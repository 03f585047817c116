package preprocessing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumeric = errors.New("invalid numeric value")
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)

// PreprocessError carrega a coluna que causou a falha
type PreprocessError struct {
	Err     error
	Code    string
	Column  string
	Details string
}

func (e *PreprocessError) Error() string {
	if e.Column != "" && e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Column, e.Details)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PreprocessError) Unwrap() error {
	return e.Err
}

func NewPreprocessError(err error, code, column, details string) *PreprocessError {
	return &PreprocessError{
		Err:     err,
		Code:    code,
		Column:  column,
		Details: details,
	}
}
