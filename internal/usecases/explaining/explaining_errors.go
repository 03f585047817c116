package explaining

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlaceholder = errors.New("unknown template placeholder")
	ErrMalformedTemplate  = errors.New("malformed template")
	ErrPromptBuild        = errors.New("failed to build narrative prompt")
	ErrReportID           = errors.New("failed to generate report id")
	ErrReportHistory      = errors.New("failed to list reports")
)

type ExplainError struct {
	Err        error
	Code       string
	CustomerID string
	Details    string
}

func (e *ExplainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ExplainError) Unwrap() error {
	return e.Err
}

func NewExplainError(err error, code, customerID, details string) *ExplainError {
	return &ExplainError{
		Err:        err,
		Code:       code,
		CustomerID: customerID,
		Details:    details,
	}
}
