package describing

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrInvalidAnalysis    = errors.New("analysis must be univariate or bivariate")
	ErrDatasetUnavailable = errors.New("baseline dataset unavailable")
)

type DescribeError struct {
	Err     error
	Code    string
	Feature string
	Details string
}

func (e *DescribeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DescribeError) Unwrap() error {
	return e.Err
}

func NewDescribeError(err error, code, feature, details string) *DescribeError {
	return &DescribeError{
		Err:     err,
		Code:    code,
		Feature: feature,
		Details: details,
	}
}
