package predicting

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerIDRequired = errors.New("customer ID is required")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrSchemaMismatch     = errors.New("model schema mismatch")
	ErrDatasetUnavailable = errors.New("customer dataset unavailable")
	ErrInvalidRecord      = errors.New("customer record cannot be encoded")
)

// PredictionError é um erro com contexto adicional para a predição
type PredictionError struct {
	Err        error
	Code       string
	CustomerID string
	Details    string
}

func (e *PredictionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

func NewPredictionError(err error, code string, customerID string, details string) *PredictionError {
	return &PredictionError{
		Err:        err,
		Code:       code,
		CustomerID: customerID,
		Details:    details,
	}
}
