package session

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerIDRequired = errors.New("customer_id is required")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrExpiredToken       = errors.New("session token expired")
	ErrSigning            = errors.New("failed to sign session token")
	ErrDatasetUnavailable = errors.New("customer dataset unavailable")
)

// SessionError é um erro com contexto adicional para a sessão
type SessionError struct {
	Err        error
	Code       string
	CustomerID string
	Details    string
}

func (e *SessionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// IsTokenError verifica se o erro vem de um token inválido ou expirado
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

func NewSessionError(err error, code, customerID, details string) *SessionError {
	return &SessionError{
		Err:        err,
		Code:       code,
		CustomerID: customerID,
		Details:    details,
	}
}
