package domain

import "github.com/golang-jwt/jwt/v5"

// SessionContext é o contexto de sessão que circula entre as views de uma requisição.
type SessionContext struct {
	SessionID          string
	SelectedCustomerID string
}

func (s *SessionContext) HasSelection() bool {
	return s != nil && s.SelectedCustomerID != ""
}

type SessionClaims struct {
	SessionID          string `json:"sid"`
	SelectedCustomerID string `json:"selected_customer_id"`
	jwt.RegisteredClaims
}

type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

type SessionResponse struct {
	Token              string `json:"token"`
	SessionID          string `json:"session_id"`
	SelectedCustomerID string `json:"selected_customer_id"`
	ExpiresAt          string `json:"expires_at"`
}
