package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/churninsights/churn-insights-api/infrastructure/dataset"
	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

const issuer = "churn-insights-api"

type SessionService interface {
	Issue(ctx context.Context, customerID string) (*domain.SessionResponse, error)
	Validate(token string) (*domain.SessionContext, error)
}

type Service struct {
	customerRepository dataset.CustomerRepository
	secret             []byte
	ttl                time.Duration
	now                func() time.Time
}

func NewService(customerRepository dataset.CustomerRepository, cfg config.Session) SessionService {
	return &Service{
		customerRepository: customerRepository,
		secret:             []byte(cfg.Secret),
		ttl:                cfg.TTL,
		now:                time.Now,
	}
}

// Issue seleciona o cliente e devolve um token HS256 com a seleção
func (s *Service) Issue(ctx context.Context, customerID string) (*domain.SessionResponse, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, NewSessionError(ErrCustomerIDRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	customer, err := s.customerRepository.GetCustomerByID(customerID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("session: falha ao carregar o dataset de clientes")
		return nil, NewSessionError(ErrDatasetUnavailable, apiErrors.ErrInternalServer, customerID, "")
	}
	if customer == nil {
		return nil, NewSessionError(ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, customerID, "")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := domain.SessionClaims{
		SessionID:          uuid.NewString(),
		SelectedCustomerID: customer.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, NewSessionError(ErrSigning, apiErrors.ErrInternalServer, customerID, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"session_id":  claims.SessionID,
		"customer_id": customer.CustomerID,
	}).Info("session: cliente selecionado")

	return &domain.SessionResponse{
		Token:              token,
		SessionID:          claims.SessionID,
		SelectedCustomerID: claims.SelectedCustomerID,
		ExpiresAt:          expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) Validate(tokenString string) (*domain.SessionContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewSessionError(ErrExpiredToken, apiErrors.ErrInvalidSession, "", "")
		}
		return nil, NewSessionError(ErrInvalidToken, apiErrors.ErrInvalidSession, "", err.Error())
	}

	claims, ok := token.Claims.(*domain.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, NewSessionError(ErrInvalidToken, apiErrors.ErrInvalidSession, "", "")
	}

	return &domain.SessionContext{
		SessionID:          claims.SessionID,
		SelectedCustomerID: claims.SelectedCustomerID,
	}, nil
}
