package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	datasetmocks "github.com/churninsights/churn-insights-api/infrastructure/dataset/mocks"
	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
)

var sessionCfg = config.Session{Secret: "test-secret", TTL: time.Hour}

func newTestService(repo *datasetmocks.MockCustomerRepository, now time.Time) *Service {
	s := NewService(repo, sessionCfg).(*Service)
	s.now = func() time.Time { return now }
	return s
}

func TestIssue(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		customerID string
		setup      func(repo *datasetmocks.MockCustomerRepository)
		wantErr    error
		wantCode   string
	}{
		{
			name:       "cliente existente recebe token",
			customerID: " CUST-001 ",
			setup: func(repo *datasetmocks.MockCustomerRepository) {
				repo.EXPECT().GetCustomerByID("CUST-001").Return(&domain.Customer{CustomerID: "CUST-001"}, nil)
			},
		},
		{
			name:       "customer_id vazio",
			customerID: "",
			setup:      func(repo *datasetmocks.MockCustomerRepository) {},
			wantErr:    ErrCustomerIDRequired,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:       "cliente inexistente",
			customerID: "CUST-404",
			setup: func(repo *datasetmocks.MockCustomerRepository) {
				repo.EXPECT().GetCustomerByID("CUST-404").Return(nil, nil)
			},
			wantErr:  ErrCustomerNotFound,
			wantCode: apiErrors.ErrCustomerNotFound,
		},
		{
			name:       "dataset indisponível",
			customerID: "CUST-001",
			setup: func(repo *datasetmocks.MockCustomerRepository) {
				repo.EXPECT().GetCustomerByID("CUST-001").Return(nil, errors.New("no such file"))
			},
			wantErr:  ErrDatasetUnavailable,
			wantCode: apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := datasetmocks.NewMockCustomerRepository(ctrl)
			tt.setup(repo)
			service := newTestService(repo, now)

			resp, err := service.Issue(context.Background(), tt.customerID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var sessionErr *SessionError
				require.ErrorAs(t, err, &sessionErr)
				assert.Equal(t, tt.wantCode, sessionErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "CUST-001", resp.SelectedCustomerID)
			assert.NotEmpty(t, resp.SessionID)
			assert.Equal(t, "2026-05-10T09:00:00Z", resp.ExpiresAt)

			sc, err := service.Validate(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, resp.SessionID, sc.SessionID)
			assert.Equal(t, "CUST-001", sc.SelectedCustomerID)
			assert.True(t, sc.HasSelection())
		})
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	sign := func(claims domain.SessionClaims, method jwt.SigningMethod, key interface{}) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	validClaims := func(expiresAt time.Time) domain.SessionClaims {
		return domain.SessionClaims{
			SessionID:          "sid-1",
			SelectedCustomerID: "CUST-001",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		}
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:  "token válido",
			token: sign(validClaims(now.Add(time.Minute)), jwt.SigningMethodHS256, []byte(sessionCfg.Secret)),
		},
		{
			name:    "token expirado",
			token:   sign(validClaims(now.Add(-time.Minute)), jwt.SigningMethodHS256, []byte(sessionCfg.Secret)),
			wantErr: ErrExpiredToken,
		},
		{
			name:    "segredo diferente",
			token:   sign(validClaims(now.Add(time.Minute)), jwt.SigningMethodHS256, []byte("other")),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "algoritmo none",
			token:   sign(validClaims(now.Add(time.Minute)), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "lixo",
			token:   "not-a-token",
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(nil, now)

			sc, err := service.Validate(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsTokenError(err))
				assert.Nil(t, sc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "sid-1", sc.SessionID)
		})
	}
}
