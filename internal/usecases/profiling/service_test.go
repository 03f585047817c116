package profiling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	datasetmocks "github.com/churninsights/churn-insights-api/infrastructure/dataset/mocks"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	predictingmocks "github.com/churninsights/churn-insights-api/internal/usecases/predicting/mocks"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
)

func customerFixture(overrides map[string]string) *domain.Customer {
	raw := map[string]string{
		"customer_id":             "CUST-001",
		"first_name":              "Ana",
		"last_name":               "Silva",
		"Phone":                   "+351 900 000 000",
		"customer_age":            "41",
		"subscription_status":     "Active",
		"auto_renew":              "Yes",
		"subscription_start_date": "2024-01-01",
		"subscription_end_date":   "2024-12-31",
		"email_open_rate":         "0.423",
		"completion_rate":         "0.8",
		"campaign_ctr":            "0.12345",
		"tenure_days":             "500",
		"churn_risk":              "Medium",
		"churn_score":             "0.5512",
	}
	for k, v := range overrides {
		raw[k] = v
	}
	return domain.NewCustomer(raw)
}

func TestBuildProfile(t *testing.T) {
	tests := []struct {
		name     string
		customer *domain.Customer
		validate func(t *testing.T, p domain.CustomerProfile)
	}{
		{
			name:     "assinatura ativa",
			customer: customerFixture(nil),
			validate: func(t *testing.T, p domain.CustomerProfile) {
				assert.Equal(t, "Ana Silva", p.Personal.Name)
				assert.Equal(t, 41.0, p.Personal.Age)
				assert.Equal(t, "+351 900 000 000", p.Personal.Phone)
				assert.True(t, p.Subscription.Current)
				assert.Empty(t, p.Subscription.EndDate)
				assert.Equal(t, "Enabled", p.Subscription.AutoRenew)
				assert.Equal(t, 500, p.Subscription.TenureDays)
				assert.Equal(t, "42.3%", p.Campaign.EmailOpenRate)
				assert.Equal(t, "80.0%", p.Campaign.CompletionRate)
				assert.Equal(t, 0.12, p.Campaign.CampaignCTR)
			},
		},
		{
			name: "assinatura cancelada mostra data de término",
			customer: customerFixture(map[string]string{
				"subscription_status": "Cancelled",
				"auto_renew":          "No",
				"tenure_days":         "",
			}),
			validate: func(t *testing.T, p domain.CustomerProfile) {
				assert.False(t, p.Subscription.Current)
				assert.Equal(t, "2024-12-31", p.Subscription.EndDate)
				assert.Equal(t, "Disabled", p.Subscription.AutoRenew)
				assert.Equal(t, 365, p.Subscription.TenureDays)
			},
		},
		{
			name:     "auto_renew desconhecido é mantido",
			customer: customerFixture(map[string]string{"auto_renew": "Maybe"}),
			validate: func(t *testing.T, p domain.CustomerProfile) {
				assert.Equal(t, "Maybe", p.Subscription.AutoRenew)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, BuildProfile(tt.customer))
		})
	}
}

func TestGetSessionProfile(t *testing.T) {
	tests := []struct {
		name     string
		session  *domain.SessionContext
		setup    func(p *predictingmocks.MockPredictor)
		wantErr  error
		validate func(t *testing.T, view *domain.ProfileView)
	}{
		{
			name:    "sem sessão",
			session: nil,
			setup:   func(p *predictingmocks.MockPredictor) {},
			validate: func(t *testing.T, view *domain.ProfileView) {
				assert.Equal(t, domain.ProfileStatusNoCustomerSelected, view.Status)
				assert.Equal(t, "No customer selected.", view.Message)
				assert.Nil(t, view.Customer)
			},
		},
		{
			name:    "sessão sem seleção",
			session: &domain.SessionContext{SessionID: "s1"},
			setup:   func(p *predictingmocks.MockPredictor) {},
			validate: func(t *testing.T, view *domain.ProfileView) {
				assert.Equal(t, domain.ProfileStatusNoCustomerSelected, view.Status)
			},
		},
		{
			name:    "cliente selecionado",
			session: &domain.SessionContext{SessionID: "s1", SelectedCustomerID: "CUST-001"},
			setup: func(p *predictingmocks.MockPredictor) {
				p.EXPECT().GetCustomer(gomock.Any(), "CUST-001").Return(customerFixture(nil), nil)
			},
			validate: func(t *testing.T, view *domain.ProfileView) {
				assert.Equal(t, domain.ProfileStatusOK, view.Status)
				require.NotNil(t, view.Customer)
				assert.Equal(t, "CUST-001", view.Customer.CustomerID)
				require.NotNil(t, view.Risk)
				assert.Equal(t, "Medium Risk of Churn", view.Risk.Label)
				assert.Equal(t, domain.SeverityWarning, view.Risk.Severity)
				assert.Equal(t, "55.12%", view.Risk.ModelScorePct)
			},
		},
		{
			name:    "cliente selecionado não existe",
			session: &domain.SessionContext{SessionID: "s1", SelectedCustomerID: "CUST-404"},
			setup: func(p *predictingmocks.MockPredictor) {
				p.EXPECT().GetCustomer(gomock.Any(), "CUST-404").
					Return(nil, predicting.NewPredictionError(predicting.ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, "CUST-404", ""))
			},
			wantErr: predicting.ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			predictor := predictingmocks.NewMockPredictor(ctrl)
			tt.setup(predictor)

			view, err := NewService(datasetmocks.NewMockCustomerRepository(ctrl), predictor).GetSessionProfile(context.Background(), tt.session)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, view)
		})
	}
}

func TestListCustomers(t *testing.T) {
	customers := []*domain.Customer{
		customerFixture(nil),
		customerFixture(map[string]string{"customer_id": "CUST-002", "first_name": "Rui", "churn_risk": "High", "churn_score": "0.91"}),
		customerFixture(map[string]string{"customer_id": "CUST-003", "churn_risk": "Churned"}),
	}

	tests := []struct {
		name    string
		risk    string
		repoErr error
		wantIDs []string
		wantErr error
	}{
		{
			name:    "sem filtro mantém a ordem do dataset",
			wantIDs: []string{"CUST-001", "CUST-002", "CUST-003"},
		},
		{
			name:    "filtro ignora caixa",
			risk:    "high",
			wantIDs: []string{"CUST-002"},
		},
		{
			name:    "filtro sem resultados",
			risk:    "Low",
			wantIDs: []string{},
		},
		{
			name:    "dataset indisponível",
			repoErr: errors.New("open data/home_data.csv: no such file"),
			wantErr: ErrDatasetUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := datasetmocks.NewMockCustomerRepository(ctrl)
			if tt.repoErr != nil {
				repo.EXPECT().ListCustomers().Return(nil, tt.repoErr)
			} else {
				repo.EXPECT().ListCustomers().Return(customers, nil)
			}

			summaries, err := NewService(repo, predictingmocks.NewMockPredictor(ctrl)).ListCustomers(context.Background(), tt.risk)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var profileErr *ProfileError
				require.ErrorAs(t, err, &profileErr)
				assert.Equal(t, apiErrors.ErrInternalServer, profileErr.Code)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(summaries))
			for _, s := range summaries {
				ids = append(ids, s.CustomerID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	ctrl := gomock.NewController(t)
	repo := datasetmocks.NewMockCustomerRepository(ctrl)
	repo.EXPECT().ListCustomers().Return(customers[1:2], nil)
	summaries, err := NewService(repo, predictingmocks.NewMockPredictor(ctrl)).ListCustomers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Rui Silva", summaries[0].Name)
	assert.Equal(t, 0.91, summaries[0].ChurnScore)
}
