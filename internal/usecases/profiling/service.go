package profiling

import (
	"context"
	"strings"

	"github.com/churninsights/churn-insights-api/infrastructure/dataset"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
	"github.com/churninsights/churn-insights-api/pkg/utils"
)

const noCustomerSelectedMessage = "No customer selected."

var autoRenewLabels = map[string]string{
	"Yes": "Enabled",
	"No":  "Disabled",
}

type Profiler interface {
	ListCustomers(ctx context.Context, risk string) ([]domain.CustomerSummary, error)
	GetProfile(ctx context.Context, customerID string) (*domain.ProfileView, error)
	GetSessionProfile(ctx context.Context, session *domain.SessionContext) (*domain.ProfileView, error)
}

type Service struct {
	customerRepository dataset.CustomerRepository
	predictor          predicting.Predictor
}

func NewService(customerRepository dataset.CustomerRepository, predictor predicting.Predictor) Profiler {
	return &Service{
		customerRepository: customerRepository,
		predictor:          predictor,
	}
}

// ListCustomers devolve os clientes na ordem do dataset; risk vazio não filtra
func (s *Service) ListCustomers(ctx context.Context, risk string) ([]domain.CustomerSummary, error) {
	customers, err := s.customerRepository.ListCustomers()
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("profiling: falha ao carregar o dataset de clientes")
		return nil, NewProfileError(ErrDatasetUnavailable, apiErrors.ErrInternalServer, "")
	}

	summaries := make([]domain.CustomerSummary, 0, len(customers))
	for _, c := range customers {
		if risk != "" && !strings.EqualFold(c.ChurnRisk, risk) {
			continue
		}
		summaries = append(summaries, domain.CustomerSummary{
			CustomerID: c.CustomerID,
			Name:       c.FullName(),
			Region:     c.Region,
			ChurnRisk:  c.ChurnRisk,
			ChurnScore: c.ChurnScore,
		})
	}

	return summaries, nil
}

func (s *Service) GetProfile(ctx context.Context, customerID string) (*domain.ProfileView, error) {
	customer, err := s.predictor.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	profile := BuildProfile(customer)
	risk := predicting.AssessRisk(customer)

	return &domain.ProfileView{
		Status:   domain.ProfileStatusOK,
		Customer: &profile,
		Risk:     &risk,
	}, nil
}

// GetSessionProfile interrompe o fluxo sem erro quando a sessão não tem cliente selecionado
func (s *Service) GetSessionProfile(ctx context.Context, session *domain.SessionContext) (*domain.ProfileView, error) {
	if !session.HasSelection() {
		return NoCustomerSelected(), nil
	}
	return s.GetProfile(ctx, session.SelectedCustomerID)
}

func NoCustomerSelected() *domain.ProfileView {
	return &domain.ProfileView{
		Status:  domain.ProfileStatusNoCustomerSelected,
		Message: noCustomerSelectedMessage,
	}
}

// BuildProfile monta as seções da página de perfil. Assinaturas que não estão ativas
// aparecem como anteriores e ganham a data de término.
func BuildProfile(c *domain.Customer) domain.CustomerProfile {
	subscription := domain.SubscriptionDetails{
		Current:                 c.IsActive(),
		Status:                  c.SubscriptionStatus,
		Type:                    c.SubscriptionType,
		Plan:                    c.PlanType,
		AutoRenew:               autoRenewLabel(c.AutoRenew),
		StartDate:               c.SubscriptionStartDate,
		DiscountUsedLastRenewal: c.DiscountUsedLastRenewal,
		PaymentMethod:           c.PaymentMethod,
		SignupSource:            c.SignupSource,
		PreviousRenewalStatus:   c.PreviousRenewalStatus,
		DowngradeHistory:        c.DowngradeHistory,
		TenureDays:              int(c.TenureDays),
	}

	if !subscription.Current {
		subscription.EndDate = c.SubscriptionEndDate
		if subscription.TenureDays == 0 {
			if days, ok := utils.DaysBetween(c.SubscriptionStartDate, c.SubscriptionEndDate); ok {
				subscription.TenureDays = days
			}
		}
	}

	return domain.CustomerProfile{
		CustomerID: c.CustomerID,
		Personal: domain.PersonalInfo{
			Name:   c.FullName(),
			Age:    c.CustomerAge,
			Gender: c.Gender,
			Email:  c.Email,
			Phone:  c.Phone,
			Region: c.Region,
		},
		Subscription: subscription,
		Activity: domain.UserActivity{
			MostReadCategory:        c.MostReadCategory,
			PrimaryDevice:           c.PrimaryDevice,
			AvgArticlesPerWeek:      c.AvgArticlesPerWeek,
			DaysSinceLastLogin:      c.DaysSinceLastLogin,
			ArticleSkipsPerWeek:     c.ArticleSkipsPerWeek,
			TimeSpentPerSessionMins: c.TimeSpentPerSessionMins,
		},
		Campaign: domain.CampaignEngagement{
			LastCampaignEngaged: c.LastCampaignEngaged,
			EmailOpenRate:       utils.FormatPercent(c.EmailOpenRate, 1),
			CampaignCTR:         utils.RoundWithTwoDecimalPlace(c.CampaignCTR),
			CompletionRate:      utils.FormatPercent(c.CompletionRate, 1),
		},
		Support: domain.CustomerSupport{
			SupportTicketsLast90d: c.SupportTicketsLast90d,
			CSATScore:             c.CSATScore,
			SentimentScore:        c.SentimentScore,
			NPSScore:              c.NPSScore,
		},
	}
}

func autoRenewLabel(value string) string {
	if label, ok := autoRenewLabels[value]; ok {
		return label
	}
	return value
}
