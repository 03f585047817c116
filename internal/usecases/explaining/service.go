package explaining

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/churninsights/churn-insights-api/infrastructure/cache"
	"github.com/churninsights/churn-insights-api/infrastructure/repository"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
	"github.com/churninsights/churn-insights-api/pkg/utils"
)

const (
	sourceLLM      = "llm"
	sourceCache    = "cache"
	sourceFallback = "fallback"
)

type Explainer interface {
	GenerateReport(ctx context.Context, customerID string) (*domain.NarrativeReport, error)
	ListReports(ctx context.Context, customerID string, limit int) (*domain.ReportHistoryResponse, error)
}

type Service struct {
	predictor        predicting.Predictor
	narrator         Narrator
	reportRepository repository.ReportRepository
	narrativeCache   cache.NarrativeCache
	historyLimit     int
	now              func() time.Time
}

// NewService aceita narrativeCache nil, caso em que nada é cacheado
func NewService(
	predictor predicting.Predictor,
	narrator Narrator,
	reportRepository repository.ReportRepository,
	narrativeCache cache.NarrativeCache,
	historyLimit int,
) *Service {
	return &Service{
		predictor:        predictor,
		narrator:         narrator,
		reportRepository: reportRepository,
		narrativeCache:   narrativeCache,
		historyLimit:     historyLimit,
		now:              time.Now,
	}
}

// GenerateReport nunca falha por causa do LLM: sem resposta, a narrativa vira o ranking das atribuições
func (s *Service) GenerateReport(ctx context.Context, customerID string) (*domain.NarrativeReport, error) {
	prediction, err := s.predictor.Predict(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.predictor.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("customer_id", customerID)

	prompt, err := BuildPrompt(prediction.Prediction.Attributions, prediction.Prediction.ChurnProbability, customer)
	if err != nil {
		logger.WithError(err).Error("explaining: falha ao montar o prompt")
		return nil, NewExplainError(ErrPromptBuild, apiErrors.ErrInternalServer, customerID, err.Error())
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewExplainError(ErrReportID, apiErrors.ErrInternalServer, customerID, err.Error())
	}

	report := &domain.NarrativeReport{
		ID:               id,
		CustomerID:       customerID,
		ChurnProbability: prediction.Prediction.ChurnProbability,
		PredictedClass:   prediction.Prediction.PredictedClass,
		TopAttributions:  prediction.TopAttributions,
		ModelVersion:     prediction.Prediction.ModelVersion,
		CreatedAt:        s.now().UTC(),
	}

	narrative, source, err := s.narrate(ctx, prompt)
	if err != nil {
		logger.WithError(err).Warn("explaining: LLM indisponível, usando narrativa de fallback")
		report.Narrative = FallbackNarrative(prediction.TopAttributions)
		report.Fallback = true
		report.FailureReason = err.Error()
		source = sourceFallback
	} else {
		report.Narrative = narrative
	}

	reportsTotal.WithLabelValues(source).Inc()

	if err := s.reportRepository.Save(ctx, report); err != nil {
		logger.WithError(err).Error("explaining: falha ao persistir relatório")
	}

	return report, nil
}

func (s *Service) narrate(ctx context.Context, prompt string) (string, string, error) {
	if s.narrativeCache == nil {
		narrative, err := s.narrator.GenerateNarrative(ctx, prompt)
		return narrative, sourceLLM, err
	}

	logger := log.ForContext(ctx)
	key := cache.Key(s.narrator.Model(), prompt)

	cached, found, err := s.narrativeCache.Get(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("explaining: falha ao ler cache de narrativa")
	}
	if found {
		return cached, sourceCache, nil
	}

	narrative, err := s.narrator.GenerateNarrative(ctx, prompt)
	if err != nil {
		return "", sourceLLM, err
	}

	if err := s.narrativeCache.Set(ctx, key, narrative); err != nil {
		logger.WithError(err).Warn("explaining: falha ao gravar cache de narrativa")
	}

	return narrative, sourceLLM, nil
}

func (s *Service) ListReports(ctx context.Context, customerID string, limit int) (*domain.ReportHistoryResponse, error) {
	if _, err := s.predictor.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.historyLimit
	}

	reports, err := s.reportRepository.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("customer_id", customerID).Error("explaining: falha ao listar relatórios")
		return nil, NewExplainError(ErrReportHistory, apiErrors.ErrDatabaseOperation, customerID, "")
	}

	return &domain.ReportHistoryResponse{
		CustomerID: customerID,
		Reports:    reports,
	}, nil
}

// FallbackNarrative lista as atribuições já ordenadas, da maior para a menor
func FallbackNarrative(top []domain.FeatureAttribution) string {
	var b strings.Builder

	b.WriteString("### ⚠️ Automated report unavailable\n\n")
	b.WriteString("#### 📊 Main factors behind this prediction\n\n")

	if len(top) == 0 {
		b.WriteString("No feature contributions are available for this customer.\n")
		return b.String()
	}

	for i := len(top) - 1; i >= 0; i-- {
		a := top[i]
		effect := "🟢 lowers churn risk"
		if a.Direction == domain.IncreasesChurn {
			effect = "🔴 raises churn risk"
		}
		fmt.Fprintf(&b, "%d. **%s**: %s (%+.3f)\n", len(top)-i, a.Feature, effect, a.AttributionValue)
	}

	return b.String()
}
