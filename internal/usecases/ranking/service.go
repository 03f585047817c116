package ranking

import (
	"math"
	"sort"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

// DefaultTopK é o tamanho do gráfico de atribuições
const DefaultTopK = 10

type AttributionRanker interface {
	TopAttributions(attributions []domain.FeatureAttribution, k int) []domain.FeatureAttribution
}

type TopAttributionService struct{}

func NewTopAttributionService() AttributionRanker {
	return &TopAttributionService{}
}

func (s *TopAttributionService) TopAttributions(attributions []domain.FeatureAttribution, k int) []domain.FeatureAttribution {
	return TopAttributions(attributions, k)
}

// TopAttributions ordena de forma estável por |valor| crescente e devolve as k últimas.
// Empates mantêm a ordem original; o sinal de cada valor é preservado.
func TopAttributions(attributions []domain.FeatureAttribution, k int) []domain.FeatureAttribution {
	if k <= 0 || len(attributions) == 0 {
		return []domain.FeatureAttribution{}
	}

	sorted := make([]domain.FeatureAttribution, len(attributions))
	copy(sorted, attributions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].AttributionValue) < math.Abs(sorted[j].AttributionValue)
	})

	if len(sorted) > k {
		sorted = sorted[len(sorted)-k:]
	}

	for i := range sorted {
		sorted[i].Direction = DirectionOf(sorted[i].AttributionValue)
	}

	return sorted
}

// DirectionOf classifica zero como "decreases", igual ao ramo decreasing do waterfall
func DirectionOf(value float64) domain.AttributionDirection {
	if value > 0 {
		return domain.IncreasesChurn
	}
	return domain.DecreasesChurn
}
