package predicting

import (
	"github.com/churninsights/churn-insights-api/internal/domain"
)

// Model é o classificador carregado do artefato
type Model interface {
	Version() string
	Schema() domain.FeatureSchema
	// Score devolve a classe prevista e a probabilidade de churn
	Score(vector domain.FeatureVector) (domain.Score, error)
	// Explain devolve uma atribuição por feature, na ordem do schema
	Explain(vector domain.FeatureVector) (domain.AttributionResult, error)
}
