package xgboost

import (
	"math"

	"github.com/pkg/errors"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

type node struct {
	isLeaf    bool
	leaf      float64
	feature   int
	threshold float32
	yes       int
	no        int
	missing   int
	cover     float64
}

type tree struct {
	nodes []node
}

// next segue a regra do XGBoost: x < split_condition vai para yes, NaN vai para missing.
// A comparação é feita em float32, como no preditor do XGBoost.
func (n node) next(x []float64) int {
	v := x[n.feature]
	if math.IsNaN(v) {
		return n.missing
	}
	if float32(v) < n.threshold {
		return n.yes
	}
	return n.no
}

func (t *tree) predict(x []float64) float64 {
	i := 0
	for !t.nodes[i].isLeaf {
		i = t.nodes[i].next(x)
	}
	return t.nodes[i].leaf
}

// meanValue é a média das folhas ponderada pelo cover, o valor esperado da árvore
func (t *tree) meanValue(i int) float64 {
	n := t.nodes[i]
	if n.isLeaf {
		return n.leaf
	}
	yes, no := t.nodes[n.yes], t.nodes[n.no]
	return (t.meanValue(n.yes)*yes.cover + t.meanValue(n.no)*no.cover) / n.cover
}

// Model é um ensemble de árvores binary:logistic imutável depois do load;
// pode ser usado por várias goroutines ao mesmo tempo.
type Model struct {
	version       string
	schema        domain.FeatureSchema
	baseMargin    float64
	threshold     float64
	importances   []float64
	trees         []*tree
	expectedValue float64
}

func (m *Model) Version() string {
	return m.version
}

func (m *Model) Schema() domain.FeatureSchema {
	features := make([]string, len(m.schema.Features))
	copy(features, m.schema.Features)
	return domain.FeatureSchema{Version: m.schema.Version, Features: features}
}

func (m *Model) FeatureImportances() []float64 {
	out := make([]float64, len(m.importances))
	copy(out, m.importances)
	return out
}

// ExpectedValue é o valor base das atribuições, em log-odds
func (m *Model) ExpectedValue() float64 {
	return m.expectedValue
}

func (m *Model) Threshold() float64 {
	return m.threshold
}

func (m *Model) checkVector(v domain.FeatureVector) error {
	if v.Len() != m.schema.Len() {
		return errors.Wrapf(ErrVectorLength, "got %d values, schema has %d", v.Len(), m.schema.Len())
	}
	for i, name := range v.Names {
		if name != m.schema.Features[i] {
			return errors.Wrapf(ErrVectorLength, "column %d is %q, schema expects %q", i, name, m.schema.Features[i])
		}
	}
	return nil
}

func (m *Model) margin(x []float64) float64 {
	margin := m.baseMargin
	for _, t := range m.trees {
		margin += t.predict(x)
	}
	return margin
}

// Score equivale a predict + predict_proba[:, 1]
func (m *Model) Score(v domain.FeatureVector) (domain.Score, error) {
	if err := m.checkVector(v); err != nil {
		return domain.Score{}, err
	}

	margin := m.margin(v.Values)
	proba := sigmoid(margin)

	class := 0
	if proba > m.threshold {
		class = 1
	}

	return domain.Score{
		PredictedClass:   class,
		ChurnProbability: proba,
		Margin:           margin,
	}, nil
}

// Explain calcula os valores SHAP exatos (TreeSHAP path-dependent) em log-odds.
// A soma das atribuições mais o ExpectedValue é igual à margem do Score.
func (m *Model) Explain(v domain.FeatureVector) (domain.AttributionResult, error) {
	if err := m.checkVector(v); err != nil {
		return domain.AttributionResult{}, err
	}

	phi := make([]float64, m.schema.Len())
	for _, t := range m.trees {
		t.shap(v.Values, phi)
	}

	attributions := make([]domain.FeatureAttribution, len(phi))
	for i, value := range phi {
		attributions[i] = domain.FeatureAttribution{
			Feature:          m.schema.Features[i],
			AttributionValue: value,
			GlobalImportance: m.importances[i],
		}
	}

	return domain.AttributionResult{
		Attributions:  attributions,
		ExpectedValue: m.expectedValue,
	}, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
