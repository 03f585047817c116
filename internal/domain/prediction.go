package domain

type AttributionDirection string

const (
	IncreasesChurn AttributionDirection = "increases_churn"
	DecreasesChurn AttributionDirection = "decreases_churn"
)

// FeatureAttribution pareia o valor SHAP da linha com a importância global da feature.
type FeatureAttribution struct {
	Feature          string               `json:"feature"`
	AttributionValue float64              `json:"attribution_value"`
	GlobalImportance float64              `json:"global_importance"`
	Direction        AttributionDirection `json:"direction,omitempty"`
}

// AttributionResult é o resultado de explicação de uma única predição.
type AttributionResult struct {
	Attributions  []FeatureAttribution `json:"attributions"`
	ExpectedValue float64              `json:"expected_value"`
}

// Score é a saída crua do modelo para um vetor.
type Score struct {
	PredictedClass   int     `json:"predicted_class"`
	ChurnProbability float64 `json:"churn_probability"`
	Margin           float64 `json:"margin"`
}

type Prediction struct {
	CustomerID       string               `json:"customer_id"`
	PredictedClass   int                  `json:"predicted_class"`
	ChurnProbability float64              `json:"churn_probability"`
	ExpectedValue    float64              `json:"expected_value"`
	Attributions     []FeatureAttribution `json:"attributions"`
	ModelVersion     string               `json:"model_version"`
}

type RiskSeverity string

const (
	SeverityError   RiskSeverity = "error"
	SeverityWarning RiskSeverity = "warning"
	SeveritySuccess RiskSeverity = "success"
)

// RiskAssessment é o ramo de exibição derivado do churn_risk pré-calculado.
type RiskAssessment struct {
	Level         string       `json:"level"`
	Label         string       `json:"label"`
	Severity      RiskSeverity `json:"severity"`
	ModelScorePct string       `json:"model_score_pct"`
}

type PredictionResponse struct {
	Prediction      *Prediction           `json:"prediction"`
	Risk            RiskAssessment        `json:"risk"`
	TopAttributions []FeatureAttribution  `json:"top_attributions"`
	Diagnostics     PreprocessDiagnostics `json:"diagnostics"`
}
