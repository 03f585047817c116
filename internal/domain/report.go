package domain

import "time"

type NarrativeReport struct {
	ID               string               `json:"id"`
	CustomerID       string               `json:"customer_id"`
	ChurnProbability float64              `json:"churn_probability"`
	PredictedClass   int                  `json:"predicted_class"`
	Narrative        string               `json:"narrative"`
	Fallback         bool                 `json:"fallback"`
	FailureReason    string               `json:"failure_reason,omitempty"`
	TopAttributions  []FeatureAttribution `json:"top_attributions"`
	ModelVersion     string               `json:"model_version"`
	CreatedAt        time.Time            `json:"created_at"`
}

type ReportHistoryResponse struct {
	CustomerID string             `json:"customer_id"`
	Reports    []*NarrativeReport `json:"reports"`
}
