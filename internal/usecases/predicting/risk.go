package predicting

import (
	"fmt"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

// AssessRisk traduz o churn_risk pré-calculado no ramo de exibição.
// Qualquer valor fora de High/Medium/Low é tratado como cliente que já saiu.
func AssessRisk(customer *domain.Customer) domain.RiskAssessment {
	risk := domain.RiskAssessment{
		Level:         customer.ChurnRisk,
		ModelScorePct: fmt.Sprintf("%.2f%%", customer.ChurnScore*100),
	}

	switch customer.ChurnRisk {
	case "High":
		risk.Label = "High Risk of Churn"
		risk.Severity = domain.SeverityError
	case "Medium":
		risk.Label = "Medium Risk of Churn"
		risk.Severity = domain.SeverityWarning
	case "Low":
		risk.Label = "Low Risk of Churn"
		risk.Severity = domain.SeveritySuccess
	default:
		risk.Label = "Already Churned"
		risk.Severity = domain.SeverityError
	}

	return risk
}
