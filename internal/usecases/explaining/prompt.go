package explaining

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const promptTemplate = `
YOU ARE A MACHINE LEARNING MODEL EXPLAINABILITY EXPERT
Here are the details for a customer the agent is assisting:
    - Dictionary of feature_name, shap_impact and feature_importance for the xgboost machine learning model: {feature_shap_importance}
    - Model's Predicted Churn Probability: {proba}
    - Customer Row: {customer_row}
Based on this information, explain to the agent in non-technical terms:
    1. Provide a summary of who the customer is from the user context features.
    2. Identify the top 3 reasons for the customer's potential churn. Provide a brief explanation of why these
    features significantly influence the churn prediction.
    3. Suggest the top 3 actions the agent can take to reduce the likelihood of churn, based on the feature impacts. Each suggestion should include:
        - An explanation of why this action is expected to impact churn, based solely on the data provided.
Remember:
    - The magnitude of a SHAP value indicates the strength of a feature's influence on the prediction.
    - Positive SHAP values increase the likelihood of churn; negative values decrease it.
    - Feature importance values add up to 1; the greater the value, the more important the feature is in the prediction.
    - Recommendations should be strictly based on the information provided in the SHAP contributions and customer features.

Don't include any technical details like SHAP scores, probability or feature importance in the report, only provide business context.
Keep the report short and concise in 2-3 paragraphs (max 150 words in total).
Do not include any other text in the report.
Make sure the response is in markdown format with proper use of only H3, H4, H5 and emojis.
`

type attributionPayload struct {
	ShapImpact        float64 `json:"shap_impact"`
	FeatureImportance float64 `json:"feature_importance"`
}

// BuildPrompt monta o prompt de sistema. Os valores são escapados antes de entrar no template
// e a segunda renderização devolve as chaves literais.
func BuildPrompt(attributions []domain.FeatureAttribution, probability float64, customer *domain.Customer) (string, error) {
	serialized, err := SerializeAttributions(attributions)
	if err != nil {
		return "", err
	}

	row, err := json.Marshal(customer.Raw())
	if err != nil {
		return "", fmt.Errorf("serialize customer row: %w", err)
	}

	template, err := Render(promptTemplate, map[string]string{
		"feature_shap_importance": EscapeBraces(serialized),
		"proba":                   strconv.FormatFloat(probability, 'f', -1, 64),
		"customer_row":            EscapeBraces(string(row)),
	})
	if err != nil {
		return "", err
	}

	return Render(template, nil)
}

// SerializeAttributions gera {"feature": {"shap_impact": x, "feature_importance": y}} na ordem do schema
func SerializeAttributions(attributions []domain.FeatureAttribution) (string, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, a := range attributions {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(a.Feature)
		stream.WriteVal(attributionPayload{
			ShapImpact:        a.AttributionValue,
			FeatureImportance: a.GlobalImportance,
		})
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return "", fmt.Errorf("serialize attributions: %w", stream.Error)
	}

	return string(stream.Buffer()), nil
}

func EscapeBraces(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}

// Render substitui {nome} pelo valor em vars. {{ e }} viram chaves literais.
func Render(template string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			name := template[i+1 : i+1+end]
			value, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrUnknownPlaceholder, name)
			}
			b.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
