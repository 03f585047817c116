package preprocessing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
)

func sampleRow() map[string]string {
	return map[string]string{
		"customer_id":                 "CUST-001",
		"subscription_type":           "Digital",
		"plan_type":                   "Annual",
		"auto_renew":                  "Yes",
		"discount_used_last_renewal":  "No",
		"downgrade_history":           "Yes",
		"previous_renewal_status":     "Manual",
		"signup_source":               "Referral",
		"region":                      "Europe",
		"most_read_category":          "Finance",
		"primary_device":              "Tablet",
		"payment_method":              "PayPal",
		"last_campaign_engaged":       "Survey",
		"avg_articles_per_week":       "4.5",
		"days_since_last_login":       "12",
		"support_tickets_last_90d":    "2",
		"email_open_rate":             "0.35",
		"time_spent_per_session_mins": "7.25",
		"completion_rate":             "0.6",
		"article_skips_per_week":      "3",
		"campaign_ctr":                "0.04",
		"nps_score":                   "6",
		"sentiment_score":             "-0.2",
		"csat_score":                  "3.5",
		"customer_age":                "41",
		"tenure_days":                 "730",
	}
}

func valueOf(t *testing.T, v domain.FeatureVector, name string) float64 {
	t.Helper()
	value, ok := v.Get(name)
	require.True(t, ok, "feature %s not in vector", name)
	return value
}

func TestPreprocess_OutputFollowsSchemaOrder(t *testing.T) {
	schema := DefaultSchema()

	vector, diagnostics, err := NewService().Preprocess(sampleRow(), schema)

	require.NoError(t, err)
	assert.Equal(t, 38, vector.Len())
	assert.Equal(t, schema.Features, vector.Names)
	assert.False(t, diagnostics.HasWarnings())

	continuous := map[string]bool{}
	for _, c := range continuousColumns {
		continuous[c] = true
	}
	for i, name := range vector.Names {
		if continuous[name] {
			continue
		}
		assert.Contains(t, []float64{0, 1, 2}, vector.Values[i], "feature %s", name)
	}
}

func TestPreprocess_DigitalAnnualEurope(t *testing.T) {
	row := sampleRow()

	vector, _, err := NewService().Preprocess(row, DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, 1.0, valueOf(t, vector, "subscription_type"))
	assert.Equal(t, 1.0, valueOf(t, vector, "plan_type"))
	assert.Equal(t, 1.0, valueOf(t, vector, "auto_renew"))
	assert.Equal(t, 1.0, valueOf(t, vector, "region_Europe"))
	assert.Equal(t, 0.0, valueOf(t, vector, "region_Asia"))
	assert.Equal(t, 0.0, valueOf(t, vector, "region_North America"))
	assert.Equal(t, 0.0, valueOf(t, vector, "region_Others"))

	assert.Equal(t, 0.0, valueOf(t, vector, "discount_used_last_renewal"))
	assert.Equal(t, 1.0, valueOf(t, vector, "downgrade_history"))
	assert.Equal(t, 0.0, valueOf(t, vector, "previous_renewal_status"))
	assert.Equal(t, 1.0, valueOf(t, vector, "signup_source"))
	assert.Equal(t, 1.0, valueOf(t, vector, "most_read_Finance"))
	assert.Equal(t, 1.0, valueOf(t, vector, "primary_device_Tablet"))
	assert.Equal(t, 1.0, valueOf(t, vector, "payment_method_PayPal"))
	assert.Equal(t, 1.0, valueOf(t, vector, "last_campaign_engaged_Survey"))

	assert.Equal(t, 4.5, valueOf(t, vector, "avg_articles_per_week"))
	assert.Equal(t, -0.2, valueOf(t, vector, "sentiment_score"))
	assert.Equal(t, 730.0, valueOf(t, vector, "tenure_days"))
}

func TestPreprocess_SignupSourceWebAndMobileShareCode(t *testing.T) {
	for _, source := range []string{"Web", "Mobile App"} {
		row := sampleRow()
		row["signup_source"] = source

		vector, _, err := NewService().Preprocess(row, DefaultSchema())
		require.NoError(t, err)
		assert.Equal(t, 0.0, valueOf(t, vector, "signup_source"), source)
	}
}

func TestPreprocess_UnknownCategoricalIsZeroFilledAndReported(t *testing.T) {
	row := sampleRow()
	row["region"] = "Antarctica"
	row["subscription_type"] = "Premium"

	vector, diagnostics, err := NewService().Preprocess(row, DefaultSchema())
	require.NoError(t, err)

	for _, region := range []string{"region_Asia", "region_Europe", "region_North America", "region_Others"} {
		assert.Equal(t, 0.0, valueOf(t, vector, region))
	}
	assert.Equal(t, 0.0, valueOf(t, vector, "subscription_type"))
	assert.Equal(t, map[string]string{"region": "Antarctica", "subscription_type": "Premium"}, diagnostics.UnknownCategoricals)
	assert.True(t, diagnostics.HasWarnings())
}

func TestPreprocess_MissingValuesAreZero(t *testing.T) {
	row := sampleRow()
	delete(row, "nps_score")
	row["csat_score"] = ""
	row["customer_age"] = "NaN"
	delete(row, "payment_method")

	vector, diagnostics, err := NewService().Preprocess(row, DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, 0.0, valueOf(t, vector, "nps_score"))
	assert.Equal(t, 0.0, valueOf(t, vector, "csat_score"))
	assert.Equal(t, 0.0, valueOf(t, vector, "customer_age"))
	assert.Equal(t, 0.0, valueOf(t, vector, "payment_method_PayPal"))
	assert.Equal(t, []string{"csat_score", "nps_score", "payment_method"}, diagnostics.MissingColumns)
}

func TestPreprocess_InvalidNumeric(t *testing.T) {
	row := sampleRow()
	row["tenure_days"] = "two years"

	_, _, err := NewService().Preprocess(row, DefaultSchema())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNumeric))

	var preprocessErr *PreprocessError
	require.True(t, errors.As(err, &preprocessErr))
	assert.Equal(t, "tenure_days", preprocessErr.Column)
	assert.Equal(t, apiErrors.ErrInvalidFormat, preprocessErr.Code)
	assert.True(t, strings.Contains(err.Error(), "tenure_days"))
}

func TestPreprocess_CustomSchemaOrder(t *testing.T) {
	schema := domain.FeatureSchema{Version: "test", Features: []string{"region_Europe", "tenure_days", "plan_type"}}

	vector, _, err := NewService().Preprocess(sampleRow(), schema)

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 730, 1}, vector.Values)
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  domain.FeatureSchema
		wantErr bool
	}{
		{name: "default schema", schema: DefaultSchema()},
		{name: "empty", schema: domain.FeatureSchema{}, wantErr: true},
		{name: "duplicated", schema: domain.FeatureSchema{Features: []string{"plan_type", "plan_type"}}, wantErr: true},
		{name: "unknown feature", schema: domain.FeatureSchema{Features: []string{"plan_type", "region_Mars"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewService().ValidateSchema(tt.schema)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSchemaMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultSchema_IsACopy(t *testing.T) {
	schema := DefaultSchema()
	schema.Features[0] = "mutated"

	assert.Equal(t, "subscription_type", DefaultSchema().Features[0])
	assert.Len(t, knownFeatures, 38)
}
