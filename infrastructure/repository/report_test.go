package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (f fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = f.values[i].(string)
		case *float64:
			*v = f.values[i].(float64)
		case *int:
			*v = f.values[i].(int)
		case *bool:
			*v = f.values[i].(bool)
		case *[]byte:
			*v = f.values[i].([]byte)
		case *time.Time:
			*v = f.values[i].(time.Time)
		default:
			if ns, ok := d.(interface{ Scan(interface{}) error }); ok {
				if err := ns.Scan(f.values[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sampleReport() *domain.NarrativeReport {
	return &domain.NarrativeReport{
		ID:               "abc123",
		CustomerID:       "CUST-1",
		ChurnProbability: 0.81,
		PredictedClass:   1,
		Narrative:        "### Resumo",
		Fallback:         false,
		TopAttributions: []domain.FeatureAttribution{
			{Feature: "days_since_last_login", AttributionValue: 0.4, GlobalImportance: 0.1, Direction: domain.IncreasesChurn},
		},
		ModelVersion: "v2",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestBuildInsertReport(t *testing.T) {
	report := sampleReport()

	query, args, err := buildInsertReport(report)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO narrative_reports (id,customer_id,churn_probability,predicted_class,narrative,fallback,failure_reason,top_attributions,model_version,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)",
		query,
	)
	require.Len(t, args, 10)
	assert.Equal(t, "abc123", args[0])
	assert.JSONEq(t,
		`[{"feature":"days_since_last_login","attribution_value":0.4,"global_importance":0.1,"direction":"increases_churn"}]`,
		args[7].(string),
	)
}

func TestBuildListReports(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		expectedLimit string
	}{
		{name: "limite informado", limit: 5, expectedLimit: "LIMIT 5"},
		{name: "limite zero usa o máximo", limit: 0, expectedLimit: "LIMIT 100"},
		{name: "limite acima do máximo", limit: 1000, expectedLimit: "LIMIT 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListReports("CUST-1", tt.limit)
			require.NoError(t, err)
			assert.Contains(t, query, "FROM narrative_reports nr WHERE nr.customer_id = $1 ORDER BY nr.created_at DESC")
			assert.Contains(t, query, tt.expectedLimit)
			assert.Equal(t, []interface{}{"CUST-1"}, args)
		})
	}
}

func TestScanReport(t *testing.T) {
	expected := sampleReport()

	t.Run("linha completa", func(t *testing.T) {
		row := fakeRow{values: []interface{}{
			expected.ID,
			expected.CustomerID,
			expected.ChurnProbability,
			expected.PredictedClass,
			expected.Narrative,
			expected.Fallback,
			nil,
			[]byte(`[{"feature":"days_since_last_login","attribution_value":0.4,"global_importance":0.1,"direction":"increases_churn"}]`),
			expected.ModelVersion,
			expected.CreatedAt,
		}}

		report, err := scanReport(row)
		require.NoError(t, err)
		assert.Equal(t, expected, report)
	})

	t.Run("erro no scan", func(t *testing.T) {
		_, err := scanReport(fakeRow{err: errors.New("boom")})
		assert.EqualError(t, err, "boom")
	})
}

func TestNoopReportRepository(t *testing.T) {
	repo := NewNoopReportRepository()

	require.NoError(t, repo.Save(context.Background(), sampleReport()))

	reports, err := repo.ListByCustomer(context.Background(), "CUST-1", 10)
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.NotNil(t, reports)
}
