// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"

	"github.com/churninsights/churn-insights-api/infrastructure/database/postgres"
	"github.com/churninsights/churn-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportsTable = "narrative_reports nr"

	// MaxHistoryLimit limita o tamanho de uma página de histórico
	MaxHistoryLimit = 100
)

var reportColumns = []string{
	"nr.id",
	"nr.customer_id",
	"nr.churn_probability",
	"nr.predicted_class",
	"nr.narrative",
	"nr.fallback",
	"nr.failure_reason",
	"nr.top_attributions",
	"nr.model_version",
	"nr.created_at",
}

type ReportRepository interface {
	Save(ctx context.Context, report *domain.NarrativeReport) error
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]*domain.NarrativeReport, error)
}

type reportRepository struct {
	conn postgres.Queryer
}

func NewReportRepository(conn postgres.Queryer) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) Save(ctx context.Context, report *domain.NarrativeReport) error {
	query, args, err := buildInsertReport(report)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}

	return nil
}

func (r *reportRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]*domain.NarrativeReport, error) {
	query, args, err := buildListReports(customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.NarrativeReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reports, nil
}

func buildInsertReport(report *domain.NarrativeReport) (string, []interface{}, error) {
	attributions, err := json.Marshal(report.TopAttributions)
	if err != nil {
		return "", nil, err
	}

	return squirrel.
		Insert("narrative_reports").
		Columns(
			"id",
			"customer_id",
			"churn_probability",
			"predicted_class",
			"narrative",
			"fallback",
			"failure_reason",
			"top_attributions",
			"model_version",
			"created_at",
		).
		Values(
			report.ID,
			report.CustomerID,
			report.ChurnProbability,
			report.PredictedClass,
			report.Narrative,
			report.Fallback,
			report.FailureReason,
			string(attributions),
			report.ModelVersion,
			report.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildListReports(customerID string, limit int) (string, []interface{}, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return squirrel.
		Select(reportColumns...).
		From(reportsTable).
		Where(squirrel.Eq{"nr.customer_id": customerID}).
		OrderBy("nr.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*domain.NarrativeReport, error) {
	report := &domain.NarrativeReport{}

	var (
		failureReason sql.NullString
		attributions  []byte
	)

	if err := row.Scan(
		&report.ID,
		&report.CustomerID,
		&report.ChurnProbability,
		&report.PredictedClass,
		&report.Narrative,
		&report.Fallback,
		&failureReason,
		&attributions,
		&report.ModelVersion,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}

	report.FailureReason = failureReason.String

	if len(attributions) > 0 {
		if err := json.Unmarshal(attributions, &report.TopAttributions); err != nil {
			return nil, err
		}
	}

	return report, nil
}

type noopReportRepository struct{}

// NewNoopReportRepository é usado quando REPORTS_STORE=none: nada é persistido e o histórico é vazio
func NewNoopReportRepository() ReportRepository {
	return noopReportRepository{}
}

func (noopReportRepository) Save(context.Context, *domain.NarrativeReport) error {
	return nil
}

func (noopReportRepository) ListByCustomer(context.Context, string, int) ([]*domain.NarrativeReport, error) {
	return []*domain.NarrativeReport{}, nil
}
