package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

var churnLabels = map[float64]string{0: "No Churn", 1: "Churn"}

type BaselineRepository interface {
	GetDataset() (*domain.BaselineDataset, error)
	Reload() error
	Status() domain.DatasetStatus
}

type baselineRepository struct {
	path string
	memo *memo[*domain.BaselineDataset]
}

func NewBaselineRepository(path string) BaselineRepository {
	r := &baselineRepository{path: path}
	r.memo = newMemo(r.load)
	return r
}

func (r *baselineRepository) load() (*domain.BaselineDataset, error) {
	t, err := readCSVFile(r.path)
	if err != nil {
		return nil, err
	}

	return buildBaseline(t)
}

// buildBaseline infere o tipo de cada coluna: numérica quando todo valor não nulo
// é um número, categórica caso contrário.
func buildBaseline(t *table) (*domain.BaselineDataset, error) {
	columns := make([]*domain.Column, len(t.header))
	for j, name := range t.header {
		values := make([]string, len(t.rows))
		for i, row := range t.rows {
			if !isNull(row[j]) {
				values[i] = strings.TrimSpace(row[j])
			}
		}
		columns[j] = newColumn(name, values)
	}

	ds := domain.NewBaselineDataset(columns, len(t.rows))

	if _, ok := ds.Column(domain.LabelColumn); ok {
		return ds, nil
	}

	churn, ok := ds.Column(domain.ChurnColumn)
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumns, "%s or %s", domain.ChurnColumn, domain.LabelColumn)
	}

	ds.AddColumn(deriveLabel(churn))

	return ds, nil
}

func newColumn(name string, values []string) *domain.Column {
	numbers := make([]float64, len(values))
	for i, v := range values {
		if v == "" {
			numbers[i] = math.NaN()
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &domain.Column{Name: name, Kind: domain.ColumnCategorical, Values: values}
		}
		numbers[i] = n
	}

	return &domain.Column{Name: name, Kind: domain.ColumnNumeric, Values: values, Numbers: numbers}
}

// deriveLabel cria subscription_status a partir de churn {0: No Churn, 1: Churn}
func deriveLabel(churn *domain.Column) *domain.Column {
	values := make([]string, len(churn.Values))
	for i, raw := range churn.Values {
		if churn.Kind == domain.ColumnNumeric {
			values[i] = churnLabels[churn.Numbers[i]]
			continue
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			values[i] = churnLabels[n]
		}
	}

	return &domain.Column{Name: domain.LabelColumn, Kind: domain.ColumnCategorical, Values: values}
}

func (r *baselineRepository) GetDataset() (*domain.BaselineDataset, error) {
	s, err := r.memo.get()
	if err != nil {
		return nil, err
	}
	return s.value, nil
}

func (r *baselineRepository) Reload() error {
	s, err := r.memo.reload()
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"dataset": "baseline",
		"rows":    s.value.Rows,
	}).Info("dataset: base exploratória recarregada")

	return nil
}

func (r *baselineRepository) Status() domain.DatasetStatus {
	status := domain.DatasetStatus{Name: "baseline", Path: r.path}
	if s := r.memo.peek(); s != nil {
		loadedAt := s.loadedAt
		status.Loaded = true
		status.Rows = s.value.Rows
		status.LoadedAt = &loadedAt
	}
	return status
}
