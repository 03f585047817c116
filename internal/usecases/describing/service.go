package describing

import (
	"context"

	"github.com/churninsights/churn-insights-api/infrastructure/dataset"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

type Describer interface {
	ListFeatures(ctx context.Context) ([]domain.FeatureInfo, error)
	Summarize(ctx context.Context, feature string) (*domain.FeatureSummary, error)
	Analyze(ctx context.Context, feature string, analysis domain.AnalysisType) (*domain.FeatureAnalysis, error)
}

type Service struct {
	baselineRepository dataset.BaselineRepository
}

func NewService(baselineRepository dataset.BaselineRepository) Describer {
	return &Service{
		baselineRepository: baselineRepository,
	}
}

// ListFeatures devolve as colunas selecionáveis, sem churn e subscription_status
func (s *Service) ListFeatures(ctx context.Context) ([]domain.FeatureInfo, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}

	features := make([]domain.FeatureInfo, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		if !selectable(c.Name) {
			continue
		}
		features = append(features, domain.FeatureInfo{Name: c.Name, Kind: c.Kind})
	}

	return features, nil
}

func (s *Service) Summarize(ctx context.Context, feature string) (*domain.FeatureSummary, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}

	column, err := lookup(ds, feature)
	if err != nil {
		return nil, err
	}

	summary := summarize(column, ds.Rows)
	return &summary, nil
}

func (s *Service) Analyze(ctx context.Context, feature string, analysis domain.AnalysisType) (*domain.FeatureAnalysis, error) {
	if analysis == "" {
		analysis = domain.AnalysisUnivariate
	}
	if analysis != domain.AnalysisUnivariate && analysis != domain.AnalysisBivariate {
		return nil, NewDescribeError(ErrInvalidAnalysis, apiErrors.ErrInvalidRequest, feature, string(analysis))
	}

	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}

	column, err := lookup(ds, feature)
	if err != nil {
		return nil, err
	}

	if analysis == domain.AnalysisBivariate {
		label, _ := ds.Column(domain.LabelColumn)
		return Bivariate(column, label, ds.Rows), nil
	}

	return Univariate(column, ds.Rows), nil
}

// Univariate gera histograma de 30 bins e boxplot para colunas numéricas,
// e contagem de frequências para categóricas
func Univariate(column *domain.Column, rows int) *domain.FeatureAnalysis {
	result := &domain.FeatureAnalysis{
		Feature:  column.Name,
		Kind:     column.Kind,
		Analysis: domain.AnalysisUnivariate,
		Summary:  summarize(column, rows),
	}

	if column.Kind == domain.ColumnNumeric {
		values := nonNull(column)
		result.Histograms = []domain.Histogram{histogram("", values, histogramEdges(values, histogramBins))}
		result.Boxes = []domain.BoxSummary{boxSummary("", values)}
		return result
	}

	result.Frequencies = frequencies(column.Values)
	return result
}

// Bivariate agrupa a coluna pelo rótulo de churn
func Bivariate(column, label *domain.Column, rows int) *domain.FeatureAnalysis {
	result := &domain.FeatureAnalysis{
		Feature:  column.Name,
		Kind:     column.Kind,
		Analysis: domain.AnalysisBivariate,
		Summary:  summarize(column, rows),
	}

	labels := labelsOf(label)

	if column.Kind == domain.ColumnNumeric {
		groups := numericByLabel(column, label)

		all := make([]float64, 0)
		for _, l := range labels {
			all = append(all, groups[l]...)
		}
		edges := histogramEdges(all, histogramBins)

		for _, l := range labels {
			result.Histograms = append(result.Histograms, histogram(l, groups[l], edges))
			result.Boxes = append(result.Boxes, boxSummary(l, groups[l]))
		}
		return result
	}

	result.GroupedFrequencies = groupedCounts(column, label, labels)
	result.CrossTab = crossTab(column, label, labels)
	return result
}

func summarize(column *domain.Column, rows int) domain.FeatureSummary {
	summary := domain.FeatureSummary{Feature: column.Name, Kind: column.Kind}
	if column.Kind == domain.ColumnNumeric {
		summary.Numeric = summarizeNumeric(nonNull(column))
	} else {
		summary.Categorical = summarizeCategorical(column.Values, rows)
	}
	return summary
}

func (s *Service) dataset(ctx context.Context) (*domain.BaselineDataset, error) {
	ds, err := s.baselineRepository.GetDataset()
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("describing: falha ao carregar o dataset base")
		return nil, NewDescribeError(ErrDatasetUnavailable, apiErrors.ErrInternalServer, "", "")
	}
	return ds, nil
}

func lookup(ds *domain.BaselineDataset, feature string) (*domain.Column, error) {
	column, ok := ds.Column(feature)
	if !ok || !selectable(feature) {
		return nil, NewDescribeError(ErrUnknownFeature, apiErrors.ErrUnknownFeature, feature, "")
	}
	return column, nil
}

func selectable(name string) bool {
	return name != domain.ChurnColumn && name != domain.LabelColumn
}
