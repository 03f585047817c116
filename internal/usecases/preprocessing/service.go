package preprocessing

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

type Preprocessor interface {
	Preprocess(raw map[string]string, schema domain.FeatureSchema) (domain.FeatureVector, domain.PreprocessDiagnostics, error)
	ValidateSchema(schema domain.FeatureSchema) error
}

type Service struct{}

func NewService() Preprocessor {
	return &Service{}
}

// DefaultSchema devolve as 38 colunas do modelo na ordem de treino
func DefaultSchema() domain.FeatureSchema {
	features := make([]string, len(defaultFeatures))
	copy(features, defaultFeatures)
	return domain.FeatureSchema{Version: DefaultSchemaVersion, Features: features}
}

// ValidateSchema garante que o schema não é vazio, não repete colunas e só usa
// colunas que o pré-processamento sabe produzir.
func (s *Service) ValidateSchema(schema domain.FeatureSchema) error {
	return ValidateSchema(schema)
}

func ValidateSchema(schema domain.FeatureSchema) error {
	if schema.Len() == 0 {
		return NewPreprocessError(ErrSchemaMismatch, apiErrors.ErrModel, "", "schema has no features")
	}

	seen := make(map[string]bool, schema.Len())
	for _, feature := range schema.Features {
		if seen[feature] {
			return NewPreprocessError(ErrSchemaMismatch, apiErrors.ErrModel, feature, "duplicated feature")
		}
		seen[feature] = true

		if !knownFeatures[feature] {
			return NewPreprocessError(ErrSchemaMismatch, apiErrors.ErrModel, feature, "feature is not produced by the preprocessor")
		}
	}

	return nil
}

// Preprocess converte a linha crua do cliente no vetor numérico do schema.
// Categóricos desconhecidos viram zero e ficam registrados nos diagnósticos.
func (s *Service) Preprocess(raw map[string]string, schema domain.FeatureSchema) (domain.FeatureVector, domain.PreprocessDiagnostics, error) {
	diagnostics := domain.PreprocessDiagnostics{}

	if err := ValidateSchema(schema); err != nil {
		return domain.FeatureVector{}, diagnostics, err
	}

	encoded := make(map[string]float64, len(knownFeatures))

	for column, mapping := range ordinalMaps {
		value, present := lookup(raw, column)
		if !present {
			diagnostics.MissingColumns = append(diagnostics.MissingColumns, column)
			continue
		}
		code, ok := mapping[value]
		if !ok {
			markUnknown(&diagnostics, column, value)
			continue
		}
		encoded[column] = code
	}

	for _, enc := range oneHotEncodings {
		value, present := lookup(raw, enc.column)
		if !present {
			diagnostics.MissingColumns = append(diagnostics.MissingColumns, enc.column)
			continue
		}
		if !contains(enc.vocabulary, value) {
			markUnknown(&diagnostics, enc.column, value)
			continue
		}
		encoded[enc.prefix+value] = 1
	}

	for _, column := range continuousColumns {
		value, present := lookup(raw, column)
		if !present {
			diagnostics.MissingColumns = append(diagnostics.MissingColumns, column)
			continue
		}
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.FeatureVector{}, diagnostics, NewPreprocessError(ErrInvalidNumeric, apiErrors.ErrInvalidFormat, column, strconv.Quote(value))
		}
		if math.IsNaN(number) {
			continue
		}
		encoded[column] = number
	}

	sort.Strings(diagnostics.MissingColumns)

	vector := domain.FeatureVector{
		Names:  make([]string, schema.Len()),
		Values: make([]float64, schema.Len()),
	}
	for i, feature := range schema.Features {
		vector.Names[i] = feature
		vector.Values[i] = encoded[feature]
	}

	if diagnostics.HasWarnings() {
		log.L.WithFields(log.Fields{
			"customer_id":          raw["customer_id"],
			"unknown_categoricals": diagnostics.UnknownCategoricals,
			"missing_columns":      diagnostics.MissingColumns,
		}).Debug("preprocessing: colunas preenchidas com zero")
	}

	return vector, diagnostics, nil
}

// lookup trata ausência e texto vazio da mesma forma (NaN no CSV)
func lookup(raw map[string]string, column string) (string, bool) {
	value, ok := raw[column]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func markUnknown(diagnostics *domain.PreprocessDiagnostics, column, value string) {
	if diagnostics.UnknownCategoricals == nil {
		diagnostics.UnknownCategoricals = make(map[string]string)
	}
	diagnostics.UnknownCategoricals[column] = value
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
