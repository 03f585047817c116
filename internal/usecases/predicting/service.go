package predicting

import (
	"context"
	"errors"
	"strconv"

	"github.com/churninsights/churn-insights-api/infrastructure/dataset"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/usecases/preprocessing"
	"github.com/churninsights/churn-insights-api/internal/usecases/ranking"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

type Predictor interface {
	Predict(ctx context.Context, customerID string) (*domain.PredictionResponse, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	ModelVersion() string
}

type Service struct {
	customerRepository dataset.CustomerRepository
	preprocessor       preprocessing.Preprocessor
	model              Model
	ranker             ranking.AttributionRanker
	schema             domain.FeatureSchema
}

// NewService falha se o schema do modelo não puder ser produzido pelo pré-processamento
func NewService(
	customerRepository dataset.CustomerRepository,
	preprocessor preprocessing.Preprocessor,
	model Model,
	ranker ranking.AttributionRanker,
) (*Service, error) {
	schema := model.Schema()
	if err := preprocessor.ValidateSchema(schema); err != nil {
		return nil, NewPredictionError(ErrSchemaMismatch, apiErrors.ErrModel, "", err.Error())
	}

	return &Service{
		customerRepository: customerRepository,
		preprocessor:       preprocessor,
		model:              model,
		ranker:             ranker,
		schema:             schema,
	}, nil
}

func (s *Service) ModelVersion() string {
	return s.model.Version()
}

func (s *Service) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	if customerID == "" {
		return nil, NewPredictionError(ErrCustomerIDRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	customer, err := s.customerRepository.GetCustomerByID(customerID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("predicting: falha ao carregar o dataset de clientes")
		return nil, NewPredictionError(ErrDatasetUnavailable, apiErrors.ErrInternalServer, customerID, "")
	}
	if customer == nil {
		return nil, NewPredictionError(ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, customerID, "")
	}

	return customer, nil
}

// Predict pré-processa o cliente, pontua, calcula as atribuições e seleciona o top 10
func (s *Service) Predict(ctx context.Context, customerID string) (*domain.PredictionResponse, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"customer_id":   customerID,
		"model_version": s.model.Version(),
	})

	vector, diagnostics, err := s.preprocessor.Preprocess(customer.Raw(), s.schema)
	if err != nil {
		return nil, s.preprocessError(customerID, err)
	}

	for column := range diagnostics.UnknownCategoricals {
		unknownCategoricalsTotal.WithLabelValues(column).Inc()
	}

	score, err := s.model.Score(vector)
	if err != nil {
		logger.WithError(err).Error("predicting: vetor incompatível com o modelo")
		return nil, NewPredictionError(ErrSchemaMismatch, apiErrors.ErrModel, customerID, err.Error())
	}

	explanation, err := s.model.Explain(vector)
	if err != nil {
		logger.WithError(err).Error("predicting: falha ao calcular atribuições")
		return nil, NewPredictionError(ErrSchemaMismatch, apiErrors.ErrModel, customerID, err.Error())
	}

	predictionsTotal.WithLabelValues(strconv.Itoa(score.PredictedClass)).Inc()

	logger.WithFields(log.Fields{
		"customer_churn_probability": score.ChurnProbability,
		"customer_predicted_class":   score.PredictedClass,
	}).Debug("predicting: predição concluída")

	return &domain.PredictionResponse{
		Prediction: &domain.Prediction{
			CustomerID:       customer.CustomerID,
			PredictedClass:   score.PredictedClass,
			ChurnProbability: score.ChurnProbability,
			ExpectedValue:    explanation.ExpectedValue,
			Attributions:     explanation.Attributions,
			ModelVersion:     s.model.Version(),
		},
		Risk:            AssessRisk(customer),
		TopAttributions: s.ranker.TopAttributions(explanation.Attributions, ranking.DefaultTopK),
		Diagnostics:     diagnostics,
	}, nil
}

func (s *Service) preprocessError(customerID string, err error) error {
	var preprocessErr *preprocessing.PreprocessError
	if !errors.As(err, &preprocessErr) {
		return NewPredictionError(ErrInvalidRecord, apiErrors.ErrInternalServer, customerID, err.Error())
	}

	if errors.Is(err, preprocessing.ErrSchemaMismatch) {
		return NewPredictionError(ErrSchemaMismatch, apiErrors.ErrModel, customerID, err.Error())
	}

	return NewPredictionError(ErrInvalidRecord, preprocessErr.Code, customerID, err.Error())
}
