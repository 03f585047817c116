package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/scheduler"
	"github.com/churninsights/churn-insights-api/internal/usecases/describing"
	describingmocks "github.com/churninsights/churn-insights-api/internal/usecases/describing/mocks"
	explainingmocks "github.com/churninsights/churn-insights-api/internal/usecases/explaining/mocks"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	predictingmocks "github.com/churninsights/churn-insights-api/internal/usecases/predicting/mocks"
	profilingmocks "github.com/churninsights/churn-insights-api/internal/usecases/profiling/mocks"
	"github.com/churninsights/churn-insights-api/internal/usecases/session"
	sessionmocks "github.com/churninsights/churn-insights-api/internal/usecases/session/mocks"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

type stubReloader struct {
	err    error
	status domain.ReloadStatus
}

func (s *stubReloader) Reload() error {
	return s.err
}

func (s *stubReloader) GetStatus() domain.ReloadStatus {
	return s.status
}

type serviceMocks struct {
	profiler  *profilingmocks.MockProfiler
	predictor *predictingmocks.MockPredictor
	explainer *explainingmocks.MockExplainer
	describer *describingmocks.MockDescriber
	sessions  *sessionmocks.MockSessionService
	reloader  *stubReloader
}

func predictionFixture(customerID string) *domain.PredictionResponse {
	return &domain.PredictionResponse{
		Prediction: &domain.Prediction{
			CustomerID:       customerID,
			PredictedClass:   1,
			ChurnProbability: 0.82,
			ModelVersion:     "v1",
		},
		Risk: domain.RiskAssessment{Level: "High", Label: "High Risk of Churn", Severity: domain.SeverityError},
		TopAttributions: []domain.FeatureAttribution{
			{Feature: "tenure_days", AttributionValue: -0.2, Direction: domain.DecreasesChurn},
			{Feature: "days_since_last_login", AttributionValue: 0.6, Direction: domain.IncreasesChurn},
		},
	}
}

func TestRoutes(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		setup      func(m *serviceMocks)
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "healthcheck",
			method:     http.MethodGet,
			path:       "/healthcheck",
			setup:      func(m *serviceMocks) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "healthcheck ignora token de sessão",
			method:     http.MethodGet,
			path:       "/healthcheck",
			token:      "expired",
			setup:      func(m *serviceMocks) {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "rotas de cliente ignoram token de sessão",
			method: http.MethodGet,
			path:   "/v1/customers/C1/prediction",
			token:  "expired",
			setup: func(m *serviceMocks) {
				m.predictor.EXPECT().Predict(gomock.Any(), "C1").Return(predictionFixture("C1"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "lista clientes filtrando risco",
			method: http.MethodGet,
			path:   "/v1/customers?risk=High",
			setup: func(m *serviceMocks) {
				m.profiler.EXPECT().ListCustomers(gomock.Any(), "High").Return([]domain.CustomerSummary{
					{CustomerID: "C1", Name: "Ana Silva", ChurnRisk: "High", ChurnScore: 0.9},
				}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body []domain.CustomerSummary
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Len(t, body, 1)
				assert.Equal(t, "C1", body[0].CustomerID)
			},
		},
		{
			name:   "perfil de cliente inexistente",
			method: http.MethodGet,
			path:   "/v1/customers/C404/profile",
			setup: func(m *serviceMocks) {
				m.profiler.EXPECT().GetProfile(gomock.Any(), "C404").
					Return(nil, predicting.NewPredictionError(predicting.ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, "C404", ""))
			},
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, apiErrors.ErrCustomerNotFound, body.Code)
				assert.Equal(t, "Customer not found.", body.Message)
			},
		},
		{
			name:   "predição",
			method: http.MethodGet,
			path:   "/v1/customers/C1/prediction",
			setup: func(m *serviceMocks) {
				m.predictor.EXPECT().Predict(gomock.Any(), "C1").Return(predictionFixture("C1"), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.PredictionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, 0.82, body.Prediction.ChurnProbability)
				assert.Len(t, body.TopAttributions, 2)
			},
		},
		{
			name:   "erro de modelo responde 500",
			method: http.MethodGet,
			path:   "/v1/customers/C1/prediction",
			setup: func(m *serviceMocks) {
				m.predictor.EXPECT().Predict(gomock.Any(), "C1").
					Return(nil, predicting.NewPredictionError(predicting.ErrSchemaMismatch, apiErrors.ErrModel, "C1", "vector has 37 columns"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "relatório narrativo",
			method: http.MethodPost,
			path:   "/v1/customers/C1/report",
			setup: func(m *serviceMocks) {
				m.explainer.EXPECT().GenerateReport(gomock.Any(), "C1").Return(&domain.NarrativeReport{
					ID:         "abc123def456",
					CustomerID: "C1",
					Narrative:  "fallback",
					Fallback:   true,
					CreatedAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.NarrativeReport
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.True(t, body.Fallback)
				assert.Equal(t, "abc123def456", body.ID)
			},
		},
		{
			name:       "histórico com limit inválido",
			method:     http.MethodGet,
			path:       "/v1/customers/C1/reports?limit=abc",
			setup:      func(m *serviceMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "histórico com limit",
			method: http.MethodGet,
			path:   "/v1/customers/C1/reports?limit=5",
			setup: func(m *serviceMocks) {
				m.explainer.EXPECT().ListReports(gomock.Any(), "C1", 5).
					Return(&domain.ReportHistoryResponse{CustomerID: "C1", Reports: []*domain.NarrativeReport{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "gráfico de atribuições",
			method: http.MethodGet,
			path:   "/v1/customers/C1/attributions/chart.png",
			setup: func(m *serviceMocks) {
				m.predictor.EXPECT().Predict(gomock.Any(), "C1").Return(predictionFixture("C1"), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
				assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngSignature))
			},
		},
		{
			name:   "seleciona cliente na sessão",
			method: http.MethodPost,
			path:   "/v1/session",
			body:   `{"customer_id":"C1"}`,
			setup: func(m *serviceMocks) {
				m.sessions.EXPECT().Issue(gomock.Any(), "C1").Return(&domain.SessionResponse{
					Token:              "signed",
					SessionID:          "sid",
					SelectedCustomerID: "C1",
				}, nil)
			},
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.SessionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "signed", body.Token)
			},
		},
		{
			name:       "sessão com corpo inválido",
			method:     http.MethodPost,
			path:       "/v1/session",
			body:       `{"customer_id":`,
			setup:      func(m *serviceMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "sessão para cliente inexistente",
			method: http.MethodPost,
			path:   "/v1/session",
			body:   `{"customer_id":"C404"}`,
			setup: func(m *serviceMocks) {
				m.sessions.EXPECT().Issue(gomock.Any(), "C404").
					Return(nil, session.NewSessionError(session.ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, "C404", ""))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "predição da sessão sem cliente selecionado",
			method:     http.MethodGet,
			path:       "/v1/session/prediction",
			setup:      func(m *serviceMocks) {},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.ProfileView
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, domain.ProfileStatusNoCustomerSelected, body.Status)
				assert.Equal(t, "No customer selected.", body.Message)
			},
		},
		{
			name:   "predição da sessão com cliente selecionado",
			method: http.MethodGet,
			path:   "/v1/session/prediction",
			token:  "tok",
			setup: func(m *serviceMocks) {
				m.sessions.EXPECT().Validate("tok").Return(&domain.SessionContext{SessionID: "sid", SelectedCustomerID: "C1"}, nil)
				m.predictor.EXPECT().Predict(gomock.Any(), "C1").Return(predictionFixture("C1"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "relatório da sessão",
			method: http.MethodPost,
			path:   "/v1/session/report",
			token:  "tok",
			setup: func(m *serviceMocks) {
				m.sessions.EXPECT().Validate("tok").Return(&domain.SessionContext{SessionID: "sid", SelectedCustomerID: "C1"}, nil)
				m.explainer.EXPECT().GenerateReport(gomock.Any(), "C1").Return(&domain.NarrativeReport{CustomerID: "C1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "perfil da sessão com token inválido",
			method: http.MethodGet,
			path:   "/v1/session/profile",
			token:  "expired",
			setup: func(m *serviceMocks) {
				m.sessions.EXPECT().Validate("expired").
					Return(nil, session.NewSessionError(session.ErrExpiredToken, apiErrors.ErrInvalidSession, "", ""))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "perfil da sessão sem token",
			method: http.MethodGet,
			path:   "/v1/session/profile",
			setup: func(m *serviceMocks) {
				m.profiler.EXPECT().GetSessionProfile(gomock.Any(), (*domain.SessionContext)(nil)).
					Return(&domain.ProfileView{Status: domain.ProfileStatusNoCustomerSelected, Message: "No customer selected."}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "features do dashboard",
			method: http.MethodGet,
			path:   "/v1/dashboard/features",
			setup: func(m *serviceMocks) {
				m.describer.EXPECT().ListFeatures(gomock.Any()).Return([]domain.FeatureInfo{
					{Name: "tenure_days", Kind: domain.ColumnNumeric},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "feature desconhecida",
			method: http.MethodGet,
			path:   "/v1/dashboard/features/unknown?analysis=bivariate",
			setup: func(m *serviceMocks) {
				m.describer.EXPECT().Analyze(gomock.Any(), "unknown", domain.AnalysisBivariate).
					Return(nil, describing.NewDescribeError(describing.ErrUnknownFeature, apiErrors.ErrUnknownFeature, "unknown", ""))
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, apiErrors.ErrUnknownFeature, body.Code)
			},
		},
		{
			name:   "gráfico de frequências",
			method: http.MethodGet,
			path:   "/v1/dashboard/features/region/chart.png",
			setup: func(m *serviceMocks) {
				m.describer.EXPECT().Analyze(gomock.Any(), "region", domain.AnalysisType("")).Return(&domain.FeatureAnalysis{
					Feature:  "region",
					Kind:     domain.ColumnCategorical,
					Analysis: domain.AnalysisUnivariate,
					Frequencies: []domain.CategoryCount{
						{Value: "Europe", Count: 4},
						{Value: "Asia", Count: 2},
					},
				}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngSignature))
			},
		},
		{
			name:   "recarga em andamento",
			method: http.MethodPost,
			path:   "/v1/datasets/reload",
			setup: func(m *serviceMocks) {
				m.reloader.err = scheduler.ErrReloadInProgress
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "recarga com falha",
			method: http.MethodPost,
			path:   "/v1/datasets/reload",
			setup: func(m *serviceMocks) {
				m.reloader.err = errors.New("customers: open data/home_data.csv: no such file or directory")
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "status dos datasets",
			method: http.MethodGet,
			path:   "/v1/datasets/status",
			setup: func(m *serviceMocks) {
				m.reloader.status = domain.ReloadStatus{CronSchedule: "0 2 * * *"}
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.ReloadStatus
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "0 2 * * *", body.CronSchedule)
			},
		},
		{
			name:       "rota inexistente",
			method:     http.MethodGet,
			path:       "/v1/unknown",
			setup:      func(m *serviceMocks) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := &serviceMocks{
				profiler:  profilingmocks.NewMockProfiler(ctrl),
				predictor: predictingmocks.NewMockPredictor(ctrl),
				explainer: explainingmocks.NewMockExplainer(ctrl),
				describer: describingmocks.NewMockDescriber(ctrl),
				sessions:  sessionmocks.NewMockSessionService(ctrl),
				reloader:  &stubReloader{},
			}
			tt.setup(m)

			h := NewHandler(&config.Config{
				Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}},
			}, Services{
				Profiler:  m.profiler,
				Predictor: m.predictor,
				Explainer: m.explainer,
				Describer: m.describer,
				Sessions:  m.sessions,
				Reloader:  m.reloader,
			})

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	h := NewHandler(&config.Config{}, Services{
		Profiler:  profilingmocks.NewMockProfiler(ctrl),
		Predictor: predictingmocks.NewMockPredictor(ctrl),
		Explainer: explainingmocks.NewMockExplainer(ctrl),
		Describer: describingmocks.NewMockDescriber(ctrl),
		Sessions:  sessionmocks.NewMockSessionService(ctrl),
		Reloader:  &stubReloader{},
	})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `churn_http_requests_total{method="GET",route="/healthcheck",status="200"}`)
}
