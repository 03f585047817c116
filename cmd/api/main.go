package main

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/churninsights/churn-insights-api/infrastructure/cache"
	"github.com/churninsights/churn-insights-api/infrastructure/database/postgres"
	"github.com/churninsights/churn-insights-api/infrastructure/dataset"
	"github.com/churninsights/churn-insights-api/infrastructure/integrator/llm"
	"github.com/churninsights/churn-insights-api/infrastructure/integrator/llm/llmclient"
	"github.com/churninsights/churn-insights-api/infrastructure/model/xgboost"
	"github.com/churninsights/churn-insights-api/infrastructure/repository"
	"github.com/churninsights/churn-insights-api/internal/api"
	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/scheduler"
	"github.com/churninsights/churn-insights-api/internal/usecases/describing"
	"github.com/churninsights/churn-insights-api/internal/usecases/explaining"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/internal/usecases/preprocessing"
	"github.com/churninsights/churn-insights-api/internal/usecases/profiling"
	"github.com/churninsights/churn-insights-api/internal/usecases/ranking"
	"github.com/churninsights/churn-insights-api/internal/usecases/session"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

const reportsStorePostgres = "postgres"

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("main: nível de log configurado para %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	customerRepo := dataset.NewCustomerRepository(cfg.Datasets.CustomersPath)
	baselineRepo := dataset.NewBaselineRepository(cfg.Datasets.BaselinePath)

	// Artefato ou schema inválido impede a subida
	model, err := xgboost.Load(cfg.Model.Path)
	if err != nil {
		logrus.WithError(err).Fatal("main: erro ao carregar o modelo")
	}

	predictor, err := predicting.NewService(
		customerRepo,
		preprocessing.NewService(),
		model,
		ranking.NewTopAttributionService(),
	)
	if err != nil {
		logrus.WithError(err).Fatal("main: schema do modelo incompatível com o pré-processamento")
	}

	logrus.WithFields(logrus.Fields{
		"model_version": predictor.ModelVersion(),
		"model_path":    cfg.Model.Path,
	}).Info("main: modelo carregado")

	narrator := llm.New(cfg.LLM, llmclient.NewClient(cfg.LLM))

	reportRepo := reportRepository(ctx, cfg)

	var narrativeCache cache.NarrativeCache
	if cfg.Reports.NarrativeCache {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("main: redis indisponível, narrativas não serão cacheadas")
		} else {
			defer redisClient.Close()
			narrativeCache = cache.NewNarrativeCache(redisClient, cfg.Reports.NarrativeCacheTTL)
			logrus.WithField("addr", cfg.Redis.Addr).Info("main: cache de narrativas habilitado")
		}
	}

	explainer := explaining.NewService(predictor, narrator, reportRepo, narrativeCache, cfg.Reports.HistoryDefaultLimit)
	describer := describing.NewService(baselineRepo)
	sessions := session.NewService(customerRepo, cfg.Session)
	profiler := profiling.NewService(customerRepo, predictor)

	reloadService := scheduler.NewDatasetReloadService(customerRepo, baselineRepo, cfg.DatasetReload)
	if err := reloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("main: erro ao iniciar o agendador de recarga dos datasets")
	}

	server, err := api.New(cfg, api.Services{
		Profiler:  profiler,
		Predictor: predictor,
		Explainer: explainer,
		Describer: describer,
		Sessions:  sessions,
		Reloader:  reloadService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// reportRepository usa o PostgreSQL quando REPORTS_STORE=postgres; sem ele os relatórios não são persistidos
func reportRepository(ctx context.Context, cfg *config.Config) repository.ReportRepository {
	if !strings.EqualFold(cfg.Reports.Store, reportsStorePostgres) {
		logrus.Info("main: persistência de relatórios desabilitada")
		return repository.NewNoopReportRepository()
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("main: erro ao conectar ao PostgreSQL")
	}

	logrus.Info("main: conexão com PostgreSQL estabelecida com sucesso")
	return repository.NewReportRepository(conn)
}
