package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/churninsights/churn-insights-api/internal/api/handler"
	"github.com/churninsights/churn-insights-api/internal/api/handler/router"
	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/usecases/describing"
	"github.com/churninsights/churn-insights-api/internal/usecases/explaining"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/internal/usecases/profiling"
	"github.com/churninsights/churn-insights-api/internal/usecases/session"
	"github.com/churninsights/churn-insights-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Profiler  profiling.Profiler
	Predictor predicting.Predictor
	Explainer explaining.Explainer
	Describer describing.Describer
	Sessions  session.SessionService
	Reloader  handler.DatasetReloader
}

type Server struct {
	httpServer *http.Server
}

func New(config *config.Config, services Services) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o router com a cadeia global de middlewares: panic, log, métricas e CORS.
// A sessão é validada por rota, em handler.Session.
func NewHandler(config *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Customers(services.Profiler, services.Predictor, services.Explainer)...),
		router.WithRoutes(handler.Session(services.Sessions, services.Profiler, services.Predictor, services.Explainer)...),
		router.WithRoutes(handler.Dashboard(services.Describer)...),
		router.WithRoutes(handler.Datasets(services.Reloader)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server: iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server: erro durante a execução")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("server: sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("server: contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("server: iniciando desligamento gracioso")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server: erro durante o desligamento")
		return err
	}

	logrus.Info("server: desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
