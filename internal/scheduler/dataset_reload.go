package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/churninsights/churn-insights-api/infrastructure/dataset"
	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/domain"
)

var ErrReloadInProgress = errors.New("dataset reload already in progress")

// DatasetReloadService recarrega os datasets de clientes e base no cron configurado.
// Requisições em andamento continuam usando o snapshot anterior até a troca.
type DatasetReloadService struct {
	scheduler          *gocron.Scheduler
	config             config.DatasetReload
	customerRepository dataset.CustomerRepository
	baselineRepository dataset.BaselineRepository
	reloadRunning      bool
	reloadMutex        sync.Mutex
	lastStartedAt      time.Time
	lastCompletedAt    time.Time
	lastError          string
}

func NewDatasetReloadService(
	customerRepository dataset.CustomerRepository,
	baselineRepository dataset.BaselineRepository,
	cfg config.DatasetReload,
) *DatasetReloadService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cfg.CronSchedule,
		"reload_enabled": cfg.Enabled,
	}).Info("scheduler: configuração da recarga de datasets carregada")

	return &DatasetReloadService{
		scheduler:          gocron.NewScheduler(time.Local),
		config:             cfg,
		customerRepository: customerRepository,
		baselineRepository: baselineRepository,
	}
}

// Start agenda a recarga; o agendador para quando o contexto é cancelado
func (s *DatasetReloadService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: recarga de datasets desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: iniciando agendador de recarga de datasets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Reload(); err != nil && !errors.Is(err, ErrReloadInProgress) {
			logrus.WithError(err).Error("scheduler: recarga agendada falhou")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga de datasets: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: parando agendador de recarga de datasets")
		s.scheduler.Stop()
	}()

	return nil
}

// Reload recarrega os dois datasets. Se um deles falhar, o snapshot anterior dele é mantido.
func (s *DatasetReloadService) Reload() error {
	s.reloadMutex.Lock()
	if s.reloadRunning {
		s.reloadMutex.Unlock()
		logrus.Info("scheduler: recarga de datasets já em andamento, ignorando")
		return ErrReloadInProgress
	}
	s.reloadRunning = true
	s.lastStartedAt = time.Now()
	s.reloadMutex.Unlock()

	startTime := time.Now()

	errs := make([]error, 0, 2)
	if err := s.customerRepository.Reload(); err != nil {
		errs = append(errs, fmt.Errorf("customers: %w", err))
	}
	if err := s.baselineRepository.Reload(); err != nil {
		errs = append(errs, fmt.Errorf("baseline: %w", err))
	}
	err := errors.Join(errs...)

	s.reloadMutex.Lock()
	s.reloadRunning = false
	s.lastCompletedAt = time.Now()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.reloadMutex.Unlock()

	entry := logrus.WithField("duration", time.Since(startTime).String())
	if err != nil {
		entry.WithError(err).Error("scheduler: recarga de datasets concluída com erros")
		return err
	}
	entry.Info("scheduler: recarga de datasets concluída")

	return nil
}

func (s *DatasetReloadService) GetStatus() domain.ReloadStatus {
	s.reloadMutex.Lock()
	defer s.reloadMutex.Unlock()

	status := domain.ReloadStatus{
		Enabled:      s.config.Enabled,
		CronSchedule: s.config.CronSchedule,
		Running:      s.reloadRunning,
		LastError:    s.lastError,
		Datasets: []domain.DatasetStatus{
			s.customerRepository.Status(),
			s.baselineRepository.Status(),
		},
	}
	if !s.lastStartedAt.IsZero() {
		started := s.lastStartedAt
		status.LastStartedAt = &started
	}
	if !s.lastCompletedAt.IsZero() {
		completed := s.lastCompletedAt
		status.LastCompletedAt = &completed
	}

	return status
}
