package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/churninsights/churn-insights-api/infrastructure/dataset/mocks"
	"github.com/churninsights/churn-insights-api/internal/config"
	"github.com/churninsights/churn-insights-api/internal/domain"
)

func TestDatasetReloadService_Reload(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(customers *mocks.MockCustomerRepository, baseline *mocks.MockBaselineRepository)
		wantErr  bool
		validate func(t *testing.T, err error, status domain.ReloadStatus)
	}{
		{
			name: "recarrega os dois datasets",
			setup: func(customers *mocks.MockCustomerRepository, baseline *mocks.MockBaselineRepository) {
				customers.EXPECT().Reload().Return(nil)
				baseline.EXPECT().Reload().Return(nil)
			},
			validate: func(t *testing.T, err error, status domain.ReloadStatus) {
				require.NoError(t, err)
				assert.Empty(t, status.LastError)
				assert.NotNil(t, status.LastStartedAt)
				assert.NotNil(t, status.LastCompletedAt)
				assert.False(t, status.Running)
			},
		},
		{
			name: "falha em um dataset não impede o outro",
			setup: func(customers *mocks.MockCustomerRepository, baseline *mocks.MockBaselineRepository) {
				customers.EXPECT().Reload().Return(errors.New("arquivo inválido"))
				baseline.EXPECT().Reload().Return(nil)
			},
			validate: func(t *testing.T, err error, status domain.ReloadStatus) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "customers: arquivo inválido")
				assert.Equal(t, err.Error(), status.LastError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			customers := mocks.NewMockCustomerRepository(ctrl)
			baseline := mocks.NewMockBaselineRepository(ctrl)
			tt.setup(customers, baseline)
			customers.EXPECT().Status().Return(domain.DatasetStatus{Name: "customers"}).AnyTimes()
			baseline.EXPECT().Status().Return(domain.DatasetStatus{Name: "baseline"}).AnyTimes()

			service := NewDatasetReloadService(customers, baseline, config.DatasetReload{CronSchedule: "0 2 * * *"})

			err := service.Reload()
			status := service.GetStatus()
			require.Len(t, status.Datasets, 2)
			assert.Equal(t, "customers", status.Datasets[0].Name)
			tt.validate(t, err, status)
		})
	}
}

func TestDatasetReloadService_ReloadInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewDatasetReloadService(
		mocks.NewMockCustomerRepository(ctrl),
		mocks.NewMockBaselineRepository(ctrl),
		config.DatasetReload{},
	)
	service.reloadRunning = true

	assert.ErrorIs(t, service.Reload(), ErrReloadInProgress)
}

func TestDatasetReloadService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewDatasetReloadService(
		mocks.NewMockCustomerRepository(ctrl),
		mocks.NewMockBaselineRepository(ctrl),
		config.DatasetReload{Enabled: false, CronSchedule: "0 2 * * *"},
	)

	require.NoError(t, service.Start(context.Background()))
	assert.Empty(t, service.scheduler.Jobs())
}

func TestDatasetReloadService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewDatasetReloadService(
		mocks.NewMockCustomerRepository(ctrl),
		mocks.NewMockBaselineRepository(ctrl),
		config.DatasetReload{Enabled: true, CronSchedule: "not a cron"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
