package llm

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	llmdomain "github.com/churninsights/churn-insights-api/infrastructure/integrator/llm/domain"
	"github.com/churninsights/churn-insights-api/infrastructure/integrator/llm/llmclient/mocks"
	"github.com/churninsights/churn-insights-api/internal/config"
)

func TestGenerateNarrative(t *testing.T) {
	cfg := config.LLM{Model: "qwen/qwen3-235b-a22b", Timeout: 50 * time.Millisecond}

	tests := []struct {
		name     string
		setup    func(client *mocks.MockClient)
		validate func(t *testing.T, text string, err error)
	}{
		{
			name: "envia prompt de sistema e mensagem de usuário vazia",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					ChatCompletion(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req llmdomain.ChatRequest) (*llmdomain.ChatResponse, error) {
						_, hasDeadline := ctx.Deadline()
						assert.True(t, hasDeadline)
						assert.Equal(t, cfg.Model, req.Model)
						require.Len(t, req.Messages, 2)
						assert.Equal(t, llmdomain.Message{Role: llmdomain.RoleSystem, Content: "prompt"}, req.Messages[0])
						assert.Equal(t, llmdomain.Message{Role: llmdomain.RoleUser, Content: ""}, req.Messages[1])
						return &llmdomain.ChatResponse{Choices: []llmdomain.Choice{{Message: llmdomain.Message{Content: "  ### Relatório\n"}}}}, nil
					})
			},
			validate: func(t *testing.T, text string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "### Relatório", text)
			},
		},
		{
			name: "timeout vira ErrTimeout",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					ChatCompletion(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req llmdomain.ChatRequest) (*llmdomain.ChatResponse, error) {
						<-ctx.Done()
						return nil, ctx.Err()
					})
			},
			validate: func(t *testing.T, text string, err error) {
				assert.Empty(t, text)
				assert.True(t, errors.Is(err, ErrTimeout))
				assert.Equal(t, outcomeTimeout, classify(err))
			},
		},
		{
			name: "erro da API é repassado",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					ChatCompletion(gomock.Any(), gomock.Any()).
					Return(nil, &llmdomain.APIError{StatusCode: 500})
			},
			validate: func(t *testing.T, text string, err error) {
				var apiErr *llmdomain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, outcomeAPIError, classify(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			text, err := New(cfg, client).GenerateNarrative(context.Background(), "prompt")
			tt.validate(t, text, err)
		})
	}
}
