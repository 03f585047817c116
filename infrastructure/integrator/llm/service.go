package llm

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	llmdomain "github.com/churninsights/churn-insights-api/infrastructure/integrator/llm/domain"
	"github.com/churninsights/churn-insights-api/infrastructure/integrator/llm/llmclient"
	"github.com/churninsights/churn-insights-api/internal/config"
)

var ErrTimeout = errors.New("llm request timed out")

type LLMIntegrator struct {
	cfg    config.LLM
	Client llmclient.Client
}

func New(cfg config.LLM, client llmclient.Client) *LLMIntegrator {
	return &LLMIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// Model devolve o nome do modelo configurado, usado na chave de cache
func (s *LLMIntegrator) Model() string {
	return s.cfg.Model
}

// GenerateNarrative envia o prompt como mensagem de sistema seguida de uma mensagem de usuário vazia.
// O texto devolvido não passa por nenhuma validação.
func (s *LLMIntegrator) GenerateNarrative(ctx context.Context, systemPrompt string) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llmdomain.ChatRequest{
		Model: s.cfg.Model,
		Messages: []llmdomain.Message{
			{Role: llmdomain.RoleSystem, Content: systemPrompt},
			{Role: llmdomain.RoleUser, Content: ""},
		},
	}

	start := time.Now()
	resp, err := s.Client.ChatCompletion(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = errors.Wrap(ErrTimeout, err.Error())
		}
		outcome := classify(err)
		observe(outcome, elapsed)
		logrus.WithFields(logrus.Fields{
			"model":   s.cfg.Model,
			"outcome": outcome,
			"elapsed": elapsed.String(),
			"error":   err.Error(),
		}).Error("llm: failed to generate narrative")
		return "", err
	}

	observe(outcomeSuccess, elapsed)
	logrus.WithFields(logrus.Fields{
		"model":             s.cfg.Model,
		"elapsed":           elapsed.String(),
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("llm: narrative generated")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classify(err error) string {
	var apiErr *llmdomain.APIError
	switch {
	case errors.Is(err, ErrTimeout):
		return outcomeTimeout
	case errors.As(err, &apiErr):
		return outcomeAPIError
	default:
		return outcomeTransport
	}
}
