package llmclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	llmdomain "github.com/churninsights/churn-insights-api/infrastructure/integrator/llm/domain"
	"github.com/churninsights/churn-insights-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrMissingAPIKey = errors.New("LLM_API_KEY is missing")
	ErrEmptyResponse = errors.New("llm returned no choices")
)

const maxErrorBody = 8 << 10

type Client interface {
	ChatCompletion(ctx context.Context, req llmdomain.ChatRequest) (*llmdomain.ChatResponse, error)
}

type LLMClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient não define timeout no http.Client; o limite vem do contexto de cada chamada
func NewClient(cfg config.LLM) Client {
	return NewClientWithHTTP(cfg, &http.Client{})
}

// NewClientWithHTTP permite injetar o http.Client (usado nos testes com httptest)
func NewClientWithHTTP(cfg config.LLM, httpClient *http.Client) Client {
	return &LLMClient{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// ChatCompletion faz POST {base_url}/chat/completions, sem retry
func (c *LLMClient) ChatCompletion(ctx context.Context, req llmdomain.ChatRequest) (*llmdomain.ChatResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build chat request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "chat request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	var out llmdomain.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode chat response")
	}

	if len(out.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return &out, nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &llmdomain.APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error   *llmdomain.APIError `json:"error"`
		Message string              `json:"message"`
		Detail  string              `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != nil:
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		case envelope.Message != "":
			apiErr.Message = envelope.Message
		default:
			apiErr.Message = envelope.Detail
		}
	}

	return apiErr
}
