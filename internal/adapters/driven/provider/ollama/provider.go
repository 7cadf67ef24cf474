// Package ollama provides a provider adapter for a local Ollama instance.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 10 * time.Second

	defaultMaxTokens   = 1024
	defaultTemperature = 0.7
)

// Config holds configuration for the Ollama provider.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration

	// RequestsPerMinute throttles calls client-side. Zero disables throttling.
	RequestsPerMinute int
}

// Provider calls a local Ollama instance. No credentials are required, so it
// always reports itself configured; reachability is what the probe decides.
type Provider struct {
	client  *http.Client
	baseURL string
	model   string
	limiter *rate.Limiter
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *options      `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// New creates a new Ollama provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Provider{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		limiter: limiter,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return domain.ProviderOllama.String()
}

// Model returns the configured model identifier.
func (p *Provider) Model() string {
	return p.model
}

// Configured always returns true; Ollama needs no credentials.
func (p *Provider) Configured() bool {
	return true
}

// Chat conducts a multi-turn conversation via /api/chat.
func (p *Provider) Chat(ctx context.Context, messages []driven.ChatMessage) (string, error) {
	chatMessages := make([]chatMessage, len(messages))
	for i, msg := range messages {
		chatMessages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}

	reqBody := chatRequest{
		Model:    p.model,
		Messages: chatMessages,
		Stream:   false,
		Options:  &options{NumPredict: defaultMaxTokens, Temperature: defaultTemperature},
	}

	body, err := p.post(ctx, "/api/chat", reqBody)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: ollama: %v", domain.ErrMalformedResponse, err)
	}
	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("%w: ollama: empty chat message", domain.ErrMalformedResponse)
	}
	return chatResp.Message.Content, nil
}

// Generate produces a completion from a single prompt via /api/generate.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:   p.model,
		Prompt:  prompt,
		Stream:  false,
		Options: &options{NumPredict: defaultMaxTokens, Temperature: defaultTemperature},
	}

	body, err := p.post(ctx, "/api/generate", reqBody)
	if err != nil {
		return "", err
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: ollama: %v", domain.ErrMalformedResponse, err)
	}
	if genResp.Response == "" {
		return "", fmt.Errorf("%w: ollama: empty generate response", domain.ErrMalformedResponse)
	}
	return genResp.Response, nil
}

// post sends a JSON request and returns the body of a 200 response, mapping
// everything else onto the provider error taxonomy.
func (p *Provider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: %v", domain.ErrProviderNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: read response: %v", domain.ErrProviderNetwork, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: ollama: status %d", domain.ErrProviderRateLimited, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: ollama: status %d: %s", domain.ErrProviderUnavailable, resp.StatusCode, body)
	}
}

// Ping validates the instance is reachable by checking the /api/tags
// endpoint.
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: create ping request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama: %v", domain.ErrProviderNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: ollama: status %d: %s", domain.ErrProviderUnavailable, resp.StatusCode, body)
	}
	return nil
}

// Close releases resources.
func (p *Provider) Close() error {
	return nil
}

// wait blocks on the client-side rate limiter when one is configured.
func (p *Provider) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: ollama: %v", domain.ErrProviderNetwork, err)
	}
	return nil
}
