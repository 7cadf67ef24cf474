package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{APIKey: "sk-test", BaseURL: srv.URL})
}

func TestChatSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "hello from openai"}},
			},
		})
	})

	out, err := p.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello from openai", out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, DefaultModel, gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestGenerateWrapsPromptAsUserMessage(t *testing.T) {
	var gotReq chatCompletionRequest
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		})
	})

	_, err := p.Generate(context.Background(), "analyse this job")
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "analyse this job", gotReq.Messages[0].Content)
}

func TestChatErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrProviderAuth},
		{"forbidden", http.StatusForbidden, domain.ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, domain.ErrProviderRateLimited},
		{"server error", http.StatusInternalServerError, domain.ErrProviderUnavailable},
		{"bad gateway", http.StatusBadGateway, domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestChatMalformedBody(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestChatEmptyChoices(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestChatNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	p := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrProviderNetwork)
}

func TestPing(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data": []}`))
	})

	assert.NoError(t, p.Ping(context.Background()))
}

func TestPingBadKey(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	assert.ErrorIs(t, p.Ping(context.Background()), domain.ErrProviderAuth)
}

func TestConfigured(t *testing.T) {
	assert.True(t, New(Config{APIKey: "sk-test"}).Configured())
	assert.False(t, New(Config{}).Configured())
}

func TestDefaults(t *testing.T) {
	p := New(Config{APIKey: "sk-test"})
	assert.Equal(t, domain.ProviderOpenAI.String(), p.Name())
	assert.Equal(t, DefaultModel, p.Model())
	assert.NoError(t, p.Close())
}
