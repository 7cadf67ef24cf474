package anthropic

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
	return New(Config{APIKey: "sk-ant-test", BaseURL: srv.URL})
}

func TestChatExtractsSystemPrompt(t *testing.T) {
	var gotReq messagesRequest

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "hello from claude"},
			},
		})
	})

	out, err := p.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello from claude", out)
	// The system turn moves to the top-level field, not the message list.
	assert.Equal(t, "be brief", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestChatJoinsTextBlocks(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "first "},
				{"type": "tool_use", "text": "ignored"},
				{"type": "text", "text": "second"},
			},
		})
	})

	out, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "first second", out)
}

func TestChatErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, domain.ErrProviderRateLimited},
		{"overloaded", http.StatusServiceUnavailable, domain.ErrProviderUnavailable},
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

func TestChatNoTextContent(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content": []}`))
	})

	_, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestChatMalformedBody(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("oops"))
	})

	_, err := p.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestGenerateNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	p := New(Config{APIKey: "sk-ant-test", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrProviderNetwork)
}

func TestPing(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"data": []}`))
	})

	assert.NoError(t, p.Ping(context.Background()))
}

func TestConfigured(t *testing.T) {
	assert.True(t, New(Config{APIKey: "sk-ant-test"}).Configured())
	assert.False(t, New(Config{}).Configured())
	assert.Equal(t, domain.ProviderAnthropic.String(), New(Config{}).Name())
}
