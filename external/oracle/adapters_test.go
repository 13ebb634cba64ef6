package oracle

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"{\"assignments\": []}"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`)
	}))
	defer server.Close()

	client, err := NewOpenAIClient(OpenAIConfig{BaseURL: server.URL, APIKey: "sk-test"})
	require.NoError(t, err)

	answer, err := client.Suggest(context.Background(), "plan")
	require.NoError(t, err)
	assert.Equal(t, `{"assignments": []}`, answer)
}

func TestAnthropicClient_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"m1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":"{\"assignments\": []}"}],
			"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`)
	}))
	defer server.Close()

	client, err := NewAnthropicClient(AnthropicConfig{BaseURL: server.URL, APIKey: "ak-test"})
	require.NoError(t, err)

	answer, err := client.Suggest(context.Background(), "plan")
	require.NoError(t, err)
	assert.Equal(t, `{"assignments": []}`, answer)
}

func TestNew_Providers(t *testing.T) {
	none, err := New(Config{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = New(Config{Provider: "carrier-pigeon"})
	require.Error(t, err)

	_, err = New(Config{Provider: ProviderGemini})
	require.Error(t, err, "gemini without key")

	client, err := New(Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)

	guarded, err := New(Config{
		Provider:        ProviderAnthropic,
		AnthropicAPIKey: "ak",
		CircuitBreaker:  resilience.CircuitBreakerConfig{Enabled: true},
	})
	require.NoError(t, err)
	assert.IsType(t, &guardedOracle{}, guarded)
}

type failingOracle struct {
	calls atomic.Int32
}

func (f *failingOracle) Suggest(context.Context, string) (string, error) {
	f.calls.Add(1)
	return "", errors.New("upstream down")
}

func TestGuardedOracle_OpensAfterFailures(t *testing.T) {
	next := &failingOracle{}
	oracle := withBreaker(next, resilience.NewCircuitBreaker(2, time.Minute, 1), nil)

	for i := 0; i < 2; i++ {
		_, err := oracle.Suggest(context.Background(), "p")
		require.Error(t, err)
	}
	_, err := oracle.Suggest(context.Background(), "p")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), next.calls.Load())
}
