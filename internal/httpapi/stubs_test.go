package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ViniAguiar1/llm-agent-runtime/internal/relay"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm/openai"
)

// stubLLM returns a canned completion and records what it was sent.
type stubLLM struct {
	response string
	err      error
	panicMsg string
	calls    int
	got      []llm.Message
}

func (s *stubLLM) Complete(_ context.Context, messages []llm.Message) (string, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.calls++
	s.got = messages
	return s.response, s.err
}
func (s *stubLLM) Provider() string { return "openai" }
func (s *stubLLM) Model() string    { return "gpt-4o-mini" }

func newTestHandler(client llm.Client) http.Handler {
	return New(relay.New(client, zerolog.Nop()), zerolog.Nop()).Router()
}

// newUpstream starts a fake chat completions endpoint and returns a real
// OpenAI client pointed at it.
func newUpstream(t *testing.T, status int, body string) *openai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return openai.New("sk-test", "gpt-4o-mini", openai.WithBaseURL(srv.URL))
}
