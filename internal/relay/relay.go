// Package relay composes prompt assembly and the completion client.
package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/prompt"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

// Result is what a caller receives for a completed request.
type Result struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}

// Service turns validated requests into upstream completions. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	llm llm.Client
	log zerolog.Logger
}

// New creates a Service backed by client.
func New(client llm.Client, log zerolog.Logger) *Service {
	return &Service{llm: client, log: log}
}

// Run assembles the prompt for req and forwards it upstream.
func (s *Service) Run(ctx context.Context, req *request.ChatRequest) (*Result, error) {
	messages := prompt.Messages(req)

	ev := s.log.Debug().
		Str("mode", string(req.Mode)).
		Int("prompt_bytes", len(messages[len(messages)-1].Content))
	if req.Context != nil && req.Context.ProjectPath != "" {
		ev = ev.Str("project_path", req.Context.ProjectPath)
	}
	ev.Msg("assembled prompt")

	start := time.Now()
	text, err := s.llm.Complete(ctx, messages)
	s.log.Info().
		Str("provider", s.llm.Provider()).
		Str("model", s.llm.Model()).
		Str("mode", string(req.Mode)).
		Dur("dur", time.Since(start)).
		Err(err).
		Msg("completion")
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	return &Result{
		Provider: s.llm.Provider(),
		Model:    s.llm.Model(),
		Text:     text,
	}, nil
}
