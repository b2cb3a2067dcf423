// Package agent is the top-level entry point for the relay.
//
// Use the Builder to compose an application from configuration:
//
//	cfg, err := config.Load()
//	app, err := agent.NewBuilder().WithConfig(cfg).Build()
//	app.Start(ctx)
//
// Or swap the completion client:
//
//	app, err := agent.NewBuilder().
//	    WithConfig(cfg).
//	    WithLLM(myClient).
//	    Build()
package agent

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ViniAguiar1/llm-agent-runtime/internal/config"
	"github.com/ViniAguiar1/llm-agent-runtime/internal/httpapi"
	"github.com/ViniAguiar1/llm-agent-runtime/internal/logging"
	"github.com/ViniAguiar1/llm-agent-runtime/internal/relay"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm"
	llmOpenAI "github.com/ViniAguiar1/llm-agent-runtime/pkg/llm/openai"
)

// ShutdownTimeout bounds graceful shutdown once the context is cancelled.
const ShutdownTimeout = 10 * time.Second

// Builder constructs an App.
type Builder struct {
	config *config.Config
	logger *zerolog.Logger
	llm    llm.Client
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithConfig sets the application configuration. Required.
func (b *Builder) WithConfig(cfg *config.Config) *Builder {
	b.config = cfg
	return b
}

// WithLogger sets the logger. Defaults to one built from the config.
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = &l
	return b
}

// WithLLM sets the completion client. Defaults to OpenAI with the
// configured key, model and base URL.
func (b *Builder) WithLLM(client llm.Client) *Builder {
	b.llm = client
	return b
}

// Build creates the App. Missing components are filled with defaults.
func (b *Builder) Build() (*App, error) {
	if b.config == nil {
		return nil, errors.New("config is required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(b.config.LogLevel, b.config.Env, os.Stdout)
	if b.logger != nil {
		logger = *b.logger
	}

	client := b.llm
	if client == nil {
		client = llmOpenAI.New(b.config.OpenAIAPIKey, b.config.OpenAIModel,
			llmOpenAI.WithBaseURL(b.config.OpenAIBaseURL))
	}

	svc := relay.New(client, logger)
	return &App{
		config:  b.config,
		log:     logger,
		handler: httpapi.New(svc, logger),
	}, nil
}

// App is a runnable relay.
type App struct {
	config  *config.Config
	log     zerolog.Logger
	handler *httpapi.Handler
}

// Handler returns the HTTP handler for embedding or tests.
func (a *App) Handler() http.Handler { return a.handler.Router() }

// Start listens on the configured loopback address and serves until ctx is done.
func (a *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.config.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.config.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. It
// returns only after in-flight requests have finished or ShutdownTimeout
// has passed.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancelShutdown()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	a.log.Info().
		Str("addr", "http://"+ln.Addr().String()).
		Str("env", string(a.config.Env)).
		Str("model", a.config.OpenAIModel).
		Msg("agent listening")
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	a.log.Info().Msg("agent stopped")
	return nil
}
