package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	agent "github.com/ViniAguiar1/llm-agent-runtime"
	"github.com/ViniAguiar1/llm-agent-runtime/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay",
	Long: `Start the HTTP relay on 127.0.0.1. Configuration comes from the
environment and an optional .env file in the working directory:

  OPENAI_API_KEY   (required)
  OPENAI_MODEL     default gpt-4o-mini
  OPENAI_BASE_URL  default https://api.openai.com/v1
  PORT             default 3789
  LOG_LEVEL        default info
  APP_ENV          development, test or production (NODE_ENV is also read)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app, err := agent.NewBuilder().WithConfig(cfg).Build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Start(ctx)
}
