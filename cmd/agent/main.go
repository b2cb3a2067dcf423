// Agent
//
// A local relay between editor plugins and an OpenAI-compatible chat
// completions API. Send a message with optional file context, get text back.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Agent - local LLM relay for editor plugins",
	Long: `Agent relays chat requests from editor plugins to an OpenAI-compatible
completions API, folding the current file, selection and errors into the prompt.

  agent serve                                     Start the relay on 127.0.0.1
  agent run "fix the bug" --file main.go          Send one request
  agent chat                                      Interactive prompt
  agent health                                    Check that the relay is up
  agent config show                               Show effective configuration`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("AGENT_SERVER", "http://127.0.0.1:3789"), "Agent relay URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
