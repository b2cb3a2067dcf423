package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

var (
	runMode      string
	runFile      string
	runSelection string
	runProject   string
	runErrors    []string
)

var runCmd = &cobra.Command{
	Use:   "run MESSAGE",
	Short: "Send a single request to the relay",
	Long: `Send one request to a running relay and print the generated text.

  agent run "explain this" --file main.go
  agent run "fix it" --file app.ts --error "TS2304: Cannot find name 'x'" --mode refactor`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the relay is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newRelayClient(serverURL).Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), status)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", string(request.ModeChat), "Mode: chat, refactor, autocomplete")
	runCmd.Flags().StringVar(&runFile, "file", "", "Path of the current file; its contents are sent as context")
	runCmd.Flags().StringVar(&runSelection, "selection", "", "Selected text")
	runCmd.Flags().StringVar(&runProject, "project", "", "Project path")
	runCmd.Flags().StringArrayVar(&runErrors, "error", nil, "Compiler or linter error (repeatable)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(healthCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	req, err := buildRunRequest(strings.Join(args, " "))
	if err != nil {
		return err
	}
	res, err := newRelayClient(serverURL).Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

// buildRunRequest turns flags into a request body. Validation is left to
// the relay so the CLI reports exactly what the server enforces.
func buildRunRequest(message string) (*request.ChatRequest, error) {
	c := &request.Context{
		Selection:   runSelection,
		ProjectPath: runProject,
		Errors:      runErrors,
	}
	if runFile != "" {
		data, err := os.ReadFile(runFile)
		if err != nil {
			return nil, fmt.Errorf("reading --file: %w", err)
		}
		c.CurrentFile = string(data)
	}

	req := &request.ChatRequest{
		Mode:    request.Mode(runMode),
		Message: message,
	}
	if c.CurrentFile != "" || c.Selection != "" || c.ProjectPath != "" || len(c.Errors) > 0 {
		req.Context = c
	}
	return req, nil
}
