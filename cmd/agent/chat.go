package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

var chatMode string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive prompt against the relay",
	Long: `Read messages line by line and send each one to the relay.
Every message is an independent request; nothing is remembered between turns.

  /mode <chat|refactor|autocomplete>   Switch mode
  exit                                 Quit (Ctrl+D also works)`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatMode, "mode", string(request.ModeChat), "Initial mode")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	client := newRelayClient(serverURL)
	if _, err := client.Health(cmd.Context()); err != nil {
		return err
	}

	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	out := cmd.OutOrStdout()
	mode := request.Mode(chatMode)
	fmt.Fprintf(out, "\033[33mAgent chat (%s)\033[0m, type 'exit' to quit\n", serverURL)

	for {
		line, err := rl.Prompt(fmt.Sprintf("[%s] > ", mode))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit":
			return nil
		case strings.HasPrefix(line, "/mode "):
			mode = request.Mode(strings.TrimSpace(strings.TrimPrefix(line, "/mode ")))
			continue
		}
		rl.AppendHistory(line)

		res, err := client.Run(cmd.Context(), &request.ChatRequest{Mode: mode, Message: line})
		if err != nil {
			fmt.Fprintf(os.Stderr, "\033[31m%v\033[0m\n", err)
			continue
		}
		fmt.Fprintf(out, "\033[34m%s:\033[0m %s\n\n", res.Model, res.Text)
	}
}
