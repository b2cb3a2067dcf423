package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ViniAguiar1/llm-agent-runtime/internal/config"
)

// configKey describes a single configuration value.
type configKey struct {
	Key      string
	Default  string
	Required bool
	Secret   bool
}

// allConfigKeys lists every value the relay reads, in display order.
var allConfigKeys = []configKey{
	{"OPENAI_API_KEY", "", true, true},
	{"OPENAI_MODEL", config.DefaultModel, false, false},
	{"OPENAI_BASE_URL", config.DefaultBaseURL, false, false},
	{"PORT", strconv.Itoa(config.DefaultPort), false, false},
	{"LOG_LEVEL", config.DefaultLevel, false, false},
	{"APP_ENV", string(config.EnvDevelopment), false, false},
}

const dotEnvFile = ".env"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect relay configuration",
	Long: `Inspect the configuration the relay would start with.

Values come from the environment, then from a .env file in the working
directory, then from built-in defaults.

  agent config show      Show effective values and where they come from
  agent config check     Validate the configuration and list every problem`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileValues, err := readDotEnv(dotEnvFile)
		if err != nil {
			return err
		}
		writeConfigTable(cmd.OutOrStdout(), fileValues, os.Getenv)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "configuration ok: %s (model %s, env %s)\n", cfg.URL(), cfg.OpenAIModel, cfg.Env)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

// readDotEnv returns the values in path, or an empty map if it does not exist.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

func writeConfigTable(w io.Writer, fileValues map[string]string, getenv func(string) string) {
	for _, ck := range allConfigKeys {
		value, source := lookupConfig(ck.Key, fileValues, getenv)
		if source == "" && ck.Key == "APP_ENV" {
			if value, source = lookupConfig("NODE_ENV", fileValues, getenv); source != "" {
				source = " (NODE_ENV" + strings.TrimPrefix(source, " (")
			}
		}
		if source == "" {
			value, source = ck.Default, " (default)"
		}

		display := "(not set)"
		if value != "" {
			display = value
			if ck.Secret {
				display = maskSecret(value)
			}
		} else {
			source = ""
		}

		reqTag := ""
		if ck.Required {
			reqTag = " *"
		}
		fmt.Fprintf(w, "  %-18s %s%s\n", ck.Key+reqTag, display, source)
	}
	fmt.Fprintln(w, "\n  * = required")
}

// lookupConfig resolves key the way config.Load sees it: the process
// environment wins over the .env file. source is empty when neither sets it.
func lookupConfig(key string, fileValues map[string]string, getenv func(string) string) (value, source string) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v, " (from env)"
	}
	if v := strings.TrimSpace(fileValues[key]); v != "" {
		return v, " (from " + dotEnvFile + ")"
	}
	return "", ""
}

func maskSecret(s string) string {
	if len(s) <= 12 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
