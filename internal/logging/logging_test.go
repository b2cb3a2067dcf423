package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ViniAguiar1/llm-agent-runtime/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "WARN", want: zerolog.WarnLevel},
		{level: " error ", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "verbose", want: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level, config.EnvProduction, &bytes.Buffer{})
			if got := logger.GetLevel(); got != tt.want {
				t.Fatalf("level = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNewProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", config.EnvProduction, &buf)
	logger.Info().Str("port", "3789").Msg("listening")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["message"] != "listening" || line["port"] != "3789" || line["level"] != "info" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatal("missing timestamp")
	}
}

func TestNewDevelopmentConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", config.EnvDevelopment, &buf)
	logger.Debug().Msg("hello")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Fatalf("development output should not be JSON: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("missing message in %q", out)
	}
}
