// Package llm defines the completion client interface used by the relay.
package llm

import (
	"context"
	"fmt"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged chat turn sent to the upstream.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client is a minimal interface for making chat completion calls.
// Implementations provide the actual HTTP transport to a specific provider.
type Client interface {
	// Complete sends messages upstream and returns the generated text.
	Complete(ctx context.Context, messages []Message) (string, error)
	// Provider is the fixed name reported to callers (e.g. "openai").
	Provider() string
	// Model is the model identifier requests are sent with.
	Model() string
}

// UpstreamError is returned when the upstream answers with a non-2xx status.
// Body holds the raw response text so the upstream's own diagnostic survives.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Provider, e.StatusCode, e.Body)
}
