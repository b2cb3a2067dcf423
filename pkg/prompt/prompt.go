// Package prompt turns a validated request into the text sent upstream.
package prompt

import (
	"strings"

	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

// SystemPrompt is the fixed system turn preceding every request.
const SystemPrompt = "You are a technical and objective coding assistant."

// Section labels. Callers that parse prompts back depend on these.
const (
	LabelCurrentFile = "CURRENT_FILE:"
	LabelSelection   = "SELECTION:"
	LabelErrors      = "ERRORS:"
	LabelRequest     = "REQUEST:"

	errorMarker = "- "

	// Closing is appended after the request section.
	Closing = "Answer objectively. If code is involved, return the complete code when necessary."
)

// Build assembles the user turn. Context sections appear in a fixed order
// and only when their source field is non-empty; the message always comes
// last under LabelRequest.
func Build(c *request.Context, message string) string {
	var sections []string
	if c != nil {
		if c.CurrentFile != "" {
			sections = append(sections, LabelCurrentFile+"\n"+c.CurrentFile)
		}
		if c.Selection != "" {
			sections = append(sections, LabelSelection+"\n"+c.Selection)
		}
		if len(c.Errors) > 0 {
			sections = append(sections, LabelErrors+"\n"+errorMarker+strings.Join(c.Errors, "\n"+errorMarker))
		}
	}
	sections = append(sections, LabelRequest+"\n"+message, Closing)
	return strings.Join(sections, "\n\n")
}

// Messages returns the system and user turns for req.
func Messages(req *request.ChatRequest) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: Build(req.Context, req.Message)},
	}
}
