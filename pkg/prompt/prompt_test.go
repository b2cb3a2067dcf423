package prompt

import (
	"strings"
	"testing"

	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

func TestBuildFileAndErrors(t *testing.T) {
	got := Build(&request.Context{CurrentFile: "a.ts", Errors: []string{"E1", "E2"}}, "fix it")

	want := "CURRENT_FILE:\na.ts\n\n" +
		"ERRORS:\n- E1\n- E2\n\n" +
		"REQUEST:\nfix it\n\n" +
		Closing
	if got != want {
		t.Fatalf("Build() =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, LabelSelection) {
		t.Fatal("selection section should be omitted")
	}
}

func TestBuildOrdering(t *testing.T) {
	got := Build(&request.Context{
		CurrentFile: "main.go",
		Selection:   "x := 1",
		Errors:      []string{"unused x"},
	}, "explain")

	idx := []int{
		strings.Index(got, LabelCurrentFile),
		strings.Index(got, LabelSelection),
		strings.Index(got, LabelErrors),
		strings.Index(got, LabelRequest),
		strings.Index(got, Closing),
	}
	for i, v := range idx {
		if v < 0 {
			t.Fatalf("section %d missing in:\n%s", i, got)
		}
		if i > 0 && v <= idx[i-1] {
			t.Fatalf("section %d out of order in:\n%s", i, got)
		}
	}
}

func TestBuildOnlyRequest(t *testing.T) {
	tests := []struct {
		name string
		ctx  *request.Context
	}{
		{name: "nil context", ctx: nil},
		{name: "empty context", ctx: &request.Context{}},
		{name: "empty values", ctx: &request.Context{CurrentFile: "", Selection: "", Errors: []string{}}},
		{name: "project path only", ctx: &request.Context{ProjectPath: "/repo"}},
	}
	want := "REQUEST:\nhello\n\n" + Closing
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.ctx, "hello"); got != want {
				t.Fatalf("Build() = %q; want %q", got, want)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	msgs := Messages(&request.ChatRequest{Mode: request.ModeChat, Message: "hi"})
	if len(msgs) != 2 {
		t.Fatalf("got %d messages; want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != SystemPrompt {
		t.Errorf("unexpected system message: %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleUser || !strings.HasPrefix(msgs[1].Content, LabelRequest+"\nhi") {
		t.Errorf("unexpected user message: %+v", msgs[1])
	}
}
