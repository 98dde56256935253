package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/openai/openai-go/responses"
	"google.golang.org/genai"
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "V0 I[PIANO]", "V0 I[PIANO]"},
		{"surrounding whitespace", "\n  V0 I0  \n", "V0 I0"},
		{"fenced", "```\nV0 I0\n```", "V0 I0"},
		{"fenced with language", "```staccato\nKEY:Cmaj V0 I0\n```", "KEY:Cmaj V0 I0"},
		{"fence on one line", "```V0 I0```", "V0 I0"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanOutput(tt.input); got != tt.expected {
				t.Errorf("CleanOutput(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInputMessagesSkipsInvalidItems(t *testing.T) {
	input := []map[string]any{
		{"role": "user", "content": "add a violin"},
		{"role": "user"},
		{"content": "no role"},
		{"role": "developer", "content": 42},
		{"role": "developer", "content": "stay in C"},
	}

	got := inputMessages(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(got), got)
	}
	if got[0] != [2]string{"user", "add a violin"} || got[1] != [2]string{"developer", "stay in C"} {
		t.Errorf("unexpected messages: %v", got)
	}
}

func TestReasoningEffort(t *testing.T) {
	tests := map[string]string{
		"":        string(responses.ReasoningEffortLow),
		"minimal": string(responses.ReasoningEffortLow),
		"min":     string(responses.ReasoningEffortLow),
		"med":     string(responses.ReasoningEffortMedium),
		"medium":  string(responses.ReasoningEffortMedium),
		"high":    string(responses.ReasoningEffortHigh),
		"none":    "none",
	}
	for mode, expected := range tests {
		if got := string(reasoningEffort(mode)); got != expected {
			t.Errorf("reasoningEffort(%q) = %q, want %q", mode, got, expected)
		}
	}
}

func TestBuildRequestParams(t *testing.T) {
	params := buildRequestParams(&GenerationRequest{
		Model:        "gpt-5.1",
		SystemPrompt: "compose",
		InputArray: []map[string]any{
			{"role": "user", "content": "a waltz"},
			{"bad": true},
		},
	})

	if params.Model != "gpt-5.1" {
		t.Errorf("model = %q", params.Model)
	}
	if len(params.Input.OfInputItemList) != 1 {
		t.Errorf("expected 1 input item, got %d", len(params.Input.OfInputItemList))
	}
	if params.Instructions.Value != "compose" {
		t.Errorf("instructions = %q", params.Instructions.Value)
	}
}

func TestBuildGeminiRequest(t *testing.T) {
	contents, config := buildGeminiRequest(&GenerationRequest{
		SystemPrompt: "compose",
		InputArray: []map[string]any{
			{"role": "developer", "content": "context"},
			{"role": "user", "content": "a waltz"},
		},
	})

	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[1].Role != string(genai.RoleUser) || contents[1].Parts[0].Text != "a waltz" {
		t.Errorf("unexpected content: %+v", contents[1])
	}
	if config.SystemInstruction == nil || config.SystemInstruction.Parts[0].Text != "compose" {
		t.Errorf("system instruction not set")
	}

	_, config = buildGeminiRequest(&GenerationRequest{})
	if config.SystemInstruction != nil {
		t.Errorf("empty system prompt should not set an instruction")
	}
}

func TestProviderForModel(t *testing.T) {
	tests := map[string]string{
		"gpt-5.1":          "openai",
		"gemini-2.5-flash": "gemini",
		"Gemini-2.5-Pro":   "gemini",
		"o4-mini":          "openai",
		"":                 "openai",
	}
	for model, expected := range tests {
		if got := ProviderForModel(model); got != expected {
			t.Errorf("ProviderForModel(%q) = %q, want %q", model, got, expected)
		}
	}
}

func TestProviderFactory(t *testing.T) {
	ctx := context.Background()

	p, err := NewProviderFactory("sk-test", "").GetProvider(ctx, "gpt-5.1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("provider = %q, want openai", p.Name())
	}

	if _, err := NewProviderFactory("sk-test", "").GetProvider(ctx, "gemini-2.5-flash", ""); err == nil {
		t.Error("expected error for gemini model without gemini key")
	}
	if _, err := NewProviderFactory("", "").GetProvider(ctx, "gpt-5.1", ""); err == nil {
		t.Error("expected error without openai key")
	}
	_, err = NewProviderFactory("sk-test", "g-test").GetProvider(ctx, "", "anthropic")
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
}

func TestStaccatoGrammarCoversTokens(t *testing.T) {
	grammar := GetStaccatoGrammar()
	for _, rule := range []string{"key_signature", "time_signature", "instrument", "voice", "layer", `"KEY:"`, `"TIME:"`} {
		if !strings.Contains(grammar, rule) {
			t.Errorf("grammar is missing %s", rule)
		}
	}
}
