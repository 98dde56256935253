package llm

import (
	"context"
	"log"
	"strings"
)

// Provider is a text generation backend
type Provider interface {
	Name() string
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

// GenerationRequest is a provider-agnostic generation request
type GenerationRequest struct {
	Model         string
	SystemPrompt  string
	InputArray    []map[string]any // {"role": "user", "content": "..."}
	ReasoningMode string           // none, minimal, low, medium, high
}

// Usage holds token counts normalized across providers
type Usage struct {
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	ReasoningTokens int `json:"reasoning_tokens"`
	TotalTokens     int `json:"total_tokens"`
}

// GenerationResponse is the provider-agnostic result of Generate
type GenerationResponse struct {
	RawOutput string
	Usage     Usage
}

const (
	userRole      = "user"
	developerRole = "developer"
	maxPreview    = 200
)

// CleanOutput strips markdown code fences and surrounding whitespace from model text.
func CleanOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		// drop the fence line, including any language tag
		if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 {
			cleaned = cleaned[nl+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
	}
	cleaned = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cleaned), "```"))

	if cleaned != strings.TrimSpace(text) {
		log.Printf("🧹 Stripped markdown code blocks from output: %d -> %d chars", len(text), len(cleaned))
	}
	return cleaned
}

// inputMessages extracts (role, content) pairs, skipping malformed items.
func inputMessages(input []map[string]any) [][2]string {
	messages := make([][2]string, 0, len(input))
	for _, item := range input {
		role, hasRole := item["role"].(string)
		content, hasContent := item["content"].(string)
		if !hasRole || !hasContent {
			log.Printf("⚠️  Skipping invalid input item (missing role or content): %v", item)
			continue
		}
		messages = append(messages, [2]string{role, content})
	}
	return messages
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
