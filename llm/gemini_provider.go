package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

// GeminiProvider implements the Provider interface using the Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate implements non-streaming generation using GenerateContent
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 GEMINI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents, config := buildGeminiRequest(request)

	span := transaction.StartChild("gemini.api_call")
	resp, err := p.client.Models.GenerateContent(transaction.Context(), request.Model, contents, config)
	span.Finish()
	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", time.Since(startTime), err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	textOutput := CleanOutput(resp.Text())
	if textOutput == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini response did not include any output text")
	}
	log.Printf("📥 GEMINI RESPONSE: %s", truncate(textOutput, maxPreview))

	var usage Usage
	if md := resp.UsageMetadata; md != nil {
		usage = Usage{
			InputTokens:     int(md.PromptTokenCount),
			OutputTokens:    int(md.CandidatesTokenCount),
			ReasoningTokens: int(md.ThoughtsTokenCount),
			TotalTokens:     int(md.TotalTokenCount),
		}
	}
	logUsageStats(usage)

	transaction.SetTag("success", "true")
	log.Printf("✅ GENERATION COMPLETED in %v", time.Since(startTime))
	return &GenerationResponse{RawOutput: textOutput, Usage: usage}, nil
}

func buildGeminiRequest(request *GenerationRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	var contents []*genai.Content
	for _, msg := range inputMessages(request.InputArray) {
		// Gemini has no developer role; those turns are sent as user text
		contents = append(contents, genai.NewContentFromText(msg[1], genai.RoleUser))
	}

	config := &genai.GenerateContentConfig{}
	if request.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemPrompt, genai.RoleUser)
	}
	return contents, config
}
