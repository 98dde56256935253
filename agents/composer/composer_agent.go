package composer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/staccato-agents-go/config"
	"github.com/Conceptual-Machines/staccato-agents-go/llm"
	"github.com/Conceptual-Machines/staccato-agents-go/metrics"
	"github.com/Conceptual-Machines/staccato-agents-go/models"
	"github.com/Conceptual-Machines/staccato-agents-go/prompt"
	"github.com/Conceptual-Machines/staccato-agents-go/staccato"
	"github.com/getsentry/sentry-go"
)

const (
	defaultReasoningMode = "low"
	maxAttempts          = 2
)

// ComposerAgent turns a natural-language request into a Staccato line and
// validates it with the parser before returning it.
type ComposerAgent struct {
	provider      llm.Provider
	model         string
	reasoningMode string
	systemPrompt  string
	parser        *staccato.Parser
	metrics       *metrics.SentryMetrics
}

// ComposeResult is a validated composition
type ComposeResult struct {
	models.ParseOutput
	Attempts int       `json:"attempts"`
	Usage    llm.Usage `json:"usage"`
}

// NewComposerAgent creates a composer. If provider is nil one is picked from cfg.
func NewComposerAgent(ctx context.Context, cfg *config.Config, provider llm.Provider) (*ComposerAgent, error) {
	systemPrompt, err := prompt.NewComposerPromptBuilder().BuildPrompt()
	if err != nil {
		return nil, fmt.Errorf("failed to build system prompt: %w", err)
	}

	if provider == nil {
		provider, err = llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey).GetProvider(ctx, cfg.Model, cfg.Provider)
		if err != nil {
			return nil, fmt.Errorf("failed to create provider: %w", err)
		}
	}

	m := metrics.NewSentryMetrics()
	agent := &ComposerAgent{
		provider:      provider,
		model:         cfg.Model,
		reasoningMode: defaultReasoningMode,
		systemPrompt:  systemPrompt,
		parser:        staccato.NewParser(staccato.WithStrict(cfg.StrictParsing), staccato.WithRecorder(m)),
		metrics:       m,
	}

	log.Printf("🎵 COMPOSER AGENT INITIALIZED:")
	log.Printf("   Provider: %s", provider.Name())
	log.Printf("   Model: %s", cfg.Model)
	log.Printf("   Strict parsing: %t", cfg.StrictParsing)

	return agent, nil
}

// Compose asks the provider for Staccato and parses it. A parse failure is
// sent back to the model once so it can correct itself.
func (a *ComposerAgent) Compose(ctx context.Context, request string) (*ComposeResult, error) {
	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, "composer.compose")
	defer transaction.Finish()
	ctx = transaction.Context()

	transaction.SetTag("model", a.model)
	transaction.SetTag("provider", a.provider.Name())

	inputArray := []map[string]any{
		{"role": "user", "content": request},
	}

	var usage llm.Usage
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		log.Printf("🚀 PROVIDER REQUEST: %s model=%s, attempt=%d, input_messages=%d",
			a.provider.Name(), a.model, attempt, len(inputArray))

		resp, err := a.provider.Generate(ctx, &llm.GenerationRequest{
			Model:         a.model,
			SystemPrompt:  a.systemPrompt,
			InputArray:    inputArray,
			ReasoningMode: a.reasoningMode,
		})
		if err != nil {
			transaction.SetTag("success", "false")
			transaction.SetTag("error_type", "provider_error")
			sentry.CaptureException(err)
			a.metrics.RecordGenerationDuration(ctx, time.Since(startTime), false)
			return nil, fmt.Errorf("provider request failed: %w", err)
		}
		usage = addUsage(usage, resp.Usage)

		music := llm.CleanOutput(resp.RawOutput)
		if music == "" {
			lastErr = fmt.Errorf("no Staccato output in response")
			break
		}

		out, err := a.parser.ParseOutput(ctx, music)
		if err == nil {
			transaction.SetTag("success", "true")
			transaction.SetTag("attempts", fmt.Sprintf("%d", attempt))
			a.metrics.RecordGenerationDuration(ctx, time.Since(startTime), true)
			a.metrics.RecordTokenUsage(ctx, a.model, usage.TotalTokens, usage.InputTokens, usage.OutputTokens, usage.ReasoningTokens)
			log.Printf("✅ COMPOSED in %v: %s", time.Since(startTime), out.Staccato)
			return &ComposeResult{ParseOutput: *out, Attempts: attempt, Usage: usage}, nil
		}

		log.Printf("⚠️  Attempt %d produced invalid Staccato %q: %v", attempt, music, err)
		lastErr = err
		inputArray = append(inputArray,
			map[string]any{"role": "developer", "content": fmt.Sprintf(
				"Your previous answer %q is not valid Staccato: %v. Answer again with only valid tokens.", music, err)},
		)
	}

	transaction.SetTag("success", "false")
	transaction.SetTag("error_type", "parse_error")
	sentry.CaptureException(lastErr)
	a.metrics.RecordGenerationDuration(ctx, time.Since(startTime), false)
	return nil, fmt.Errorf("failed to parse Staccato: %w", lastErr)
}

func addUsage(a, b llm.Usage) llm.Usage {
	return llm.Usage{
		InputTokens:     a.InputTokens + b.InputTokens,
		OutputTokens:    a.OutputTokens + b.OutputTokens,
		ReasoningTokens: a.ReasoningTokens + b.ReasoningTokens,
		TotalTokens:     a.TotalTokens + b.TotalTokens,
	}
}
