package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/staccato-agents-go/agents/composer"
	"github.com/Conceptual-Machines/staccato-agents-go/config"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	cfg := config.FromEnv()
	if cfg.OpenAIAPIKey == "" && cfg.GeminiAPIKey == "" {
		log.Fatal("❌ ERROR: neither OPENAI_API_KEY nor GEMINI_API_KEY is set in environment!")
	}

	ctx := context.Background()
	agent, err := composer.NewComposerAgent(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}

	testRequests := []string{
		"a sad waltz for piano and cello",
		"a jig in D with fiddle and a drum layer",
		"funk in E flat: electric bass, clavinet and drums",
	}

	for i, request := range testRequests {
		fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		fmt.Printf("Test %d/%d: %s\n", i+1, len(testRequests), request)
		fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

		startTime := time.Now()

		result, err := agent.Compose(ctx, request)
		if err != nil {
			log.Printf("❌ Error: %v", err)
			continue
		}

		fmt.Printf("✅ Success! Duration: %v (attempts: %d)\n\n", time.Since(startTime), result.Attempts)
		fmt.Printf("Staccato: %s\n", result.Staccato)
		fmt.Printf("Key: %s  Time: %s\n", result.Key, result.TimeSignature)
		fmt.Printf("Events (%d):\n", len(result.Events))
		for j, event := range result.Events {
			eventJSON, _ := json.Marshal(event)
			fmt.Printf("  [%d] %s\n", j+1, string(eventJSON))
		}

		usageJSON, _ := json.MarshalIndent(result.Usage, "", "  ")
		fmt.Printf("\nUsage:\n  %s\n", string(usageJSON))

		// Small delay between tests
		if i < len(testRequests)-1 {
			time.Sleep(1 * time.Second)
		}
	}

	fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("✅ All tests completed!\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
