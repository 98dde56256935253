package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Conceptual-Machines/staccato-agents-go/config"
	"github.com/Conceptual-Machines/staccato-agents-go/metrics"
	"github.com/Conceptual-Machines/staccato-agents-go/midisink"
	"github.com/Conceptual-Machines/staccato-agents-go/staccato"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
	}
	cfg := config.FromEnv()

	strict := flag.Bool("strict", cfg.StrictParsing, "fail on unrecognized tokens")
	file := flag.String("f", "", "read Staccato from `file` (\"-\" for stdin)")
	midiOut := flag.String("midi", "", "write a Standard MIDI File to `path`")
	flag.Parse()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, EnableTracing: true, TracesSampleRate: 1.0}); err != nil {
			log.Printf("⚠️  Sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	music, err := readInput(*file, flag.Args())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	parser := staccato.NewParser(staccato.WithStrict(*strict), staccato.WithRecorder(metrics.NewSentryMetrics()))

	var listeners []staccato.Listener
	var sink *midisink.Sink
	if *midiOut != "" {
		sink = midisink.New()
		listeners = append(listeners, sink)
	}

	out, err := parser.ParseOutput(context.Background(), music, listeners...)
	if err != nil {
		log.Fatalf("❌ Parse failed: %v", err)
	}

	if sink != nil {
		if err := writeMIDI(sink, *midiOut); err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("✅ Wrote %s", *midiOut)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("❌ Failed to encode output: %v", err)
	}
}

func readInput(file string, args []string) (string, error) {
	switch {
	case file == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(b), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return "", fmt.Errorf("usage: staccato [-strict] [-midi out.mid] [-f file | music...]")
}

func writeMIDI(sink *midisink.Sink, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := sink.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
