package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/Conceptual-Machines/staccato-agents-go/metrics"
	"github.com/Conceptual-Machines/staccato-agents-go/staccato"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ staccato.ParseRecorder = (*metrics.SentryMetrics)(nil)

func TestSentryMetrics_WithoutClient(t *testing.T) {
	m := metrics.NewSentryMetrics()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordParse(ctx, 4, time.Millisecond, true)
		m.RecordParse(ctx, 1, time.Millisecond, false)
		m.RecordTokenUsage(ctx, "gpt-5.1", 30, 10, 20, 5)
		m.RecordGenerationDuration(ctx, time.Second, false)
	})
}

func TestSentryMetrics_TagsTransaction(t *testing.T) {
	require.NoError(t, sentry.Init(sentry.ClientOptions{EnableTracing: true, TracesSampleRate: 1.0}))

	m := metrics.NewSentryMetrics()
	tx := sentry.StartTransaction(context.Background(), "test")
	defer tx.Finish()

	m.RecordTokenUsage(tx.Context(), "gpt-5.1", 30, 10, 20, 5)
	assert.Equal(t, "gpt-5.1", tx.Tags["llm.model"])
	assert.Equal(t, "30", tx.Tags["llm.total_tokens"])
}
