package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordToolDuration records a tool invocation's duration and outcome
func (m *SentryMetrics) RecordToolDuration(ctx context.Context, tool string, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	// Create a span for the tool invocation using the request context
	span := sentry.StartSpan(ctx, "tool.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("tool", tool)
	span.SetTag("success", fmt.Sprintf("%t", success))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("success", success)

	// Set span status
	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Tool Request: %s", tool)
}

// RecordHostTraffic records how many host calls and property writes a tool
// invocation issued against the session
func (m *SentryMetrics) RecordHostTraffic(ctx context.Context, tool string, calls, sets int) {
	if !m.enabled {
		return
	}

	// Try adding data directly to the transaction span instead of creating a child span
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("host.calls", fmt.Sprintf("%d", calls))
		transaction.SetTag("host.sets", fmt.Sprintf("%d", sets))
		transaction.SetData("host.calls", calls)
		transaction.SetData("host.sets", sets)
	}

	// Also create a child span for detailed tracking
	span := sentry.StartSpan(ctx, "host.traffic")
	defer span.Finish()

	span.SetTag("tool", tool)
	span.SetData("calls", calls)
	span.SetData("sets", sets)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Host Traffic: %s", tool)
}

// RecordWarnings records the number of non-fatal warnings a tool produced
func (m *SentryMetrics) RecordWarnings(ctx context.Context, tool string, count int) {
	if !m.enabled || count == 0 {
		return
	}

	span := sentry.StartSpan(ctx, "tool.warnings")
	defer span.Finish()

	span.SetTag("tool", tool)
	span.SetData("count", count)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Tool Warnings: %s (%d)", tool, count)
}
