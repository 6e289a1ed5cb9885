// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package metric holds the OpenTelemetry instruments recorded by the actor runtime.
package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/tochemey/troupe"

	// PathKey is the attribute carrying the actor path
	PathKey = attribute.Key("actor.path")
	// EventKey is the attribute carrying a lifecycle event kind
	EventKey = attribute.Key("actor.event")
)

// Metrics groups the runtime instruments
type Metrics struct {
	processedCount  metric.Int64Counter
	failureCount    metric.Int64Counter
	deadLetterCount metric.Int64Counter
	spawnCount      metric.Int64Counter
	eventCount      metric.Int64Counter
	processDuration metric.Float64Histogram
}

// New creates the instruments from the given provider.
// The global meter provider is used when provider is nil.
func New(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter(instrumentationName)
	metrics := new(Metrics)

	var err error
	if metrics.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if metrics.failureCount, err = meter.Int64Counter(
		"actor_failure_count",
		metric.WithDescription("Total number of messages whose processing failed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %w", err)
	}

	if metrics.deadLetterCount, err = meter.Int64Counter(
		"actor_deadletter_count",
		metric.WithDescription("Total number of rejected messages routed to dead letters"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deadLetterCount instrument, %w", err)
	}

	if metrics.spawnCount, err = meter.Int64Counter(
		"actor_spawn_count",
		metric.WithDescription("Total number of actors spawned"),
	); err != nil {
		return nil, fmt.Errorf("failed to create spawnCount instrument, %w", err)
	}

	if metrics.eventCount, err = meter.Int64Counter(
		"actor_lifecycle_event_count",
		metric.WithDescription("Total number of public lifecycle events broadcast"),
	); err != nil {
		return nil, fmt.Errorf("failed to create eventCount instrument, %w", err)
	}

	if metrics.processDuration, err = meter.Float64Histogram(
		"actor_processing_duration",
		metric.WithDescription("The latency of message processing in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processDuration instrument, %w", err)
	}

	return metrics, nil
}

// RecordProcessed counts a processed message and records how long it took
func (m *Metrics) RecordProcessed(ctx context.Context, path string, duration time.Duration) {
	attrs := metric.WithAttributes(PathKey.String(path))
	m.processedCount.Add(ctx, 1, attrs)
	m.processDuration.Record(ctx, float64(duration)/float64(time.Millisecond), attrs)
}

// RecordFailure counts a failed message
func (m *Metrics) RecordFailure(ctx context.Context, path string) {
	m.failureCount.Add(ctx, 1, metric.WithAttributes(PathKey.String(path)))
}

// RecordDeadLetter counts a rejected message addressed to path
func (m *Metrics) RecordDeadLetter(ctx context.Context, path string) {
	m.deadLetterCount.Add(ctx, 1, metric.WithAttributes(PathKey.String(path)))
}

// RecordSpawn counts a spawned actor
func (m *Metrics) RecordSpawn(ctx context.Context, path string) {
	m.spawnCount.Add(ctx, 1, metric.WithAttributes(PathKey.String(path)))
}

// RecordEvent counts a public lifecycle event
func (m *Metrics) RecordEvent(ctx context.Context, path, event string) {
	m.eventCount.Add(ctx, 1, metric.WithAttributes(PathKey.String(path), EventKey.String(event)))
}
