// File: internal/infra/adapters/classifier/instrumented.go
package classifier

import (
	"context"
	"time"

	"scam-honeypot-agent/internal/domain/ports/adapter"
	"scam-honeypot-agent/internal/infra/metrics"
)

// Compile-time check
var _ adapter.ClassifierAdapter = (*instrumented)(nil)

type instrumented struct {
	inner adapter.ClassifierAdapter
	sem   chan struct{}
}

// NewInstrumented wraps a classifier with latency/failure metrics and a
// concurrency cap on in-flight predictions.
func NewInstrumented(inner adapter.ClassifierAdapter, maxConcurrent int) adapter.ClassifierAdapter {
	if maxConcurrent <= 0 {
		maxConcurrent = 16
	}
	return &instrumented{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (i *instrumented) Name() string { return i.inner.Name() }

func (i *instrumented) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	select {
	case i.sem <- struct{}{}:
		defer func() { <-i.sem }()
	case <-ctx.Done():
		return adapter.Prediction{}, ctx.Err()
	}

	start := time.Now()
	pred, err := i.inner.Predict(ctx, text)
	metrics.ObserveClassifierCall(i.inner.Name(), int(time.Since(start).Milliseconds()), err == nil)
	return pred, err
}
