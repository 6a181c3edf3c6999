// File: internal/infra/adapters/classifier/noop_classifier.go
package classifier

import (
	"context"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/ports/adapter"
)

var _ adapter.ClassifierAdapter = (*NoopClassifier)(nil)

// NoopClassifier is the adapter used when no provider is configured. It always
// reports unavailability, which drives the engine into rule-and-intent-only
// scoring rather than feeding it a fabricated probability.
type NoopClassifier struct{}

func NewNoopClassifier() *NoopClassifier { return &NoopClassifier{} }

func (n *NoopClassifier) Name() string { return "noop" }

func (n *NoopClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	return adapter.Prediction{}, domain.ErrClassifierUnavailable
}
