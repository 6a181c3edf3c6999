// File: internal/infra/adapters/classifier/multi_classifier.go
package classifier

import (
	"context"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/ports/adapter"
)

var _ adapter.ClassifierAdapter = (*MultiClassifier)(nil)

// MultiClassifier tries each configured provider in order and returns the
// first successful prediction. All providers failing surfaces the last error,
// which the caller treats as classifier unavailability.
type MultiClassifier struct {
	providers []adapter.ClassifierAdapter
}

func NewMultiClassifier(providers ...adapter.ClassifierAdapter) *MultiClassifier {
	kept := make([]adapter.ClassifierAdapter, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &MultiClassifier{providers: kept}
}

func (m *MultiClassifier) Name() string { return "multi" }

func (m *MultiClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	if len(m.providers) == 0 {
		return adapter.Prediction{}, domain.ErrClassifierUnavailable
	}
	var lastErr error
	for _, p := range m.providers {
		if ctx.Err() != nil {
			return adapter.Prediction{}, ctx.Err()
		}
		pred, err := p.Predict(ctx, text)
		if err == nil {
			return pred, nil
		}
		lastErr = err
	}
	return adapter.Prediction{}, lastErr
}
