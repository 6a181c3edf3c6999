package adapter

import "context"

// Prediction is the external learned model's verdict for one text.
type Prediction struct {
	// Probability that the text is fraudulent, in [0,1].
	Probability float64
	Provider    string
}

// ClassifierAdapter is the port for the external scam classifier. Predict must
// honor ctx deadlines; unavailability or timeout is returned as an error (never
// as a fabricated low probability) so the caller can degrade explicitly.
type ClassifierAdapter interface {
	Name() string
	Predict(ctx context.Context, text string) (Prediction, error)
}
