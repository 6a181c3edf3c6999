// File: internal/infra/adapters/classifier/gemini_classifier.go
package classifier

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"scam-honeypot-agent/internal/domain/ports/adapter"
)

var _ adapter.ClassifierAdapter = (*GeminiClassifier)(nil)

// GeminiClassifier scores messages with a Gemini model prompted to act as a
// binary scam classifier.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClassifier{client: c, model: model}, nil
}

func (g *GeminiClassifier) Name() string { return "gemini" }

func (g *GeminiClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: text}}},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: scamPrompt}}},
		MaxOutputTokens:   8,
	})
	if err != nil {
		return adapter.Prediction{}, err
	}

	reply := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		reply = resp.Candidates[0].Content.Parts[0].Text
	}
	p, err := parseProbability(reply)
	if err != nil {
		return adapter.Prediction{}, err
	}
	return adapter.Prediction{Probability: p, Provider: g.Name()}, nil
}
