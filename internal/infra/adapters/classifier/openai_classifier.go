// File: internal/infra/adapters/classifier/openai_classifier.go
package classifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"scam-honeypot-agent/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ClassifierAdapter = (*OpenAIClassifier)(nil)

const scamPrompt = `You are a scam-detection classifier. ` +
	`Given one chat message, answer with only a number between 0 and 1: ` +
	`the probability that the message is part of a scam attempt. ` +
	`No words, no explanation, just the number.`

// OpenAIClassifier scores messages with an OpenAI chat model prompted to act
// as a binary scam classifier.
type OpenAIClassifier struct {
	client openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, model string) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClassifier{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (o *OpenAIClassifier) Name() string { return "openai" }

func (o *OpenAIClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scamPrompt),
			openai.UserMessage(text),
		},
		Model: o.model,
	})
	if err != nil {
		return adapter.Prediction{}, err
	}
	if len(completion.Choices) == 0 {
		return adapter.Prediction{}, errors.New("openai: no choices")
	}
	p, err := parseProbability(completion.Choices[0].Message.Content)
	if err != nil {
		return adapter.Prediction{}, err
	}
	return adapter.Prediction{Probability: p, Provider: o.Name()}, nil
}

// parseProbability extracts the numeric verdict from a model reply, tolerating
// stray whitespace or a trailing period.
func parseProbability(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable classifier reply %q", s)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("classifier probability %.4f out of range", p)
	}
	return p, nil
}
