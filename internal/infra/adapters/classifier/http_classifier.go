// File: internal/infra/adapters/classifier/http_classifier.go
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"scam-honeypot-agent/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ClassifierAdapter = (*HTTPClassifier)(nil)

// HTTPClassifier calls a self-hosted scoring endpoint. The endpoint accepts
// {"text": "..."} and answers {"probability": 0.87}.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string) (*HTTPClassifier, error) {
	if url == "" {
		return nil, errors.New("classifier url empty")
	}
	return &HTTPClassifier{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (h *HTTPClassifier) Name() string { return "http" }

func (h *HTTPClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	reqBody := struct {
		Text string `json:"text"`
	}{Text: text}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return adapter.Prediction{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return adapter.Prediction{}, fmt.Errorf("classifier http %d", resp.StatusCode)
	}

	var payload struct {
		Probability float64 `json:"probability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return adapter.Prediction{}, err
	}
	if payload.Probability < 0 || payload.Probability > 1 {
		return adapter.Prediction{}, fmt.Errorf("classifier probability %.4f out of range", payload.Probability)
	}
	return adapter.Prediction{Probability: payload.Probability, Provider: h.Name()}, nil
}
