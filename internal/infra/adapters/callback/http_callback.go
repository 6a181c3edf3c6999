// File: internal/infra/adapters/callback/http_callback.go
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"scam-honeypot-agent/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.CallbackSender = (*HTTPCallbackSender)(nil)

// HTTPCallbackSender POSTs the final report to the external collector.
type HTTPCallbackSender struct {
	url       string
	authToken string
	client    *http.Client
}

func NewHTTPCallbackSender(url, authToken string, timeout time.Duration) (*HTTPCallbackSender, error) {
	if url == "" {
		return nil, errors.New("callback url empty")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPCallbackSender{
		url:       url,
		authToken: authToken,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPCallbackSender) Send(ctx context.Context, report adapter.FinalReport) error {
	body := struct {
		SessionID              string   `json:"sessionId"`
		ScamDetected           bool     `json:"scamDetected"`
		TotalMessagesExchanged int      `json:"totalMessagesExchanged"`
		ExtractedIntelligence  []string `json:"extractedIntelligence"`
		AgentNotes             string   `json:"agentNotes,omitempty"`
	}{
		SessionID:              report.SessionID,
		ScamDetected:           report.ScamDetected,
		TotalMessagesExchanged: report.TotalMessagesExchanged,
		ExtractedIntelligence:  report.Artifacts,
		AgentNotes:             report.AgentNotes,
	}

	b, _ := json.Marshal(body)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	// Delivery id lets the collector deduplicate retried reports.
	req.Header.Set("X-Delivery-Id", uuid.NewString())
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("callback http %d", resp.StatusCode)
	}
	return nil
}
