package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/ports/adapter"
)

func TestHTTPClassifierPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"probability": 0.87}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClassifier(srv.URL)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	pred, err := c.Predict(context.Background(), "share your otp")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Probability != 0.87 || pred.Provider != "http" {
		t.Fatalf("prediction %+v", pred)
	}
}

func TestHTTPClassifierUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewHTTPClassifier(srv.URL)
	if _, err := c.Predict(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestHTTPClassifierRejectsOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"probability": 1.7}`))
	}))
	defer srv.Close()

	c, _ := NewHTTPClassifier(srv.URL)
	if _, err := c.Predict(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for probability outside [0,1]")
	}
}

type stubClassifier struct {
	name string
	p    float64
	err  error
}

func (s *stubClassifier) Name() string { return s.name }
func (s *stubClassifier) Predict(ctx context.Context, text string) (adapter.Prediction, error) {
	if s.err != nil {
		return adapter.Prediction{}, s.err
	}
	return adapter.Prediction{Probability: s.p, Provider: s.name}, nil
}

func TestMultiClassifierFallsBack(t *testing.T) {
	m := NewMultiClassifier(
		&stubClassifier{name: "primary", err: errors.New("down")},
		&stubClassifier{name: "backup", p: 0.42},
	)
	pred, err := m.Predict(context.Background(), "hello")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Provider != "backup" || pred.Probability != 0.42 {
		t.Fatalf("prediction %+v", pred)
	}
}

func TestMultiClassifierAllFail(t *testing.T) {
	last := errors.New("also down")
	m := NewMultiClassifier(
		&stubClassifier{name: "a", err: errors.New("down")},
		&stubClassifier{name: "b", err: last},
	)
	if _, err := m.Predict(context.Background(), "hello"); !errors.Is(err, last) {
		t.Fatalf("err = %v, want last provider error", err)
	}
}

func TestMultiClassifierEmpty(t *testing.T) {
	m := NewMultiClassifier(nil)
	if _, err := m.Predict(context.Background(), "hello"); !errors.Is(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("err = %v, want ErrClassifierUnavailable", err)
	}
}

func TestNoopClassifierAlwaysUnavailable(t *testing.T) {
	n := NewNoopClassifier()
	if _, err := n.Predict(context.Background(), "hello"); !errors.Is(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("err = %v, want ErrClassifierUnavailable", err)
	}
}

func TestParseProbability(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.85", 0.85, false},
		{" 0.3 ", 0.3, false},
		{"0.75.", 0.75, false},
		{"1", 1, false},
		{"probably a scam", 0, true},
		{"1.4", 0, true},
		{"-0.1", 0, true},
	}
	for _, tc := range cases {
		p, err := parseProbability(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseProbability(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || p != tc.want {
			t.Fatalf("parseProbability(%q) = %.4f, %v", tc.in, p, err)
		}
	}
}
