package config

import (
	"strings"
	"testing"
	"time"
)

const minimalYAML = `
callback:
  url: http://collector.local/report
`

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("log defaults wrong: %+v", cfg.Log)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Workers != 8 {
		t.Fatalf("server defaults wrong: %+v", cfg.Server)
	}
	if cfg.Classifier.Mode != "none" || cfg.Classifier.Timeout != 2*time.Second {
		t.Fatalf("classifier defaults wrong: %+v", cfg.Classifier)
	}
	if cfg.Detection.QueueCapacity != 256 || cfg.Detection.RatePerMinute != 60 {
		t.Fatalf("detection defaults wrong: %+v", cfg.Detection)
	}
	if cfg.Redis.TTL != time.Hour {
		t.Fatalf("redis ttl default wrong: %v", cfg.Redis.TTL)
	}
}

func TestParseModeValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"http without url", minimalYAML + "classifier:\n  mode: http\n", "classifier.url"},
		{"openai without key", minimalYAML + "classifier:\n  mode: openai\n", "classifier.openai_key"},
		{"gemini without key", minimalYAML + "classifier:\n  mode: gemini\n", "classifier.gemini_key"},
		{"unknown mode", minimalYAML + "classifier:\n  mode: magic\n", "unknown classifier.mode"},
		{"missing callback url", "log:\n  level: debug\n", "callback.url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseExplicitValues(t *testing.T) {
	doc := `
log:
  level: debug
  format: console
server:
  port: 9090
classifier:
  mode: http
  url: http://model.internal/predict
  timeout: 500ms
detection:
  queue_capacity: 32
callback:
  url: http://collector.local/report
  timeout: 10s
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port %d", cfg.Server.Port)
	}
	if cfg.Classifier.Timeout != 500*time.Millisecond {
		t.Fatalf("timeout %v", cfg.Classifier.Timeout)
	}
	if cfg.Detection.QueueCapacity != 32 {
		t.Fatalf("queue capacity %d", cfg.Detection.QueueCapacity)
	}
	if cfg.Callback.Timeout != 10*time.Second {
		t.Fatalf("callback timeout %v", cfg.Callback.Timeout)
	}
}
