// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`
	Workers   int    `yaml:"workers"` // background task workers
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // optional; feedback export falls back to memory when empty
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type ClassifierConfig struct {
	Mode      string        `yaml:"mode"` // http | openai | gemini | multi | none
	URL       string        `yaml:"url"`  // http mode endpoint
	OpenAIKey string        `yaml:"openai_key"`
	GeminiKey string        `yaml:"gemini_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"` // hard budget per prediction
}

type DetectionConfig struct {
	QueueCapacity  int `yaml:"queue_capacity"`   // review queue bound
	RatePerMinute  int `yaml:"rate_per_minute"`  // ingest rate limit per session
	MaxMessageSize int `yaml:"max_message_size"` // bytes accepted per message text
}

type CallbackConfig struct {
	URL       string        `yaml:"url"`
	AuthToken string        `yaml:"auth_token"`
	Timeout   time.Duration `yaml:"timeout"`
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Detection  DetectionConfig  `yaml:"detection"`
	Callback   CallbackConfig   `yaml:"callback"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string = ""
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev
	return cfg, nil
}

// Parse decodes and defaults a raw yaml document. Split out of LoadConfig so
// tests can feed documents without touching flags or the filesystem.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Workers <= 0 {
		cfg.Server.Workers = 8
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Classifier.Mode == "" {
		cfg.Classifier.Mode = "none"
	}
	if cfg.Classifier.Model == "" {
		cfg.Classifier.Model = "gpt-4o-mini"
	}
	if cfg.Classifier.Timeout <= 0 {
		cfg.Classifier.Timeout = 2 * time.Second
	}
	if cfg.Detection.QueueCapacity <= 0 {
		cfg.Detection.QueueCapacity = 256
	}
	if cfg.Detection.RatePerMinute <= 0 {
		cfg.Detection.RatePerMinute = 60
	}
	if cfg.Detection.MaxMessageSize <= 0 {
		cfg.Detection.MaxMessageSize = 16 << 10
	}
	if cfg.Callback.Timeout <= 0 {
		cfg.Callback.Timeout = 5 * time.Second
	}

	// Minimal validation
	switch cfg.Classifier.Mode {
	case "none", "multi":
	case "http":
		if cfg.Classifier.URL == "" {
			return nil, errors.New("classifier.url is required in http mode")
		}
	case "openai":
		if cfg.Classifier.OpenAIKey == "" {
			return nil, errors.New("classifier.openai_key is required in openai mode")
		}
	case "gemini":
		if cfg.Classifier.GeminiKey == "" {
			return nil, errors.New("classifier.gemini_key is required in gemini mode")
		}
	default:
		return nil, fmt.Errorf("unknown classifier.mode %q", cfg.Classifier.Mode)
	}
	if cfg.Callback.URL == "" {
		return nil, errors.New("callback.url is required")
	}

	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
