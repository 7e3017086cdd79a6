package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/agusespa/chateval/pkg/logger"
)

type Config struct {
	Logging    logger.Config      `yaml:"logging"`
	Evaluator  EvaluatorConfig    `yaml:"evaluator"`
	Thresholds map[string]float64 `yaml:"thresholds"`
	Storage    StorageConfig      `yaml:"storage"`
	Results    ResultsConfig      `yaml:"results"`
	Server     ServerConfig       `yaml:"server"`
}

type EvaluatorConfig struct {
	Model           string        `yaml:"model"`
	Seed            int64         `yaml:"seed"`
	Jitter          JitterConfig  `yaml:"jitter"`
	Delay           time.Duration `yaml:"delay"`
	Concurrency     int           `yaml:"concurrency"`
	StrictCoherence bool          `yaml:"strict_coherence"`
}

type JitterConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Amplitude float64 `yaml:"amplitude"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type ResultsConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

var knownThresholds = map[string]bool{
	"accuracy":      true,
	"relevance":     true,
	"coherence":     true,
	"completeness":  true,
	"toxicity":      true,
	"hallucination": true,
	"overall":       true,
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Evaluator: EvaluatorConfig{
			Model:       "gpt-4",
			Jitter:      JitterConfig{Enabled: true, Amplitude: 0.3},
			Concurrency: 1,
		},
		Thresholds: map[string]float64{},
		Storage:    StorageConfig{Path: "chateval.db"},
		Results:    ResultsConfig{Dir: "results"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// LoadConfig reads a YAML config on top of the defaults, then applies .env
// and CHATEVAL_* overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CHATEVAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CHATEVAL_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CHATEVAL_MODEL"); v != "" {
		cfg.Evaluator.Model = v
	}
	if v := os.Getenv("CHATEVAL_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHATEVAL_SEED: %w", err)
		}
		cfg.Evaluator.Seed = seed
	}
	if v := os.Getenv("CHATEVAL_JITTER"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHATEVAL_JITTER: %w", err)
		}
		cfg.Evaluator.Jitter.Enabled = enabled
	}
	if v := os.Getenv("CHATEVAL_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHATEVAL_CONCURRENCY: %w", err)
		}
		cfg.Evaluator.Concurrency = n
	}
	if v := os.Getenv("CHATEVAL_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("CHATEVAL_RESULTS_DIR"); v != "" {
		cfg.Results.Dir = v
	}
	if v := os.Getenv("CHATEVAL_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Evaluator.Validate(); err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}
	for name, v := range c.Thresholds {
		if !knownThresholds[name] {
			return fmt.Errorf("thresholds: unknown criterion %q", name)
		}
		if v < 0 || v > 5 {
			return fmt.Errorf("thresholds: %s must be between 0 and 5, got %.2f", name, v)
		}
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage: missing required 'path' field")
	}
	if strings.TrimSpace(c.Results.Dir) == "" {
		return errors.New("results: missing required 'dir' field")
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging: unsupported format %q", c.Logging.Format)
	}
	return nil
}

func (e *EvaluatorConfig) Validate() error {
	if e.Model == "" {
		return errors.New("missing required 'model' field")
	}
	if e.Jitter.Amplitude < 0 || e.Jitter.Amplitude > 1 {
		return fmt.Errorf("jitter amplitude must be between 0 and 1, got %.2f", e.Jitter.Amplitude)
	}
	if e.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	if e.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", e.Concurrency)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return errors.New("missing required 'addr' field")
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Threshold returns the configured threshold for name, if any
func (c *Config) Threshold(name string) (float64, bool) {
	v, ok := c.Thresholds[name]
	return v, ok
}
