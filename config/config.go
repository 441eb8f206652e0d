// Package config loads and validates the fxrisk configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxrisk/logging"
)

// Config is the complete tool configuration.
type Config struct {
	Pair     PairConfig     `json:"pair" yaml:"pair"`
	Rates    RatesConfig    `json:"rates" yaml:"rates"`
	Interest InterestConfig `json:"interest" yaml:"interest"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Log      logging.Config `json:"log" yaml:"log"`
}

// PairConfig names the currency pair under analysis.
type PairConfig struct {
	Base  string `json:"base" yaml:"base"`
	Quote string `json:"quote" yaml:"quote"`
}

// RatesConfig selects where spot observations come from.
type RatesConfig struct {
	Source  string `json:"source" yaml:"source"` // "csv", "sqlite" or "remote"
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	APIURL  string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
}

// InterestConfig carries the annualized interest rates (decimals) for the
// two legs of the pair, e.g. 0.065 for a 6.5% quote-side rate.
type InterestConfig struct {
	BaseRate  float64 `json:"base_rate" yaml:"base_rate"`
	QuoteRate float64 `json:"quote_rate" yaml:"quote_rate"`
}

// AnalysisConfig tunes the pipeline.
type AnalysisConfig struct {
	Confidence float64   `json:"confidence" yaml:"confidence"`
	Shocks     []float64 `json:"shocks,omitempty" yaml:"shocks,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Pair.Base == "" || c.Pair.Quote == "" {
		return fmt.Errorf("pair.base and pair.quote are required")
	}
	if strings.EqualFold(c.Pair.Base, c.Pair.Quote) {
		return fmt.Errorf("pair.base and pair.quote must differ")
	}

	switch c.Rates.Source {
	case "csv":
		if c.Rates.CSVPath == "" {
			return fmt.Errorf("rates.csv_path required for csv source")
		}
	case "sqlite":
		if c.Rates.DBPath == "" {
			return fmt.Errorf("rates.db_path required for sqlite source")
		}
	case "remote":
		// api_url optional, the client has a default
	default:
		return fmt.Errorf("rates.source must be 'csv', 'sqlite' or 'remote'")
	}

	if c.Analysis.Confidence < 0 || c.Analysis.Confidence >= 1 {
		return fmt.Errorf("analysis.confidence must be in [0, 1)")
	}
	for _, s := range c.Analysis.Shocks {
		if 1+s <= 0 {
			return fmt.Errorf("analysis.shocks: %+.2f%% produces non-positive rates", s*100)
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults for USD/INR.
func Default() *Config {
	return &Config{
		Pair: PairConfig{Base: "USD", Quote: "INR"},
		Rates: RatesConfig{
			Source: "sqlite",
			DBPath: "./rates.sqlite",
		},
		Interest: InterestConfig{
			BaseRate:  0.0525, // Fed funds
			QuoteRate: 0.065,  // RBI repo
		},
		Analysis: AnalysisConfig{
			Confidence: 0.95,
			Shocks:     []float64{-0.05, 0, 0.05},
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    logging.Config{Level: "info", Format: "text"},
	}
}
