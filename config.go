package board

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config configures a board session, typically loaded from a YAML file
// by a host application (see cmd/boardd).
type Config struct {
	// StorePath is the SQLite database file holding the document.
	// Empty means in-memory only (nothing survives the process).
	StorePath string `json:"store_path" yaml:"store_path"`

	// DocumentKey addresses the document inside the store
	// (default: "document").
	DocumentKey string `json:"document_key" yaml:"document_key"`

	// FetchTimeoutSeconds bounds a single background retrieval
	// (default: 30).
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds"`

	// MaxImageBytes bounds the size of a fetched background image
	// (default: 32 MiB).
	MaxImageBytes int64 `json:"max_image_bytes" yaml:"max_image_bytes"`

	// Listen is the HTTP address boardd serves on (default: ":8479").
	Listen string `json:"listen" yaml:"listen"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.DocumentKey == "" {
		c.DocumentKey = DefaultDocumentKey
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = int(DefaultFetchTimeout / time.Second)
	}
	if c.MaxImageBytes <= 0 {
		c.MaxImageBytes = DefaultMaxImageBytes
	}
	if c.Listen == "" {
		c.Listen = ":8479"
	}
	if c.Logger == nil {
		c.Logger = Logger()
	}
}

// LoadConfig reads a YAML config file and fills in defaults. A missing
// file is not an error: it yields the default config.
func LoadConfig(path string) (*Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("board: read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("board: parse config: %w", err)
		}
	}
	c.defaults()
	return &c, nil
}

// Options expands the config into controller options. The store is not
// included; open it separately so the caller controls its lifetime.
func (c *Config) Options() []Option {
	return []Option{
		WithDocumentKey(c.DocumentKey),
		WithFetchTimeout(time.Duration(c.FetchTimeoutSeconds) * time.Second),
		WithMaxImageBytes(c.MaxImageBytes),
		WithLogger(c.Logger),
	}
}
