// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "digest-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the source fetchers.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`
}

// ExtractConfig holds settings for full-text extraction.
type ExtractConfig struct {
	HTTPConfig `yaml:",inline"`

	// MinWords is the word count below which an extraction is treated as
	// failed (default 20).
	MinWords int `json:"min_words" yaml:"min_words"`
}

// SummarizerConfig holds settings for the Ollama summarization backend.
type SummarizerConfig struct {
	// Host is the Ollama API base URL (default "http://localhost:11434").
	Host string `json:"host" yaml:"host"`

	// Model is the chat model identifier (default "qwen2.5:1.5b-instruct").
	Model string `json:"model" yaml:"model"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retry attempts on rate-limited calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// EmailConfig holds SMTP delivery settings. An empty Recipient disables
// delivery; the pipeline still assembles and logs the digest.
type EmailConfig struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	Recipient string `json:"recipient" yaml:"recipient"`
}

// ScheduleConfig holds the daily digest trigger settings.
type ScheduleConfig struct {
	Hour     int    `json:"hour" yaml:"hour"`
	Minute   int    `json:"minute" yaml:"minute"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the SQLite database file (default "./digest.db").
	Path string `json:"path" yaml:"path"`
}

// ServerConfig holds the admin API settings.
type ServerConfig struct {
	// Addr is the listen address (default ":8020").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all component configurations.
type Config struct {
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	Extract    ExtractConfig    `json:"extract" yaml:"extract"`
	Summarizer SummarizerConfig `json:"summarizer" yaml:"summarizer"`
	Email      EmailConfig      `json:"email" yaml:"email"`
	Schedule   ScheduleConfig   `json:"schedule" yaml:"schedule"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	LogLevel   string           `json:"log_level" yaml:"log_level"`
}
