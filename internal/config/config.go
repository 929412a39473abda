// Package config defines the client configuration and validation helpers.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by FXCLIENT_* environment
// variables.
type Config struct {
	Exchange  ExchangeConfig  `toml:"exchange"`
	Retention RetentionConfig `toml:"retention"`
	Redis     RedisConfig     `toml:"redis"`
	Notify    NotifyConfig    `toml:"notify"`
	LogLevel  string          `toml:"log_level"`
}

// ExchangeConfig holds backend endpoints and transport selection.
type ExchangeConfig struct {
	// BaseURL is the HTTP API root, e.g. "http://localhost:8080".
	BaseURL string `toml:"base_url"`
	// WsURL is the WebSocket root, used when Transport is "ws".
	WsURL string `toml:"ws_url"`
	// Transport selects how the feeds are consumed: "sse" (newline-delimited
	// JSON over HTTP) or "ws".
	Transport string `toml:"transport"`
}

// RetentionConfig caps the in-memory series. Zero disables trimming.
type RetentionConfig struct {
	PriceHistoryMax int `toml:"price_history_max"`
	QuoteHistoryMax int `toml:"quote_history_max"`
}

// RedisConfig holds parameters for the optional derived-state mirror.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	HistoryMax int    `toml:"history_max"`
}

// NotifyConfig holds alert sink parameters.
type NotifyConfig struct {
	// Severities restricts delivery to the listed alert severities
	// ("warning", "info"). Empty allows everything.
	Severities []string `toml:"severities"`

	TelegramEnabled bool   `toml:"telegram_enabled"`
	TelegramToken   string `toml:"telegram_token"`
	TelegramChatID  string `toml:"telegram_chat_id"`

	DiscordEnabled    bool   `toml:"discord_enabled"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Exchange: ExchangeConfig{
			BaseURL:   "http://localhost:8080",
			Transport: "sse",
		},
		Retention: RetentionConfig{
			PriceHistoryMax: 10000,
			QuoteHistoryMax: 10000,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			HistoryMax: 10000,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Exchange.Transport) {
	case "sse":
		if c.Exchange.BaseURL == "" {
			return fmt.Errorf("config: exchange.base_url is required")
		}
	case "ws":
		if c.Exchange.WsURL == "" {
			return fmt.Errorf("config: exchange.ws_url is required for ws transport")
		}
	default:
		return fmt.Errorf("config: unsupported transport %q", c.Exchange.Transport)
	}

	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("config: exchange.base_url is required for order submission")
	}

	if c.Notify.TelegramEnabled && (c.Notify.TelegramToken == "" || c.Notify.TelegramChatID == "") {
		return fmt.Errorf("config: notify.telegram_token and notify.telegram_chat_id are required when telegram is enabled")
	}
	if c.Notify.DiscordEnabled && c.Notify.DiscordWebhookURL == "" {
		return fmt.Errorf("config: notify.discord_webhook_url is required when discord is enabled")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when the mirror is enabled")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unsupported log_level %q", c.LogLevel)
	}

	return nil
}
