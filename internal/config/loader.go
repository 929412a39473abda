package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies FXCLIENT_* environment variable overrides, and
// returns the final Config. The caller should invoke Config.Validate() after
// Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env if present; silently ignore when missing.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known FXCLIENT_* environment variables and
// overwrites the corresponding fields when a variable is set. This lets
// operators inject endpoints and secrets at deploy time without touching the
// TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Exchange.BaseURL, "FXCLIENT_EXCHANGE_BASE_URL")
	setStr(&cfg.Exchange.WsURL, "FXCLIENT_EXCHANGE_WS_URL")
	setStr(&cfg.Exchange.Transport, "FXCLIENT_EXCHANGE_TRANSPORT")

	setInt(&cfg.Retention.PriceHistoryMax, "FXCLIENT_RETENTION_PRICE_HISTORY_MAX")
	setInt(&cfg.Retention.QuoteHistoryMax, "FXCLIENT_RETENTION_QUOTE_HISTORY_MAX")

	setBool(&cfg.Redis.Enabled, "FXCLIENT_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "FXCLIENT_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "FXCLIENT_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "FXCLIENT_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "FXCLIENT_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "FXCLIENT_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "FXCLIENT_REDIS_TLS_ENABLED")
	setInt(&cfg.Redis.HistoryMax, "FXCLIENT_REDIS_HISTORY_MAX")

	setStrSlice(&cfg.Notify.Severities, "FXCLIENT_NOTIFY_SEVERITIES")
	setBool(&cfg.Notify.TelegramEnabled, "FXCLIENT_NOTIFY_TELEGRAM_ENABLED")
	setStr(&cfg.Notify.TelegramToken, "FXCLIENT_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "FXCLIENT_NOTIFY_TELEGRAM_CHAT_ID")
	setBool(&cfg.Notify.DiscordEnabled, "FXCLIENT_NOTIFY_DISCORD_ENABLED")
	setStr(&cfg.Notify.DiscordWebhookURL, "FXCLIENT_NOTIFY_DISCORD_WEBHOOK_URL")

	setStr(&cfg.LogLevel, "FXCLIENT_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStrSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}
