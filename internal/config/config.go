// Package config builds the immutable process configuration from
// environment variables. It is constructed once at startup and passed
// by reference into every component; nothing reads the environment
// after that.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"doribell/internal/quiet"
	"doribell/pkg/logx"
)

// Defaults mirror the original deployment.
const (
	DefaultListenAddr      = ":8080"
	DefaultFamilyName      = "Dori-Bell Home"
	DefaultQuietStart      = 22
	DefaultQuietEnd        = 7
	DefaultTimezoneOffset  = 2
	DefaultRatePerMinute   = 12
	DefaultVerifyTimeoutMs = 8000
)

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type TurnstileConfig struct {
	Secret  string
	SiteKey string
}

type Config struct {
	FamilyName string
	Phone      string
	ListenAddr string

	Telegram  TelegramConfig
	Turnstile TurnstileConfig
	Quiet     quiet.Policy

	// CatalogFile optionally points at a YAML button/translation
	// override; empty uses the built-in catalog.
	CatalogFile string

	// RatePerMinute bounds accepted /notify requests.
	RatePerMinute int

	// DigestSchedule is a five-field cron spec; empty disables the
	// daily digest.
	DigestSchedule string

	Logging logx.Config
}

// FromEnv reads the environment. Integer values that are absent or
// unparsable fall back to their defaults; values that parse but are
// out of range are startup errors, never silently clamped.
func FromEnv() (*Config, error) {
	cfg := &Config{
		FamilyName:  envStr("FAMILY_NAME", DefaultFamilyName),
		Phone:       envStr("PHONE_NUMBER", ""),
		ListenAddr:  envStr("LISTEN_ADDR", DefaultListenAddr),
		CatalogFile: envStr("CATALOG_FILE", ""),
		Telegram: TelegramConfig{
			Token: envStr("TG_BOT_TOKEN", ""),
		},
		Turnstile: TurnstileConfig{
			Secret:  envStr("TURNSTILE_SECRET", ""),
			SiteKey: envStr("TURNSTILE_SITE_KEY", ""),
		},
		Quiet: quiet.Policy{
			StartHour:           envInt("QUIET_HOURS_START", DefaultQuietStart),
			EndHour:             envInt("QUIET_HOURS_END", DefaultQuietEnd),
			TimezoneOffsetHours: envInt("TIMEZONE_OFFSET", DefaultTimezoneOffset),
		},
		RatePerMinute:  envInt("RATE_PER_MINUTE", DefaultRatePerMinute),
		DigestSchedule: envStr("DIGEST_SCHEDULE", ""),
		Logging: logx.Config{
			Level:   envStr("LOG_LEVEL", "info"),
			Console: true,
		},
	}

	if path := envStr("LOG_FILE", ""); path != "" {
		cfg.Logging.File = logx.FileConfig{Enabled: true, Path: path}
	}

	if raw := envStr("TG_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: TG_CHAT_ID %q is not a chat id: %w", raw, err)
		}
		cfg.Telegram.ChatID = id
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Quiet.StartHour < 0 || c.Quiet.StartHour > 23 {
		return fmt.Errorf("config: QUIET_HOURS_START %d out of range [0,23]", c.Quiet.StartHour)
	}
	if c.Quiet.EndHour < 0 || c.Quiet.EndHour > 23 {
		return fmt.Errorf("config: QUIET_HOURS_END %d out of range [0,23]", c.Quiet.EndHour)
	}
	if c.Quiet.TimezoneOffsetHours < -12 || c.Quiet.TimezoneOffsetHours > 14 {
		return fmt.Errorf("config: TIMEZONE_OFFSET %d out of range [-12,14]", c.Quiet.TimezoneOffsetHours)
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("config: TG_BOT_TOKEN is set but TG_CHAT_ID is missing")
	}
	if c.RatePerMinute <= 0 {
		c.RatePerMinute = DefaultRatePerMinute
	}
	return nil
}

func envStr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// envInt falls back to def when the variable is absent or unparsable,
// matching the original deployment's parseInt(...) || default behavior.
func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
