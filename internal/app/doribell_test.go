package app

import (
	"testing"

	"doribell/internal/config"
	"doribell/internal/quiet"
	"doribell/pkg/logx"
)

func testConfig() *config.Config {
	return &config.Config{
		FamilyName:    "Test Family",
		ListenAddr:    ":0",
		RatePerMinute: config.DefaultRatePerMinute,
		Quiet:         quiet.Policy{StartHour: 22, EndHour: 7},
		Telegram: config.TelegramConfig{
			Token:  "123:abc",
			ChatID: 100,
		},
		Logging: logx.Config{Level: "error", Console: true},
	}
}

func TestNewRequiresBotToken(t *testing.T) {
	cfg := testConfig()
	cfg.Telegram.Token = ""
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for missing bot token")
	}
}

func TestNewRejectsMissingCatalogFile(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogFile = "/nonexistent/catalog.yaml"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unreadable catalog file")
	}
}
