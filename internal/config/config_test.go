package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	body := `{
		"turn_duration_seconds": 20,
		"auto_pass_duration_ms": 5000,
		"bots_enabled": false
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}

	cfg := GetGameConfig()
	if cfg.TurnDurationSeconds != 20 {
		t.Errorf("turn duration = %d, want 20", cfg.TurnDurationSeconds)
	}
	if cfg.AutoPassDurationMs != 5000 {
		t.Errorf("auto pass duration = %d, want 5000", cfg.AutoPassDurationMs)
	}
	if cfg.BotsEnabled {
		t.Error("bots_enabled should be overridden to false")
	}
	// Fields absent from the file keep their defaults.
	if cfg.BotAutoFillDelaySeconds != 10 {
		t.Errorf("bot auto fill delay = %d, want default 10", cfg.BotAutoFillDelaySeconds)
	}
}
