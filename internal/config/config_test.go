package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != "file" || cfg.Game.FPS != 60 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eggs.toml")
	data := `
[game]
seed = 7

[storage]
driver = "postgres"
timeout = "500ms"

[audio]
volume = 0.25
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Seed != 7 {
		t.Fatalf("seed = %d, want 7", cfg.Game.Seed)
	}
	if cfg.Storage.Driver != "postgres" || cfg.Storage.Timeout != 500*time.Millisecond {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.Audio.Volume != 0.25 || !cfg.Audio.Enabled {
		t.Fatalf("audio = %+v", cfg.Audio)
	}
	if cfg.Game.FPS != 60 {
		t.Fatalf("unset field lost its default: fps = %d", cfg.Game.FPS)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"driver": "[storage]\ndriver = \"redis\"\n",
		"fps":    "[game]\nfps = 0\n",
		"volume": "[audio]\nvolume = 2.0\n",
		"syntax": "[game\n",
	}
	for name, data := range tests {
		path := filepath.Join(t.TempDir(), name+".toml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: Load succeeded, want error", name)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("EGGS_SEED", "99")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SSH.Port != "2323" || cfg.Game.Seed != 99 {
		t.Fatalf("env not applied: ssh=%+v seed=%d", cfg.SSH, cfg.Game.Seed)
	}

	t.Setenv("EGGS_SEED", "abc")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatalf("bad EGGS_SEED accepted")
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eggs.log")
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "console", File: path})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("log file is empty")
	}
}
