package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	if got, want := embeddedDefault(), Default(); got != want {
		t.Errorf("embedded arcade.yaml differs from Default():\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	data := []byte("display:\n  framebuffer_path: /dev/fb1\ngames:\n  dino:\n    duck_enabled: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Display.FramebufferPath != "/dev/fb1" {
		t.Errorf("FramebufferPath = %q, expected /dev/fb1", cfg.Display.FramebufferPath)
	}
	if cfg.Games.Dino.DuckEnabled {
		t.Error("DuckEnabled should be overridden to false")
	}
	if cfg.Engine.TickRate != 60 {
		t.Errorf("TickRate = %d, expected default 60", cfg.Engine.TickRate)
	}
	if cfg.Games.Dino.Physics.JumpTicks != 33 {
		t.Errorf("JumpTicks = %d, expected default 33", cfg.Games.Dino.Physics.JumpTicks)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine: [unclosed"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject invalid YAML")
	}
}

func TestApplyPreset(t *testing.T) {
	g := DefaultGamesConfig()

	g.ApplyPreset(DifficultyHard)
	if g.Dino.Difficulty.InitialLevel != 0.5 || g.Snake.Difficulty.InitialLevel != 0.5 {
		t.Error("hard preset should raise the initial level of every module")
	}

	g.ApplyPreset(DifficultyFixed)
	if g.Pong.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := g
	g.ApplyPreset("")
	if g != before {
		t.Error("empty preset should leave the config untouched")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.arcade/x.db"); got != filepath.Join(home, ".arcade/x.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
