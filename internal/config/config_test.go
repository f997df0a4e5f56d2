package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultYAMLMatchesHardcoded(t *testing.T) {
	var cfg BlocksConfig
	if err := yaml.Unmarshal(defaultBlocksYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBlocksConfig()) {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultBlocksConfig())
	}
}

func TestLoadBlocksCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	data := []byte("board:\n  width: 12\n  height: 24\ngameplay:\n  start_level: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 24 {
		t.Errorf("board = %dx%d, want 12x24", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Gameplay.StartLevel != 3 {
		t.Errorf("start level = %d, want 3", cfg.Gameplay.StartLevel)
	}
	if cfg.Timing.LockDelayMs != 500 || !cfg.Speed.RampEnabled {
		t.Error("keys left out of the file should keep their defaults")
	}
}

func TestLoadBlocksMissingCustomPath(t *testing.T) {
	if _, err := LoadBlocks(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing custom config")
	}
}

func TestLoadBlocksMalformedCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	if err := os.WriteFile(path, []byte("board: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlocks(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		ramp       bool
		startLevel int
	}{
		{DifficultyEasy, true, 1},
		{DifficultyNormal, true, 1},
		{DifficultyHard, true, 5},
		{DifficultyFixed, false, 1},
	}

	for _, tt := range tests {
		cfg := DefaultBlocksConfig()
		ApplyBlocksPreset(&cfg, tt.preset)
		if cfg.Speed.RampEnabled != tt.ramp {
			t.Errorf("%s: ramp = %v, want %v", tt.preset, cfg.Speed.RampEnabled, tt.ramp)
		}
		if cfg.Gameplay.StartLevel != tt.startLevel {
			t.Errorf("%s: start level = %d, want %d", tt.preset, cfg.Gameplay.StartLevel, tt.startLevel)
		}
	}

	easy := DefaultBlocksConfig()
	ApplyBlocksPreset(&easy, DifficultyEasy)
	if easy.Speed.BaseIntervalMs <= DefaultBlocksConfig().Speed.BaseIntervalMs {
		t.Error("easy preset should slow the gravity curve")
	}
}
