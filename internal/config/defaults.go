package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default game configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gameplay: GameplayConfig{
			LinesPerLevel: 10,
			StartLevel:    1,
			GhostPiece:    true,
		},
		Timing: TimingConfig{
			LockDelayMs:   500,
			MaxLockResets: 15,
		},
		Scoring: ScoringConfig{
			SoftDropPerRow: 1,
			HardDropPerRow: 2,
		},
		Speed: SpeedConfig{
			BaseIntervalMs: 750,
			MinIntervalMs:  50,
			DecayPerLevel:  0.875,
			RampEnabled:    true,
		},
		ClassicSpeed: ClassicSpeedConfig{
			BaseIntervalMs: 500,
			MinIntervalMs:  100,
			StepMs:         40,
		},
	}
}

// DefaultYAML returns the embedded default YAML, suitable as a starting
// point for a user config file.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
