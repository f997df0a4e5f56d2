package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyHard:
		return 5
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset pins gravity to the start level.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	cfg.Speed.RampEnabled = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Speed.BaseIntervalMs = 1000
		cfg.Speed.MinIntervalMs = 100
		cfg.ClassicSpeed.BaseIntervalMs = 650
		cfg.ClassicSpeed.MinIntervalMs = 150
	case DifficultyHard:
		cfg.Gameplay.StartLevel = StartLevelForPreset(preset)
	}
}
