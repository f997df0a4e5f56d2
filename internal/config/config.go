// Package config provides YAML-based game configuration loading and
// difficulty presets for the blockfall variants.
package config

// BlocksConfig contains all tunable parameters for the game variants.
type BlocksConfig struct {
	Board        BoardConfig        `yaml:"board"`
	Gameplay     GameplayConfig     `yaml:"gameplay"`
	Timing       TimingConfig       `yaml:"timing"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Speed        SpeedConfig        `yaml:"speed"`
	ClassicSpeed ClassicSpeedConfig `yaml:"classic_speed"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GameplayConfig defines progression parameters and display toggles.
type GameplayConfig struct {
	LinesPerLevel int  `yaml:"lines_per_level"`
	StartLevel    int  `yaml:"start_level"`
	GhostPiece    bool `yaml:"ghost_piece"`
}

// TimingConfig defines the lock delay used by the polished and topless
// variants. The classic variant locks immediately and ignores it.
type TimingConfig struct {
	LockDelayMs   int `yaml:"lock_delay_ms"`
	MaxLockResets int `yaml:"max_lock_resets"`
}

// ScoringConfig defines the drop bonuses awarded per descended row.
type ScoringConfig struct {
	SoftDropPerRow int `yaml:"soft_drop_per_row"`
	HardDropPerRow int `yaml:"hard_drop_per_row"`
}

// SpeedConfig defines the geometric gravity curve used by the polished
// and topless variants.
type SpeedConfig struct {
	BaseIntervalMs int     `yaml:"base_interval_ms"`
	MinIntervalMs  int     `yaml:"min_interval_ms"`
	DecayPerLevel  float64 `yaml:"decay_per_level"`
	RampEnabled    bool    `yaml:"ramp_enabled"`
}

// ClassicSpeedConfig defines the linear gravity curve used by the
// classic variant.
type ClassicSpeedConfig struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	MinIntervalMs  int `yaml:"min_interval_ms"`
	StepMs         int `yaml:"step_ms"`
}
