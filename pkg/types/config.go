// Copyright AuthorForge, 2026. All rights reserved.

package types

// StoreConfig holds settings for the arc store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains arc.db).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SaveRetries is the number of save attempts on version conflict
	// before the conflict is surfaced to the caller (default 3).
	SaveRetries int `json:"save_retries" yaml:"save_retries"`
}

// SeedConfig holds settings for graph seeding.
type SeedConfig struct {
	// TotalChapters is the chapter count for newly seeded graphs
	// (default 30).
	TotalChapters int `json:"total_chapters" yaml:"total_chapters"`

	// Act1End and Act2End override the act boundary chapters. Zero
	// means derive from TotalChapters (~23% and ~73%).
	Act1End int `json:"act1_end,omitempty" yaml:"act1_end,omitempty"`
	Act2End int `json:"act2_end,omitempty" yaml:"act2_end,omitempty"`
}

// AnalysisConfig holds settings for the diagnostic engine. Zero values
// select the canonical thresholds.
type AnalysisConfig struct {
	// FlatWindow is the flat-arc sliding window width (default 5).
	FlatWindow int `json:"flat_window" yaml:"flat_window"`

	// FlatRange is the range below which a window counts as flat
	// (default 10).
	FlatRange float64 `json:"flat_range" yaml:"flat_range"`

	// StakesWindow is the low-stakes window width (default 3).
	StakesWindow int `json:"stakes_window" yaml:"stakes_window"`

	// StakesFloor is the threshold every point in a window must sit
	// under to count as low stakes (default 40).
	StakesFloor float64 `json:"stakes_floor" yaml:"stakes_floor"`

	// ActionSpike is the act-1 action intensity above which a pacing
	// issue is reported (default 70).
	ActionSpike float64 `json:"action_spike" yaml:"action_spike"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Store    StoreConfig    `json:"store" yaml:"store"`
	Seed     SeedConfig     `json:"seed" yaml:"seed"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}
