// Copyright AuthorForge, 2026. All rights reserved.

package types

// FlatArcFinding flags a run of chapters where an intensity layer barely
// varies.
type FlatArcFinding struct {
	// Layer is the intensity layer the window was measured on.
	Layer IntensityLayer `json:"layer" yaml:"layer"`

	// Chapters are the chapter numbers covered by the flagged window.
	Chapters []int `json:"chapters" yaml:"chapters"`

	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// LowStakesFinding flags a run of chapters where stakes stay below the
// floor threshold.
type LowStakesFinding struct {
	Chapters   []int  `json:"chapters" yaml:"chapters"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// PacingIssueType classifies a pacing finding.
type PacingIssueType string

const (
	PacingTooEarly PacingIssueType = "too-early"
	PacingTooLate  PacingIssueType = "too-late"
	PacingTooFlat  PacingIssueType = "too-flat"
)

// PacingIssue flags a single chapter whose action intensity is misplaced
// relative to its structural position.
type PacingIssue struct {
	Type       PacingIssueType `json:"type" yaml:"type"`
	Chapter    int             `json:"chapter" yaml:"chapter"`
	Suggestion string          `json:"suggestion" yaml:"suggestion"`
}

// EmotionalDisconnect is an extension category; no heuristic populates
// it yet. Kept so report consumers need not special-case its absence.
type EmotionalDisconnect struct {
	Chapter     int    `json:"chapter" yaml:"chapter"`
	CharacterID string `json:"characterId" yaml:"characterId"`
	Issue       string `json:"issue" yaml:"issue"`
	Suggestion  string `json:"suggestion" yaml:"suggestion"`
}

// CanonViolation is an extension category; no heuristic populates it yet.
type CanonViolation struct {
	Chapter       int    `json:"chapter" yaml:"chapter"`
	Issue         string `json:"issue" yaml:"issue"`
	ConflictsWith int    `json:"conflictsWith" yaml:"conflictsWith"`
}

// ArcAnalysis is the structured diagnostic report over a graph's points.
// The three implemented categories are flatArcs, lowStakes, and
// pacingIssues; emotionalDisconnects and canonViolations are always
// empty. All category slices are non-nil so they serialize as arrays.
type ArcAnalysis struct {
	FlatArcs             []FlatArcFinding      `json:"flatArcs" yaml:"flatArcs"`
	LowStakes            []LowStakesFinding    `json:"lowStakes" yaml:"lowStakes"`
	PacingIssues         []PacingIssue         `json:"pacingIssues" yaml:"pacingIssues"`
	EmotionalDisconnects []EmotionalDisconnect `json:"emotionalDisconnects" yaml:"emotionalDisconnects"`
	CanonViolations      []CanonViolation      `json:"canonViolations" yaml:"canonViolations"`

	// OverallScore is 70 plus 10 for each empty implemented category,
	// so it always lies in [70,100] and equals 100 exactly when all
	// three are empty.
	OverallScore int `json:"overallScore" yaml:"overallScore"`

	Summary string `json:"summary" yaml:"summary"`
}

// Clean reports whether all three implemented categories are empty.
func (a ArcAnalysis) Clean() bool {
	return len(a.FlatArcs) == 0 && len(a.LowStakes) == 0 && len(a.PacingIssues) == 0
}
