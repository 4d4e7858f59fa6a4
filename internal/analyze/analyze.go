// Copyright AuthorForge, 2026. All rights reserved.

// Package analyze runs sliding-window heuristics over a graph's points
// and produces a scored diagnostic report. Analysis is a pure function
// of the points slice: identical input yields identical output.
package analyze

import (
	"fmt"
	"strings"

	"github.com/authorforge/arc-engine/pkg/types"
)

// Canonical thresholds.
const (
	defaultFlatWindow   = 5
	defaultFlatRange    = 10
	defaultStakesWindow = 3
	defaultStakesFloor  = 40
	defaultActionSpike  = 70

	baseScore     = 70
	categoryBonus = 10
)

// Params holds the heuristic thresholds. The zero value selects the
// canonical thresholds.
type Params struct {
	// FlatWindow is the number of consecutive points a flat-arc window
	// spans.
	FlatWindow int

	// FlatRange is the max-minus-min bound under which a window counts
	// as flat.
	FlatRange float64

	// StakesWindow is the number of consecutive points a low-stakes
	// window spans.
	StakesWindow int

	// StakesFloor is the threshold every stakes value in a window must
	// sit under.
	StakesFloor float64

	// ActionSpike is the act-1 action intensity above which a too-early
	// pacing issue is reported.
	ActionSpike float64
}

func (p Params) withDefaults() Params {
	if p.FlatWindow <= 0 {
		p.FlatWindow = defaultFlatWindow
	}
	if p.FlatRange <= 0 {
		p.FlatRange = defaultFlatRange
	}
	if p.StakesWindow <= 0 {
		p.StakesWindow = defaultStakesWindow
	}
	if p.StakesFloor <= 0 {
		p.StakesFloor = defaultStakesFloor
	}
	if p.ActionSpike <= 0 {
		p.ActionSpike = defaultActionSpike
	}
	return p
}

// FromConfig builds Params from an analysis configuration.
func FromConfig(cfg types.AnalysisConfig) Params {
	return Params{
		FlatWindow:   cfg.FlatWindow,
		FlatRange:    cfg.FlatRange,
		StakesWindow: cfg.StakesWindow,
		StakesFloor:  cfg.StakesFloor,
		ActionSpike:  cfg.ActionSpike,
	}
}

// Analyze produces the diagnostic report for an ordered points slice.
// The emotionalDisconnects and canonViolations categories are extension
// stubs and always come back empty.
func Analyze(points []types.StoryArcPoint, params Params) types.ArcAnalysis {
	p := params.withDefaults()

	a := types.ArcAnalysis{
		FlatArcs:             []types.FlatArcFinding{},
		LowStakes:            []types.LowStakesFinding{},
		PacingIssues:         []types.PacingIssue{},
		EmotionalDisconnects: []types.EmotionalDisconnect{},
		CanonViolations:      []types.CanonViolation{},
	}

	a.FlatArcs = flatArcs(points, p)
	a.LowStakes = lowStakes(points, p)
	a.PacingIssues = pacingIssues(points, p)

	score := baseScore
	if len(a.FlatArcs) == 0 {
		score += categoryBonus
	}
	if len(a.LowStakes) == 0 {
		score += categoryBonus
	}
	if len(a.PacingIssues) == 0 {
		score += categoryBonus
	}
	if score > 100 {
		score = 100
	}
	a.OverallScore = score
	a.Summary = summary(a)

	return a
}

// flatArcs scans the emotional layer with a window of FlatWindow points.
// A window whose max-min range falls under FlatRange is flagged; the
// scan index then jumps by window-width-minus-one (plus the loop
// increment) so the next window starts just past the flagged span. The
// minus-one skip distance matches longstanding behavior; changing it to
// a full window width would alter which spans get flagged.
func flatArcs(points []types.StoryArcPoint, p Params) []types.FlatArcFinding {
	findings := []types.FlatArcFinding{}
	w := p.FlatWindow

	for i := 0; i+w <= len(points); i++ {
		window := points[i : i+w]

		lo, hi := window[0].Emotional, window[0].Emotional
		for _, pt := range window[1:] {
			if pt.Emotional < lo {
				lo = pt.Emotional
			}
			if pt.Emotional > hi {
				hi = pt.Emotional
			}
		}

		if hi-lo < p.FlatRange {
			findings = append(findings, types.FlatArcFinding{
				Layer:    types.LayerEmotional,
				Chapters: chapters(window),
				Suggestion: fmt.Sprintf(
					"Emotional intensity is relatively flat in chapters %d-%d. Consider adding a character conflict or revelation to increase tension.",
					window[0].Chapter, window[w-1].Chapter),
			})
			i += w - 1
		}
	}

	return findings
}

// lowStakes scans with a window of StakesWindow points; a window where
// every stakes value sits under StakesFloor is flagged, with the same
// skip-ahead as flatArcs.
func lowStakes(points []types.StoryArcPoint, p Params) []types.LowStakesFinding {
	findings := []types.LowStakesFinding{}
	w := p.StakesWindow

	for i := 0; i+w <= len(points); i++ {
		window := points[i : i+w]

		low := true
		for _, pt := range window {
			if pt.Stakes >= p.StakesFloor {
				low = false
				break
			}
		}

		if low {
			findings = append(findings, types.LowStakesFinding{
				Chapters: chapters(window),
				Suggestion: fmt.Sprintf(
					"Stakes are low in chapters %d-%d. Consider raising what's at risk.",
					window[0].Chapter, window[w-1].Chapter),
			})
			i += w - 1
		}
	}

	return findings
}

// pacingIssues flags act-1 points whose action intensity spikes above
// ActionSpike. Per point, no windowing.
func pacingIssues(points []types.StoryArcPoint, p Params) []types.PacingIssue {
	findings := []types.PacingIssue{}

	for _, pt := range points {
		if pt.Act != 1 {
			continue
		}
		if pt.ActionCrisis > p.ActionSpike {
			findings = append(findings, types.PacingIssue{
				Type:    types.PacingTooEarly,
				Chapter: pt.Chapter,
				Suggestion: fmt.Sprintf(
					"Action intensity spikes early in chapter %d. Consider building more gradually to preserve impact for later climaxes.",
					pt.Chapter),
			})
		}
	}

	return findings
}

// summary builds the templated report sentence. Its content depends
// only on which categories are non-empty.
func summary(a types.ArcAnalysis) string {
	if a.Clean() {
		return "Your story arc shows excellent structure with clear three-act progression and well-paced intensity throughout."
	}

	var b strings.Builder
	b.WriteString("Your story arc shows good structure overall. ")
	if len(a.FlatArcs) > 0 {
		b.WriteString("Some sections could use more emotional variation. ")
	}
	if len(a.LowStakes) > 0 {
		b.WriteString("Consider raising stakes in identified sections. ")
	}
	if len(a.PacingIssues) > 0 {
		b.WriteString("Watch pacing in early chapters. ")
	}
	return strings.TrimRight(b.String(), " ")
}

func chapters(points []types.StoryArcPoint) []int {
	out := make([]int, len(points))
	for i, pt := range points {
		out[i] = pt.Chapter
	}
	return out
}
