// Copyright AuthorForge, 2026. All rights reserved.

// Package seed synthesizes an initial story arc graph for a project:
// three-act intensity curves plus the canonical plot beats. The output
// is deterministic and serves as the healthy baseline the diagnostic
// engine is calibrated against.
package seed

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/authorforge/arc-engine/pkg/types"
)

// Canonical act boundary fractions: act 1 ends near 23% of the book,
// act 2 near 73%.
const (
	act1Frac = 7.0 / 30.0
	act2Frac = 22.0 / 30.0
)

const defaultChapters = 30

// Params controls graph generation. The zero value selects the
// canonical 30-chapter shape.
type Params struct {
	// TotalChapters is the number of points to generate (default 30).
	TotalChapters int

	// Act1End and Act2End are the last chapters of acts 1 and 2.
	// Zero derives them from TotalChapters.
	Act1End int
	Act2End int

	// Now supplies timestamps; nil uses time.Now.
	Now func() time.Time

	// NewID supplies the graph id; nil uses a random UUID.
	NewID func() string
}

func (p Params) withDefaults() Params {
	if p.TotalChapters <= 0 {
		p.TotalChapters = defaultChapters
	}
	if p.Act1End <= 0 {
		p.Act1End = roundChapter(act1Frac * float64(p.TotalChapters))
	}
	if p.Act2End <= p.Act1End {
		p.Act2End = roundChapter(act2Frac * float64(p.TotalChapters))
	}
	if p.Act2End >= p.TotalChapters {
		p.Act2End = p.TotalChapters - 1
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.NewID == nil {
		p.NewID = uuid.NewString
	}
	return p
}

func roundChapter(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		n = 1
	}
	return n
}

// FromConfig builds Params from a seed configuration.
func FromConfig(cfg types.SeedConfig) Params {
	return Params{
		TotalChapters: cfg.TotalChapters,
		Act1End:       cfg.Act1End,
		Act2End:       cfg.Act2End,
	}
}

// Generate synthesizes a story arc graph for the project. Pure aside
// from timestamps and id generation, both injectable through Params;
// given fixed Now and NewID the output is fully deterministic.
func Generate(projectID string, params Params) *types.StoryArcGraph {
	p := params.withDefaults()
	n := p.TotalChapters

	points := make([]types.StoryArcPoint, 0, n)
	for i := 1; i <= n; i++ {
		points = append(points, point(i, p))
	}

	now := p.Now().UTC()
	return &types.StoryArcGraph{
		ID:        p.NewID(),
		ProjectID: projectID,
		Points:    points,
		PlotBeats: plotBeats(p),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// point computes one chapter's measurements from the piecewise-linear
// act curves. Act 2 rises to a mid-act peak then falls toward the dark
// night; act 3 rises to the climax then resolves.
func point(chapter int, p Params) types.StoryArcPoint {
	act := 3
	switch {
	case chapter <= p.Act1End:
		act = 1
	case chapter <= p.Act2End:
		act = 2
	}

	var emotional, stakes, worldPressure, internalConflict float64
	var themeResonance, spiritualIntensity, actionCrisis float64

	switch act {
	case 1:
		// Setup: gradual rise from the opening baseline.
		i := float64(chapter)
		emotional = 30 + i*5
		stakes = 35 + i*3
		worldPressure = 15 + i*2
		internalConflict = 25 + i*4
		themeResonance = 20 + i*2
		spiritualIntensity = 15 + i*3
		actionCrisis = 10 + i*2

	case 2:
		inAct := chapter - p.Act1End
		rise := (p.Act2End - p.Act1End + 1) / 2
		if inAct <= rise {
			// Rising to the midpoint peak.
			c := float64(inAct)
			emotional = 60 + c*4
			stakes = 50 + c*5
			worldPressure = 40 + c*6
			internalConflict = 55 + c*4
			themeResonance = 45 + c*5
			spiritualIntensity = 50 + c*4
			actionCrisis = 35 + c*5
		} else {
			// Falling to the dark night.
			f := float64(inAct - rise)
			emotional = 92 - f*8
			stakes = 90 - f*7
			worldPressure = 88 - f*6
			internalConflict = 87 - f*8
			themeResonance = 85 - f*5
			spiritualIntensity = 86 - f*9
			actionCrisis = 75 - f*7
		}

	default:
		inAct := chapter - p.Act2End
		rise := (p.TotalChapters - p.Act2End) / 2
		if inAct <= rise {
			// Rising to the climax.
			c := float64(inAct)
			emotional = 40 + c*15
			stakes = 35 + c*16
			worldPressure = 30 + c*17
			internalConflict = 32 + c*17
			themeResonance = 40 + c*15
			spiritualIntensity = 28 + c*18
			actionCrisis = 25 + c*19
		} else {
			// Falling action and resolution.
			f := float64(inAct - rise)
			emotional = 100 - f*15
			stakes = 99 - f*20
			worldPressure = 98 - f*20
			internalConflict = 100 - f*18
			themeResonance = 100 - f*12
			spiritualIntensity = 100 - f*15
			actionCrisis = 100 - f*22
		}
	}

	pov := "char-1"
	if chapter%3 == 0 {
		pov = "char-2"
	}

	return types.StoryArcPoint{
		Chapter:            chapter,
		Act:                act,
		WordCountPercent:   float64(chapter) / float64(p.TotalChapters) * 100,
		Emotional:          types.ClampIntensity(emotional),
		Stakes:             types.ClampIntensity(stakes),
		WorldPressure:      types.ClampIntensity(worldPressure),
		InternalConflict:   types.ClampIntensity(internalConflict),
		ThemeResonance:     types.ClampIntensity(themeResonance),
		SpiritualIntensity: types.ClampIntensity(spiritualIntensity),
		ActionCrisis:       types.ClampIntensity(actionCrisis),
		POVCharacterID:     pov,
		ChapterTitle:       fmt.Sprintf("Chapter %d", chapter),
		ArcBeatIDs:         []string{},
	}
}

// plotBeats emits the canonical structural markers at approximate
// word-count percentages, each anchored to a chapter derived from the
// act boundaries.
func plotBeats(p Params) []types.PlotBeat {
	n := p.TotalChapters
	climax := p.Act2End + (n-p.Act2End)/2
	resolution := n - 1
	if resolution < climax {
		resolution = n
	}

	return []types.PlotBeat{
		{
			ID:               "beat-1",
			Type:             types.BeatIncitingIncident,
			Chapter:          roundChapter(0.10 * float64(n)),
			WordCountPercent: 10,
			Title:            "Inciting Incident",
			Description:      "The event that sets the story in motion",
			Icon:             "zap",
		},
		{
			ID:               "beat-2",
			Type:             types.BeatFirstPlotPoint,
			Chapter:          p.Act1End,
			WordCountPercent: 25,
			Title:            "First Plot Point",
			Description:      "End of Act I - Point of no return",
			Icon:             "arrow-right",
		},
		{
			ID:               "beat-3",
			Type:             types.BeatMidpoint,
			Chapter:          roundChapter(0.50 * float64(n)),
			WordCountPercent: 50,
			Title:            "Midpoint Shift",
			Description:      "Major revelation or reversal",
			Icon:             "rotate-cw",
		},
		{
			ID:               "beat-4",
			Type:             types.BeatDarkNight,
			Chapter:          p.Act2End - 2,
			WordCountPercent: 75,
			Title:            "Dark Night of the Soul",
			Description:      "All seems lost",
			Icon:             "moon",
		},
		{
			ID:               "beat-5",
			Type:             types.BeatClimax,
			Chapter:          climax,
			WordCountPercent: 90,
			Title:            "Final Confrontation",
			Description:      "The ultimate showdown",
			Icon:             "flame",
		},
		{
			ID:               "beat-6",
			Type:             types.BeatResolution,
			Chapter:          resolution,
			WordCountPercent: 97,
			Title:            "Resolution",
			Description:      "Tying up loose ends",
			Icon:             "check-circle",
		},
	}
}
