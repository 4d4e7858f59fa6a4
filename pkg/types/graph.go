// Copyright AuthorForge, 2026. All rights reserved.

// Package types defines the shared data model for the arc-engine:
// story arc graphs, character arcs, analysis reports, and stage
// configuration.
package types

import "time"

// IntensityLayer names one of the seven per-chapter intensity measurements.
type IntensityLayer string

const (
	LayerEmotional          IntensityLayer = "emotional"
	LayerStakes             IntensityLayer = "stakes"
	LayerWorldPressure      IntensityLayer = "worldPressure"
	LayerInternalConflict   IntensityLayer = "internalConflict"
	LayerThemeResonance     IntensityLayer = "themeResonance"
	LayerSpiritualIntensity IntensityLayer = "spiritualIntensity"
	LayerActionCrisis       IntensityLayer = "actionCrisis"
)

// Layers returns all intensity layers in canonical order.
func Layers() []IntensityLayer {
	return []IntensityLayer{
		LayerEmotional,
		LayerStakes,
		LayerWorldPressure,
		LayerInternalConflict,
		LayerThemeResonance,
		LayerSpiritualIntensity,
		LayerActionCrisis,
	}
}

// StoryArcPoint holds one chapter's measurements. Chapter numbers are
// positive, unique within a graph, and define point ordering.
type StoryArcPoint struct {
	// Chapter is the ordered unit this point measures.
	Chapter int `json:"chapter" yaml:"chapter"`

	// Act is the structural phase (1=setup, 2=struggle, 3=resolution),
	// derived from chapter position.
	Act int `json:"act" yaml:"act"`

	// WordCountPercent is the cumulative word-count position (0-100),
	// non-decreasing with chapter across a well-formed graph.
	WordCountPercent float64 `json:"wordCountPercent" yaml:"wordCountPercent"`

	// Intensity layers, each clamped to [0,100].
	Emotional          float64 `json:"emotional" yaml:"emotional"`
	Stakes             float64 `json:"stakes" yaml:"stakes"`
	WorldPressure      float64 `json:"worldPressure" yaml:"worldPressure"`
	InternalConflict   float64 `json:"internalConflict" yaml:"internalConflict"`
	ThemeResonance     float64 `json:"themeResonance" yaml:"themeResonance"`
	SpiritualIntensity float64 `json:"spiritualIntensity" yaml:"spiritualIntensity"`
	ActionCrisis       float64 `json:"actionCrisis" yaml:"actionCrisis"`

	// POVCharacterID references a CharacterArc id. Not validated against
	// existence; the character store is a separate collaborator.
	POVCharacterID string `json:"povCharacterId,omitempty" yaml:"povCharacterId,omitempty"`

	// ChapterTitle is a display title for the chapter.
	ChapterTitle string `json:"chapterTitle,omitempty" yaml:"chapterTitle,omitempty"`

	// ArcBeatIDs lists character arc beat ids linked to this chapter.
	// Rebuilt in full on every integration pass, never merged.
	ArcBeatIDs []string `json:"arcBeatIds" yaml:"arcBeatIds"`

	// Notes is free text, user-editable.
	Notes string `json:"notes" yaml:"notes"`
}

// Layer returns the named intensity layer value. Unknown layers read as 0.
func (p StoryArcPoint) Layer(layer IntensityLayer) float64 {
	switch layer {
	case LayerEmotional:
		return p.Emotional
	case LayerStakes:
		return p.Stakes
	case LayerWorldPressure:
		return p.WorldPressure
	case LayerInternalConflict:
		return p.InternalConflict
	case LayerThemeResonance:
		return p.ThemeResonance
	case LayerSpiritualIntensity:
		return p.SpiritualIntensity
	case LayerActionCrisis:
		return p.ActionCrisis
	}
	return 0
}

// PlotBeatType identifies a named structural marker.
type PlotBeatType string

const (
	BeatIncitingIncident PlotBeatType = "inciting-incident"
	BeatFirstPlotPoint   PlotBeatType = "first-plot-point"
	BeatMidpoint         PlotBeatType = "midpoint"
	BeatDarkNight        PlotBeatType = "dark-night"
	BeatClimax           PlotBeatType = "climax"
	BeatResolution       PlotBeatType = "resolution"
)

// PlotBeat is a structural marker attached to a chapter and word-count
// position. Plot beats are independent of StoryArcPoint.ArcBeatIDs.
type PlotBeat struct {
	ID string `json:"id" yaml:"id"`

	// Type names the structural role (inciting-incident, midpoint, ...).
	Type PlotBeatType `json:"type" yaml:"type"`

	Chapter          int     `json:"chapter" yaml:"chapter"`
	WordCountPercent float64 `json:"wordCountPercent" yaml:"wordCountPercent"`

	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`

	// Icon is a display icon name consumed by the rendering layer.
	Icon string `json:"icon" yaml:"icon"`
}

// StoryArcGraph is the per-project aggregate of all chapter points and
// plot beats. The graph owns its points and plot beats; character arcs
// are owned elsewhere and only referenced by id.
type StoryArcGraph struct {
	ID        string `json:"id" yaml:"id"`
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Points are ordered by chapter.
	Points []StoryArcPoint `json:"points" yaml:"points"`

	// PlotBeats carry no ordering guarantee.
	PlotBeats []PlotBeat `json:"plotBeats" yaml:"plotBeats"`

	// Version is the optimistic-concurrency counter, compared and
	// incremented by the store on save.
	Version int64 `json:"version" yaml:"version"`

	// CreatedAt is immutable once the graph exists. UpdatedAt is
	// refreshed on every save.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Point returns the point for the given chapter, or nil.
func (g *StoryArcGraph) Point(chapter int) *StoryArcPoint {
	for i := range g.Points {
		if g.Points[i].Chapter == chapter {
			return &g.Points[i]
		}
	}
	return nil
}

// Beat returns the plot beat with the given id, or nil.
func (g *StoryArcGraph) Beat(id string) *PlotBeat {
	for i := range g.PlotBeats {
		if g.PlotBeats[i].ID == id {
			return &g.PlotBeats[i]
		}
	}
	return nil
}

// ClampIntensity bounds an intensity value to [0,100]. The seed formulas
// are piecewise linear and can overshoot; every computed value passes
// through this clamp before being stored.
func ClampIntensity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
