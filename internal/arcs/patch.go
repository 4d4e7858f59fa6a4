// Copyright AuthorForge, 2026. All rights reserved.

package arcs

import (
	"fmt"

	"github.com/authorforge/arc-engine/pkg/types"
)

// PointPatch is the set of point fields a caller may update. Nil fields
// are left untouched. Chapter, act, and arc beat ids are deliberately
// absent: chapter identity is the lookup key, act is derived from
// chapter position, and beat ids belong to the integrator.
type PointPatch struct {
	WordCountPercent *float64 `json:"wordCountPercent,omitempty" yaml:"wordCountPercent,omitempty"`

	Emotional          *float64 `json:"emotional,omitempty" yaml:"emotional,omitempty"`
	Stakes             *float64 `json:"stakes,omitempty" yaml:"stakes,omitempty"`
	WorldPressure      *float64 `json:"worldPressure,omitempty" yaml:"worldPressure,omitempty"`
	InternalConflict   *float64 `json:"internalConflict,omitempty" yaml:"internalConflict,omitempty"`
	ThemeResonance     *float64 `json:"themeResonance,omitempty" yaml:"themeResonance,omitempty"`
	SpiritualIntensity *float64 `json:"spiritualIntensity,omitempty" yaml:"spiritualIntensity,omitempty"`
	ActionCrisis       *float64 `json:"actionCrisis,omitempty" yaml:"actionCrisis,omitempty"`

	POVCharacterID *string `json:"povCharacterId,omitempty" yaml:"povCharacterId,omitempty"`
	ChapterTitle   *string `json:"chapterTitle,omitempty" yaml:"chapterTitle,omitempty"`
	Notes          *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IsEmpty reports whether the patch updates nothing.
func (p PointPatch) IsEmpty() bool {
	return p.WordCountPercent == nil &&
		p.Emotional == nil && p.Stakes == nil && p.WorldPressure == nil &&
		p.InternalConflict == nil && p.ThemeResonance == nil &&
		p.SpiritualIntensity == nil && p.ActionCrisis == nil &&
		p.POVCharacterID == nil && p.ChapterTitle == nil && p.Notes == nil
}

// apply merges the patch onto a point. Intensity values pass through
// the [0,100] clamp.
func (p PointPatch) apply(pt *types.StoryArcPoint) {
	if p.WordCountPercent != nil {
		pt.WordCountPercent = *p.WordCountPercent
	}
	if p.Emotional != nil {
		pt.Emotional = types.ClampIntensity(*p.Emotional)
	}
	if p.Stakes != nil {
		pt.Stakes = types.ClampIntensity(*p.Stakes)
	}
	if p.WorldPressure != nil {
		pt.WorldPressure = types.ClampIntensity(*p.WorldPressure)
	}
	if p.InternalConflict != nil {
		pt.InternalConflict = types.ClampIntensity(*p.InternalConflict)
	}
	if p.ThemeResonance != nil {
		pt.ThemeResonance = types.ClampIntensity(*p.ThemeResonance)
	}
	if p.SpiritualIntensity != nil {
		pt.SpiritualIntensity = types.ClampIntensity(*p.SpiritualIntensity)
	}
	if p.ActionCrisis != nil {
		pt.ActionCrisis = types.ClampIntensity(*p.ActionCrisis)
	}
	if p.POVCharacterID != nil {
		pt.POVCharacterID = *p.POVCharacterID
	}
	if p.ChapterTitle != nil {
		pt.ChapterTitle = *p.ChapterTitle
	}
	if p.Notes != nil {
		pt.Notes = *p.Notes
	}
}

// BeatPatch is the set of plot beat fields a caller may update. The
// beat id is the lookup key and not patchable.
type BeatPatch struct {
	Type             *types.PlotBeatType `json:"type,omitempty" yaml:"type,omitempty"`
	Chapter          *int                `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	WordCountPercent *float64            `json:"wordCountPercent,omitempty" yaml:"wordCountPercent,omitempty"`
	Title            *string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description      *string             `json:"description,omitempty" yaml:"description,omitempty"`
	Icon             *string             `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// IsEmpty reports whether the patch updates nothing.
func (p BeatPatch) IsEmpty() bool {
	return p.Type == nil && p.Chapter == nil && p.WordCountPercent == nil &&
		p.Title == nil && p.Description == nil && p.Icon == nil
}

// validatePlotBeatType rejects types outside the structural enum.
func validatePlotBeatType(t types.PlotBeatType) error {
	switch t {
	case types.BeatIncitingIncident, types.BeatFirstPlotPoint,
		types.BeatMidpoint, types.BeatDarkNight,
		types.BeatClimax, types.BeatResolution:
		return nil
	}
	return fmt.Errorf("unknown plot beat type %q", t)
}

// validate rejects values a well-formed beat cannot carry.
func (p BeatPatch) validate() error {
	if p.Type != nil {
		if err := validatePlotBeatType(*p.Type); err != nil {
			return err
		}
	}
	if p.Chapter != nil && *p.Chapter < 1 {
		return fmt.Errorf("plot beat chapter must be positive, got %d", *p.Chapter)
	}
	return nil
}

func (p BeatPatch) apply(b *types.PlotBeat) {
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Chapter != nil {
		b.Chapter = *p.Chapter
	}
	if p.WordCountPercent != nil {
		b.WordCountPercent = *p.WordCountPercent
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Icon != nil {
		b.Icon = *p.Icon
	}
}
