// Copyright AuthorForge, 2026. All rights reserved.

package types

import "time"

// ActNumber is a three-act structural phase.
type ActNumber int

// ArcBeat is a character-owned narrative milestone. Beats link to
// chapters loosely: ChapterLinks holds human-readable references
// ("Chapter 5", "Ch 12", "5") rather than chapter numbers. The beat
// integrator turns these into ArcBeatIDs on specific graph points.
type ArcBeat struct {
	ID string `json:"id" yaml:"id"`

	// ActNumber is the act this beat belongs to (1, 2, or 3).
	ActNumber ActNumber `json:"actNumber" yaml:"actNumber"`

	// Title names the beat (e.g. "Want vs Need", "Midpoint Clarity").
	Title string `json:"title" yaml:"title"`

	// Description details what happens in this beat.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ChapterLinks holds free-text chapter references.
	ChapterLinks []string `json:"chapterLinks" yaml:"chapterLinks"`

	// AISuggestions is optional assistant-generated text for this beat.
	AISuggestions string `json:"aiSuggestions,omitempty" yaml:"aiSuggestions,omitempty"`
}

// CharacterArc is the subset of the character development record the
// engine reads. Character arcs are owned by their own store; the graph
// references them only by id.
type CharacterArc struct {
	ID        string `json:"id" yaml:"id"`
	ProjectID string `json:"projectId,omitempty" yaml:"projectId,omitempty"`

	// Name is the character name.
	Name string `json:"name" yaml:"name"`

	// Role is the character's story role (Protagonist, Antagonist, ...).
	Role string `json:"role,omitempty" yaml:"role,omitempty"`

	// Beats are the timeline beats across all acts, in character order.
	Beats []ArcBeat `json:"beats" yaml:"beats"`

	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}
