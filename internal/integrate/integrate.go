// Copyright AuthorForge, 2026. All rights reserved.

// Package integrate folds character-level arc beats into the
// chapter-indexed points of a story arc graph. Beats reference chapters
// through free text ("Chapter 5", "Ch 12", "5"); the integrator parses
// those references and rebuilds each point's beat id list from scratch,
// which makes the pass idempotent and clears stale references.
package integrate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/authorforge/arc-engine/pkg/types"
)

// digitRun matches the first run of digits in a chapter reference.
var digitRun = regexp.MustCompile(`\d+`)

// ParseChapterRef extracts the chapter number from a free-text chapter
// reference. It takes the first run of digits found anywhere in the
// string; a reference with no digits is a parse failure.
func ParseChapterRef(ref string) (int, error) {
	m := digitRun.FindString(ref)
	if m == "" {
		return 0, fmt.Errorf("no chapter number in %q", ref)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("parsing chapter reference %q: %w", ref, err)
	}
	return n, nil
}

// SkippedLink records a chapter reference that could not be parsed
// during integration. Skipped links are reported to the caller rather
// than silently dropped.
type SkippedLink struct {
	CharacterID string
	BeatID      string
	Link        string
}

// Integrate rebuilds ArcBeatIDs on every point of the graph from the
// given character arcs. Ordering within a chapter follows character
// order, then beat order, then link order. Each point's list is fully
// replaced, so re-running with the same arcs converges and beats
// removed from a character disappear from the graph on the next pass.
//
// The returned slice lists the chapter links that failed to parse.
func Integrate(graph *types.StoryArcGraph, arcs []types.CharacterArc) []SkippedLink {
	byChapter := make(map[int][]string)
	var skipped []SkippedLink

	for _, arc := range arcs {
		for _, beat := range arc.Beats {
			for _, link := range beat.ChapterLinks {
				chapter, err := ParseChapterRef(link)
				if err != nil {
					skipped = append(skipped, SkippedLink{
						CharacterID: arc.ID,
						BeatID:      beat.ID,
						Link:        link,
					})
					continue
				}
				byChapter[chapter] = append(byChapter[chapter], beat.ID)
			}
		}
	}

	for i := range graph.Points {
		ids := byChapter[graph.Points[i].Chapter]
		if ids == nil {
			ids = []string{}
		}
		graph.Points[i].ArcBeatIDs = ids
	}

	return skipped
}
