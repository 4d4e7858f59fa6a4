// Copyright AuthorForge, 2026. All rights reserved.

package arcs

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authorforge/arc-engine/internal/arcstore"
	"github.com/authorforge/arc-engine/pkg/types"
)

func testService(t *testing.T) (*Service, *arcstore.Store) {
	t.Helper()
	store, err := arcstore.Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := types.EngineConfig{
		Seed: types.SeedConfig{TotalChapters: 10},
	}
	return New(store, cfg, nil), store
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestGetStoryArcGraphSeedsIfAbsent(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	g, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, g.Points, 10)
	assert.NotEmpty(t, g.PlotBeats)

	// The seeded graph was saved, not just returned.
	stored, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, stored.ID)

	// A second read returns the same graph, no re-seed.
	again, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, again.ID)
}

func TestUpdateArcPoint(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	g, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)
	before := *g.Point(3)

	err = svc.UpdateArcPoint(ctx, "p1", 3, PointPatch{
		Emotional: floatPtr(88),
		Notes:     strPtr("turning point"),
	})
	require.NoError(t, err)

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	pt := got.Point(3)
	require.NotNil(t, pt)
	assert.Equal(t, 88.0, pt.Emotional)
	assert.Equal(t, "turning point", pt.Notes)

	// Unpatched fields are untouched.
	assert.Equal(t, before.Stakes, pt.Stakes)
	assert.Equal(t, before.Chapter, pt.Chapter)
	assert.Equal(t, before.Act, pt.Act)
}

func TestUpdateArcPointClampsIntensity(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateArcPoint(ctx, "p1", 1, PointPatch{
		Stakes:       floatPtr(250),
		ActionCrisis: floatPtr(-40),
	}))

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Point(1).Stakes)
	assert.Equal(t, 0.0, got.Point(1).ActionCrisis)
}

func TestUpdateArcPointNotFoundLeavesGraphUntouched(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	before, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	beforeJSON, err := json.Marshal(before)
	require.NoError(t, err)

	err = svc.UpdateArcPoint(ctx, "p1", 99, PointPatch{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrPointNotFound)

	after, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	afterJSON, err := json.Marshal(after)
	require.NoError(t, err)
	assert.Equal(t, string(beforeJSON), string(afterJSON),
		"stored graph must be byte-for-byte unchanged after a failed update")
}

func TestUpdateArcPointMissingGraph(t *testing.T) {
	svc, _ := testService(t)
	err := svc.UpdateArcPoint(context.Background(), "ghost", 1, PointPatch{Notes: strPtr("x")})
	assert.ErrorIs(t, err, arcstore.ErrGraphNotFound)
}

func TestPlotBeatLifecycle(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	beat := types.PlotBeat{
		Type:    types.BeatMidpoint,
		Chapter: 5,
		Title:   "Reversal",
	}
	require.NoError(t, svc.AddPlotBeat(ctx, "p1", beat))

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	var added *types.PlotBeat
	for i := range got.PlotBeats {
		if got.PlotBeats[i].Title == "Reversal" {
			added = &got.PlotBeats[i]
		}
	}
	require.NotNil(t, added)
	assert.NotEmpty(t, added.ID, "beat without id gets a generated one")

	// Update it.
	require.NoError(t, svc.UpdatePlotBeat(ctx, "p1", added.ID, BeatPatch{
		Chapter: intPtr(6),
		Title:   strPtr("Reversal and Raise"),
	}))

	got, err = store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	updated := got.Beat(added.ID)
	require.NotNil(t, updated)
	assert.Equal(t, 6, updated.Chapter)
	assert.Equal(t, "Reversal and Raise", updated.Title)
	assert.Equal(t, types.BeatMidpoint, updated.Type)

	// Delete it.
	require.NoError(t, svc.DeletePlotBeat(ctx, "p1", added.ID))
	got, err = store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got.Beat(added.ID))

	// Deleting again is a not-found failure.
	err = svc.DeletePlotBeat(ctx, "p1", added.ID)
	assert.ErrorIs(t, err, ErrPlotBeatNotFound)
}

func intPtr(v int) *int { return &v }

func TestUpdatePlotBeatNotFound(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	err = svc.UpdatePlotBeat(ctx, "p1", "ghost-beat", BeatPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrPlotBeatNotFound)
}

func TestAddPlotBeatRejectsUnknownType(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)
	before, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)

	err = svc.AddPlotBeat(ctx, "p1", types.PlotBeat{
		Type:    types.PlotBeatType("cliffhanger"),
		Chapter: 5,
		Title:   "Edge",
	})
	require.Error(t, err)

	// Nothing was stored; the same value would also fail on update.
	after, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, after.PlotBeats, len(before.PlotBeats))
}

func TestUpdatePlotBeatRejectsUnknownType(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	bad := types.PlotBeatType("cliffhanger")
	err = svc.UpdatePlotBeat(ctx, "p1", "beat-1", BeatPatch{Type: &bad})
	assert.Error(t, err)
}

func TestIntegrateCharacterBeats(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	arcs := []types.CharacterArc{
		{ID: "char-1", Beats: []types.ArcBeat{
			{ID: "b1", ChapterLinks: []string{"Chapter 2", "not a chapter"}},
		}},
	}
	require.NoError(t, svc.IntegrateCharacterBeats(ctx, "p1", arcs))

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, got.Point(2).ArcBeatIDs)
}

func TestIntegrateRequiresExistingGraph(t *testing.T) {
	svc, _ := testService(t)

	err := svc.IntegrateCharacterBeats(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, arcstore.ErrGraphNotFound)
}

func TestIntegrateStoredCharacterBeats(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	arc := types.CharacterArc{
		ID:        "char-1",
		ProjectID: "p1",
		Name:      "Aria",
		Beats: []types.ArcBeat{
			{ID: "b1", ChapterLinks: []string{"Ch 4"}},
		},
	}
	require.NoError(t, store.PutCharacterArc(ctx, &arc))

	require.NoError(t, svc.IntegrateStoredCharacterBeats(ctx, "p1"))

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, got.Point(4).ArcBeatIDs)
}

func TestAnalyzeArcGraphStored(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	report, err := svc.AnalyzeArcGraph(ctx, "p1", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.OverallScore, 70)
	assert.LessOrEqual(t, report.OverallScore, 100)
	assert.NotEmpty(t, report.Summary)
}

func TestAnalyzeArcGraphSupplied(t *testing.T) {
	svc, _ := testService(t)

	// A supplied graph is analyzed without touching the store.
	g := &types.StoryArcGraph{
		Points: []types.StoryArcPoint{
			{Chapter: 1, Act: 1, Emotional: 30, Stakes: 60, ActionCrisis: 80},
		},
	}
	report, err := svc.AnalyzeArcGraph(context.Background(), "ghost", g)
	require.NoError(t, err)
	require.Len(t, report.PacingIssues, 1)
	assert.Equal(t, types.PacingTooEarly, report.PacingIssues[0].Type)
}

func TestAnalyzeArcGraphMissing(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.AnalyzeArcGraph(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, arcstore.ErrGraphNotFound)
}

func TestSaveStoryArcGraphStampsVersion(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	g, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)
	v := g.Version

	require.NoError(t, svc.SaveStoryArcGraph(ctx, g))
	assert.Equal(t, v+1, g.Version)
}

func TestMutateRetriesOnConflict(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	// A competing writer lands between the first cycle's fetch and
	// save, so the first save loses the version check. The cycle must
	// rerun against a fresh snapshot that carries the competitor's
	// change, and both writes must survive.
	attempts := 0
	err = svc.mutate(ctx, "p1", func(g *types.StoryArcGraph) error {
		attempts++
		if attempts == 1 {
			other, err := store.GetGraph(ctx, "p1")
			if err != nil {
				return err
			}
			other.Point(1).Notes = "competitor"
			if err := store.SaveGraph(ctx, other); err != nil {
				return err
			}
		} else {
			require.Equal(t, "competitor", g.Point(1).Notes,
				"retry must see the competing writer's snapshot")
		}
		g.Point(2).Notes = "retried"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "competitor", got.Point(1).Notes)
	assert.Equal(t, "retried", got.Point(2).Notes)
}

func TestMutateGivesUpAfterRetries(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	_, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	// A competitor wins every cycle; the mutation must surface the
	// conflict once the attempts run out instead of spinning.
	attempts := 0
	err = svc.mutate(ctx, "p1", func(g *types.StoryArcGraph) error {
		attempts++
		other, err := store.GetGraph(ctx, "p1")
		if err != nil {
			return err
		}
		other.Point(1).Notes = fmt.Sprintf("competitor %d", attempts)
		return store.SaveGraph(ctx, other)
	})
	require.ErrorIs(t, err, arcstore.ErrVersionConflict)
	assert.Equal(t, defaultSaveRetries, attempts)

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("competitor %d", attempts), got.Point(1).Notes)
}

func TestSequentialMutationsBothLand(t *testing.T) {
	// Two sequential mutations through service instances sharing one
	// store; each cycle fetches a fresh snapshot, so neither conflicts
	// and both changes persist.
	store, err := arcstore.Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := types.EngineConfig{Seed: types.SeedConfig{TotalChapters: 10}}
	svc1 := New(store, cfg, nil)
	svc2 := New(store, cfg, nil)

	ctx := context.Background()
	_, err = svc1.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, svc1.UpdateArcPoint(ctx, "p1", 1, PointPatch{Notes: strPtr("one")}))
	require.NoError(t, svc2.UpdateArcPoint(ctx, "p1", 2, PointPatch{Notes: strPtr("two")}))

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Point(1).Notes)
	assert.Equal(t, "two", got.Point(2).Notes)
}

func TestPointPatchIsEmpty(t *testing.T) {
	assert.True(t, PointPatch{}.IsEmpty())
	assert.False(t, PointPatch{Notes: strPtr("")}.IsEmpty())
	assert.True(t, BeatPatch{}.IsEmpty())
	assert.False(t, BeatPatch{Chapter: intPtr(1)}.IsEmpty())
}

func TestSeededGraphAnalysisMatchesDirectAnalysis(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	g, err := svc.GetStoryArcGraph(ctx, "p1")
	require.NoError(t, err)

	fromStore, err := svc.AnalyzeArcGraph(ctx, "p1", nil)
	require.NoError(t, err)
	fromSupplied, err := svc.AnalyzeArcGraph(ctx, "p1", g)
	require.NoError(t, err)

	if diff := cmp.Diff(fromStore, fromSupplied); diff != "" {
		t.Errorf("stored and supplied analyses differ (-stored +supplied):\n%s", diff)
	}
}
