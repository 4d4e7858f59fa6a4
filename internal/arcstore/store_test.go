// Copyright AuthorForge, 2026. All rights reserved.

package arcstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authorforge/arc-engine/internal/seed"
	"github.com/authorforge/arc-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testGraph(projectID string) *types.StoryArcGraph {
	return seed.Generate(projectID, seed.Params{TotalChapters: 10})
}

func TestOpenCreatesSchema(t *testing.T) {
	store := testStore(t)

	for _, table := range []string{"graphs", "character_arcs"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s missing", table)
	}
}

func TestGetGraphMissing(t *testing.T) {
	store := testStore(t)

	_, err := store.GetGraph(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrGraphNotFound)
}

func TestSaveGraphRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	g := testGraph("p1")
	created := g.CreatedAt
	require.NoError(t, store.SaveGraph(ctx, g))
	assert.Equal(t, int64(1), g.Version)
	assert.Equal(t, created, g.CreatedAt)

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, int64(1), got.Version)
	assert.Len(t, got.Points, 10)
	assert.Len(t, got.PlotBeats, 6)
}

func TestSaveGraphBumpsUpdatedAt(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	g := testGraph("p1")
	require.NoError(t, store.SaveGraph(ctx, g))
	first := g.UpdatedAt

	require.NoError(t, store.SaveGraph(ctx, g))
	assert.Equal(t, int64(2), g.Version)
	assert.False(t, g.UpdatedAt.Before(first))
}

func TestSaveGraphVersionConflict(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	g := testGraph("p1")
	require.NoError(t, store.SaveGraph(ctx, g))

	// Two readers take the same snapshot.
	a, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	b, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)

	a.Points[0].Notes = "first writer"
	require.NoError(t, store.SaveGraph(ctx, a))

	// The second writer's snapshot is stale; its save must not win.
	b.Points[0].Notes = "second writer"
	err = store.SaveGraph(ctx, b)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := store.GetGraph(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "first writer", got.Points[0].Notes)
}

func TestSaveGraphDuplicateInsert(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	g := testGraph("p1")
	require.NoError(t, store.SaveGraph(ctx, g))

	// A fresh graph for the same project races the insert.
	dup := testGraph("p1")
	err := store.SaveGraph(ctx, dup)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestSaveGraphIDCollisionIsNotConflict(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	g := testGraph("p1")
	require.NoError(t, store.SaveGraph(ctx, g))

	// A graph for a different project reusing the same id trips the
	// primary key, not the per-project uniqueness; that is a plain save
	// error, not a version conflict.
	other := testGraph("p2")
	other.ID = g.ID
	err := store.SaveGraph(ctx, other)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVersionConflict)
}

func TestSaveGraphUpdateMissingRow(t *testing.T) {
	store := testStore(t)

	g := testGraph("p1")
	g.Version = 3
	err := store.SaveGraph(context.Background(), g)
	assert.ErrorIs(t, err, ErrGraphNotFound)
}

func TestClear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveGraph(ctx, testGraph("p1")))
	require.NoError(t, store.SaveGraph(ctx, testGraph("p2")))

	require.NoError(t, store.Clear(ctx, "p1"))
	_, err := store.GetGraph(ctx, "p1")
	assert.ErrorIs(t, err, ErrGraphNotFound)

	_, err = store.GetGraph(ctx, "p2")
	assert.NoError(t, err)

	// Clearing an absent project is not an error.
	assert.NoError(t, store.Clear(ctx, "p1"))
}

func TestClearAll(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveGraph(ctx, testGraph("p1")))
	require.NoError(t, store.SaveGraph(ctx, testGraph("p2")))
	require.NoError(t, store.ClearAll(ctx))

	for _, project := range []string{"p1", "p2"} {
		_, err := store.GetGraph(ctx, project)
		assert.ErrorIs(t, err, ErrGraphNotFound)
	}
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	store, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ctx := context.Background()
	_, err = store.GetGraph(ctx, "p1")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.SaveGraph(ctx, testGraph("p1")), ErrStoreClosed)
	assert.ErrorIs(t, store.Clear(ctx, "p1"), ErrStoreClosed)
	_, err = store.CharacterArcs(ctx, "p1")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestCharacterArcsRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	arcs := []types.CharacterArc{
		{ID: "char-1", ProjectID: "p1", Name: "Aria", Beats: []types.ArcBeat{
			{ID: "b1", ActNumber: 1, Title: "Want vs Need", ChapterLinks: []string{"Chapter 2"}},
		}},
		{ID: "char-2", ProjectID: "p1", Name: "Bren"},
		{ID: "char-3", ProjectID: "p2", Name: "Cole"},
	}
	for i := range arcs {
		require.NoError(t, store.PutCharacterArc(ctx, &arcs[i]))
	}

	got, err := store.CharacterArcs(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Insertion order is preserved; it drives integration ordering.
	assert.Equal(t, "char-1", got[0].ID)
	assert.Equal(t, "char-2", got[1].ID)
	require.Len(t, got[0].Beats, 1)
	assert.Equal(t, "Want vs Need", got[0].Beats[0].Title)
}

func TestPutCharacterArcUpsert(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	arc := types.CharacterArc{ID: "char-1", ProjectID: "p1", Name: "Aria"}
	require.NoError(t, store.PutCharacterArc(ctx, &arc))

	arc.Name = "Aria Renamed"
	require.NoError(t, store.PutCharacterArc(ctx, &arc))

	got, err := store.CharacterArcs(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Aria Renamed", got[0].Name)
}

func TestPutCharacterArcRequiresID(t *testing.T) {
	store := testStore(t)
	err := store.PutCharacterArc(context.Background(), &types.CharacterArc{Name: "Nameless"})
	assert.Error(t, err)
}
