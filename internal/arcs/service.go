// Copyright AuthorForge, 2026. All rights reserved.

// Package arcs exposes the story arc graph operations consumed by the
// surrounding application: seed-if-absent reads, point and plot beat
// mutations, character beat integration, and diagnostic analysis.
// Every mutation is a fetch-mutate-save cycle over the whole stored
// document; saves are version-checked and retried on conflict, so two
// in-flight mutations against the same project cannot silently drop
// each other's change.
package arcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/authorforge/arc-engine/internal/analyze"
	"github.com/authorforge/arc-engine/internal/arcstore"
	"github.com/authorforge/arc-engine/internal/integrate"
	"github.com/authorforge/arc-engine/internal/seed"
	"github.com/authorforge/arc-engine/pkg/types"
)

var (
	// ErrPointNotFound is returned when no point carries the requested
	// chapter.
	ErrPointNotFound = errors.New("point not found")

	// ErrPlotBeatNotFound is returned when no plot beat carries the
	// requested id.
	ErrPlotBeatNotFound = errors.New("plot beat not found")
)

const defaultSaveRetries = 3

// Service wires the store, the seed generator, and the diagnostic
// engine behind the public graph operations.
type Service struct {
	store    *arcstore.Store
	seed     seed.Params
	analysis analyze.Params
	retries  int
	log      *log.Logger
}

// New builds a Service. A nil logger discards log output.
func New(store *arcstore.Store, cfg types.EngineConfig, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	retries := cfg.Store.SaveRetries
	if retries <= 0 {
		retries = defaultSaveRetries
	}
	return &Service{
		store:    store,
		seed:     seed.FromConfig(cfg.Seed),
		analysis: analyze.FromConfig(cfg.Analysis),
		retries:  retries,
		log:      logger,
	}
}

// GetStoryArcGraph returns the project's graph, seeding and saving one
// when none exists.
func (s *Service) GetStoryArcGraph(ctx context.Context, projectID string) (*types.StoryArcGraph, error) {
	graph, err := s.store.GetGraph(ctx, projectID)
	if err == nil {
		return graph, nil
	}
	if !errors.Is(err, arcstore.ErrGraphNotFound) {
		return nil, err
	}

	graph = seed.Generate(projectID, s.seed)
	s.log.Info("seeding story arc graph",
		"project", projectID, "chapters", len(graph.Points))

	if err := s.store.SaveGraph(ctx, graph); err != nil {
		// A concurrent caller may have seeded first; their graph wins.
		if errors.Is(err, arcstore.ErrVersionConflict) {
			return s.store.GetGraph(ctx, projectID)
		}
		return nil, err
	}
	return graph, nil
}

// SaveStoryArcGraph writes the whole graph document. The store stamps
// UpdatedAt and advances the version counter.
func (s *Service) SaveStoryArcGraph(ctx context.Context, graph *types.StoryArcGraph) error {
	return s.store.SaveGraph(ctx, graph)
}

// mutate runs one fetch-mutate-save cycle, retrying the whole cycle
// when the save loses the version check to a concurrent writer. The
// mutation function sees a freshly fetched graph on every attempt.
func (s *Service) mutate(ctx context.Context, projectID string, fn func(*types.StoryArcGraph) error) error {
	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		graph, err := s.store.GetGraph(ctx, projectID)
		if err != nil {
			return err
		}
		if err := fn(graph); err != nil {
			return err
		}
		err = s.store.SaveGraph(ctx, graph)
		if err == nil {
			return nil
		}
		if !errors.Is(err, arcstore.ErrVersionConflict) {
			return err
		}
		lastErr = err
		s.log.Debug("graph save conflict, retrying",
			"project", projectID, "attempt", attempt+1)
	}
	return fmt.Errorf("saving graph for project %s: %w", projectID, lastErr)
}

// UpdateArcPoint applies a typed patch to the point with the given
// chapter. ErrPointNotFound when the chapter has no point; nothing is
// written on failure.
func (s *Service) UpdateArcPoint(ctx context.Context, projectID string, chapter int, patch PointPatch) error {
	return s.mutate(ctx, projectID, func(g *types.StoryArcGraph) error {
		pt := g.Point(chapter)
		if pt == nil {
			return fmt.Errorf("chapter %d: %w", chapter, ErrPointNotFound)
		}
		patch.apply(pt)
		return nil
	})
}

// AddPlotBeat appends a plot beat to the project's graph. The beat type
// must be one of the structural enum values, same as on update. An
// empty beat id gets a generated one.
func (s *Service) AddPlotBeat(ctx context.Context, projectID string, beat types.PlotBeat) error {
	if err := validatePlotBeatType(beat.Type); err != nil {
		return err
	}
	if beat.ID == "" {
		beat.ID = uuid.NewString()
	}
	return s.mutate(ctx, projectID, func(g *types.StoryArcGraph) error {
		if g.Beat(beat.ID) != nil {
			return fmt.Errorf("plot beat %s already exists", beat.ID)
		}
		g.PlotBeats = append(g.PlotBeats, beat)
		return nil
	})
}

// UpdatePlotBeat applies a typed patch to the plot beat with the given
// id.
func (s *Service) UpdatePlotBeat(ctx context.Context, projectID, beatID string, patch BeatPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	return s.mutate(ctx, projectID, func(g *types.StoryArcGraph) error {
		beat := g.Beat(beatID)
		if beat == nil {
			return fmt.Errorf("beat %s: %w", beatID, ErrPlotBeatNotFound)
		}
		patch.apply(beat)
		return nil
	})
}

// DeletePlotBeat removes the plot beat with the given id.
func (s *Service) DeletePlotBeat(ctx context.Context, projectID, beatID string) error {
	return s.mutate(ctx, projectID, func(g *types.StoryArcGraph) error {
		for i := range g.PlotBeats {
			if g.PlotBeats[i].ID == beatID {
				g.PlotBeats = append(g.PlotBeats[:i], g.PlotBeats[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("beat %s: %w", beatID, ErrPlotBeatNotFound)
	})
}

// IntegrateCharacterBeats folds the given character arcs into the
// project's graph points. The graph must already exist; integration
// never seeds. Chapter links that fail to parse are logged and counted,
// not silently dropped.
func (s *Service) IntegrateCharacterBeats(ctx context.Context, projectID string, arcs []types.CharacterArc) error {
	return s.mutate(ctx, projectID, func(g *types.StoryArcGraph) error {
		skipped := integrate.Integrate(g, arcs)
		for _, link := range skipped {
			s.log.Warn("skipping unparsable chapter link",
				"project", projectID,
				"character", link.CharacterID,
				"beat", link.BeatID,
				"link", link.Link)
		}
		return nil
	})
}

// IntegrateStoredCharacterBeats integrates the character arcs recorded
// in the store for the project.
func (s *Service) IntegrateStoredCharacterBeats(ctx context.Context, projectID string) error {
	arcs, err := s.store.CharacterArcs(ctx, projectID)
	if err != nil {
		return err
	}
	return s.IntegrateCharacterBeats(ctx, projectID, arcs)
}

// AnalyzeArcGraph produces the diagnostic report. A non-nil graph is
// analyzed as supplied; otherwise the stored graph is fetched.
func (s *Service) AnalyzeArcGraph(ctx context.Context, projectID string, graph *types.StoryArcGraph) (types.ArcAnalysis, error) {
	if graph == nil {
		var err error
		graph, err = s.store.GetGraph(ctx, projectID)
		if err != nil {
			return types.ArcAnalysis{}, err
		}
	}
	return analyze.Analyze(graph.Points, s.analysis), nil
}

// ClearProject removes the project's graph from the store.
func (s *Service) ClearProject(ctx context.Context, projectID string) error {
	return s.store.Clear(ctx, projectID)
}
