package cli

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/skillpath/internal/agents"
	"github.com/asteroid-belt/skillpath/internal/config"
	"github.com/asteroid-belt/skillpath/internal/course"
	"github.com/asteroid-belt/skillpath/internal/embedding"
	"github.com/asteroid-belt/skillpath/internal/enrollment"
	"github.com/asteroid-belt/skillpath/internal/fingerprint"
	"github.com/asteroid-belt/skillpath/internal/identity"
	"github.com/asteroid-belt/skillpath/internal/llm"
	"github.com/asteroid-belt/skillpath/internal/roadmap"
	"github.com/asteroid-belt/skillpath/internal/store"
)

// app bundles everything a command needs. Commands that only read state
// pass needsLLM=false and work without any API key configured.
type app struct {
	cfg         *config.Config
	db          *store.DB
	service     *course.Service
	enrollments *enrollment.Store
	userID      string
}

// newApp wires the full service stack for one command invocation.
func newApp(needsLLM bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	db, err := store.New(store.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	roadmaps := roadmap.NewStore(db)
	enrollments := enrollment.NewStore(db, roadmaps)

	// Semantic dedup is optional: without an embedding key the resolver
	// degrades to exact-parameter hashing
	var embedder embedding.Provider
	var index *fingerprint.Index
	if cfg.Embedding.Enabled && cfg.Embedding.APIKey != "" {
		embedder = embedding.NewOpenAI(cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.RequestsPerSecond)
		index, err = fingerprint.New(paths.Vectors)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open fingerprint index: %w", err)
		}
	}
	resolver := identity.NewResolver(embedder, index, cfg.Identity.SimilarityThreshold)

	var planner course.RoadmapPlanner
	var generator course.DayGenerator
	if needsLLM {
		provider, err := llm.NewProvider(cfg.LLM)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		planner = agents.NewPlanner(provider)
		generator = agents.NewContentGenerator(provider)
	}

	return &app{
		cfg:         cfg,
		db:          db,
		service:     course.NewService(resolver, roadmaps, enrollments, planner, generator, telemetryClient),
		enrollments: enrollments,
		userID:      db.GetOrCreateUserID(),
	}, nil
}

func (a *app) close() {
	_ = a.db.Close()
}

// resolveCourseKey picks the course to operate on: an explicit flag value,
// or the user's only enrollment.
func (a *app) resolveCourseKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	keys, err := a.service.ListCourses(context.Background(), a.userID)
	if err != nil {
		return "", err
	}
	switch len(keys) {
	case 0:
		return "", fmt.Errorf("no courses yet: run 'skillpath onboard' first")
	case 1:
		return keys[0], nil
	default:
		return "", fmt.Errorf("multiple courses enrolled, pick one with --course (see 'skillpath courses')")
	}
}
