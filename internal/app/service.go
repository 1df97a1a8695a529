// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blocboard/blocboard/internal/adapters/facts"
	"github.com/blocboard/blocboard/internal/config"
	"github.com/blocboard/blocboard/internal/domain/standings"
	"github.com/blocboard/blocboard/internal/domain/types"
	"github.com/blocboard/blocboard/pkg/logger"
)

// Service wires the fact repository and the standings engine together and
// implements the API dependencies. The engine itself is a pure computation;
// the service only owns construction and teardown of the backend.
type Service struct {
	mu sync.RWMutex

	// Core components
	repo   facts.Repository
	engine *standings.Engine

	// Configuration
	factStore         string
	sqlitePath        string
	postgresDSN       string
	postgresMaxConns  int
	defaultPodiumSize int

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFactStore selects the fact repository backend by name.
func WithFactStore(backend string) Option {
	return func(s *Service) {
		if backend != "" {
			s.factStore = backend
		}
	}
}

// WithSQLitePath sets the database file for the sqlite backend.
func WithSQLitePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithPostgres sets connection parameters for the postgres backend.
func WithPostgres(dsn string, maxConns int) Option {
	return func(s *Service) {
		s.postgresDSN = dsn
		if maxConns > 0 {
			s.postgresMaxConns = maxConns
		}
	}
}

// WithDefaultPodiumSize sets the podium cap used when requests omit one.
func WithDefaultPodiumSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultPodiumSize = n
		}
	}
}

// WithRepository injects a pre-built fact repository, overriding the
// backend selection. Used by tests and embedding callers.
func WithRepository(repo facts.Repository) Option {
	return func(s *Service) {
		if repo != nil {
			s.repo = repo
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		factStore:         config.StoreMemory,
		sqlitePath:        "blocboard.db",
		postgresMaxConns:  16,
		defaultPodiumSize: standings.DefaultPodiumSize,
		logger:            nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start constructs the configured fact store and the engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting standings service...")

	if s.repo == nil {
		repo, err := s.buildRepository(ctx)
		if err != nil {
			return err
		}
		s.repo = repo
	}

	s.engine = standings.New(s.repo,
		standings.WithDefaultPodiumSize(s.defaultPodiumSize),
		standings.WithLogger(s.logger.Named("standings")),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "standings service started",
		logger.String("factStore", s.repo.Backend()),
		logger.Int("defaultPodiumSize", s.defaultPodiumSize),
	)
	return nil
}

// buildRepository creates the fact store named by configuration.
func (s *Service) buildRepository(ctx context.Context) (facts.Repository, error) {
	switch s.factStore {
	case config.StoreMemory:
		return facts.NewMemStore(), nil
	case config.StoreSQLite:
		return facts.NewSQLiteStore(ctx, s.sqlitePath)
	case config.StorePostgres:
		return facts.NewPostgresStore(ctx, facts.PostgresConfig{
			DSN:      s.postgresDSN,
			MaxConns: int32(s.postgresMaxConns),
		})
	default:
		return nil, fmt.Errorf("%w: unknown fact store %q", config.ErrInvalidConfig, s.factStore)
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping standings service...")

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			s.logger.Warn(context.Background(), "fact store close failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "standings service stopped")
}

// ComputeCompetitionReport derives a fresh report from current facts.
func (s *Service) ComputeCompetitionReport(ctx context.Context, competitionID, divisionID string, podiumSize int) (types.CompetitionReport, error) {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()

	if engine == nil {
		return types.CompetitionReport{}, fmt.Errorf("service not started")
	}
	return engine.ComputeCompetitionReport(ctx, competitionID, divisionID, podiumSize)
}

// Repository exposes the fact store for seeding and embedding callers.
func (s *Service) Repository() facts.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"factStore":         s.factStore,
		"defaultPodiumSize": s.defaultPodiumSize,
	}
	if s.started {
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
		if s.repo != nil {
			stats["factStore"] = s.repo.Backend()
		}
	}
	return stats
}
