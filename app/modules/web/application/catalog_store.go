package webservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
)

// CatalogState is the state of the shared catalog fetch.
type CatalogState int

const (
	CatalogLoading CatalogState = iota
	CatalogLoaded
	CatalogFailed
)

func (s CatalogState) String() string {
	switch s {
	case CatalogLoaded:
		return "loaded"
	case CatalogFailed:
		return "failed"
	default:
		return "loading"
	}
}

// CatalogSnapshot is a point-in-time copy of the store.
type CatalogSnapshot struct {
	State CatalogState
	Games []arcadeclient.Game
}

// CatalogStore holds the game list fetched once from the API and shared by every view.
type CatalogStore struct {
	api     ArcadeAPI
	logger  *slog.Logger
	timeout time.Duration

	mu       sync.RWMutex
	state    CatalogState
	games    []arcadeclient.Game
	byID     map[int]arcadeclient.Game
	fetching bool

	wg sync.WaitGroup
}

// NewCatalogStore creates a store in the loading state. Nothing is fetched until Load.
func NewCatalogStore(api ArcadeAPI, logger *slog.Logger, timeout time.Duration) *CatalogStore {
	return &CatalogStore{
		api:     api,
		logger:  logger,
		timeout: timeout,
		state:   CatalogLoading,
	}
}

// Load fetches the catalog and records the outcome. Concurrent calls collapse into
// the one already in flight.
func (s *CatalogStore) Load(ctx context.Context) {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return
	}
	s.fetching = true
	s.state = CatalogLoading
	s.mu.Unlock()

	s.fetch(ctx)
}

func (s *CatalogStore) fetch(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	games, err := s.api.ListGames(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if err != nil {
		s.state = CatalogFailed
		s.logger.ErrorContext(ctx, "Error fetching games", attr.Error(err))
		return
	}

	s.state = CatalogLoaded
	s.games = games
	s.byID = make(map[int]arcadeclient.Game, len(games))
	for _, g := range games {
		s.byID[g.ID] = g
	}
	s.logger.InfoContext(ctx, "Catalog loaded", attr.Int("count", len(games)))
}

// Retry starts a background fetch when the last one failed. It reports whether a
// fetch was started.
func (s *CatalogStore) Retry() bool {
	s.mu.Lock()
	if s.state != CatalogFailed || s.fetching {
		s.mu.Unlock()
		return false
	}
	s.fetching = true
	s.state = CatalogLoading
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fetch(context.Background())
	}()
	return true
}

// Snapshot returns the current state and a copy of the games.
func (s *CatalogStore) Snapshot() CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := CatalogSnapshot{State: s.state}
	if s.games != nil {
		snap.Games = append([]arcadeclient.Game(nil), s.games...)
	}
	return snap
}

// Find returns the game with id once the catalog has loaded.
func (s *CatalogStore) Find(id int) (arcadeclient.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.byID[id]
	return g, ok
}

// Wait blocks until background retries finish.
func (s *CatalogStore) Wait() {
	s.wg.Wait()
}
