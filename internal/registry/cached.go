package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventcreator/internal/clock"
	"eventcreator/internal/domain"
)

// ConfigFetcher loads module configs from a remote collaborator.
type ConfigFetcher interface {
	ModuleConfigs(ctx context.Context) ([]domain.ModuleConfig, error)
}

var _ Source = (*CachedSource)(nil)

// CachedSource serves a Registry fetched remotely and cached for a TTL.
// When a fetch fails it keeps serving the last good registry, or the
// fallback if none has been fetched yet.
type CachedSource struct {
	fetcher  ConfigFetcher
	fallback *Registry
	ttl      time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	mu        sync.Mutex
	current   *Registry
	fetchedAt time.Time
}

// NewCachedSource returns a CachedSource. A ttl of 0 means one hour.
func NewCachedSource(fetcher ConfigFetcher, fallback *Registry, ttl time.Duration, clk clock.Clock, logger *slog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedSource{fetcher: fetcher, fallback: fallback, ttl: ttl, clock: clk, logger: logger}
}

// Registry returns the cached registry, refreshing it when stale.
func (s *CachedSource) Registry(ctx context.Context) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.current != nil && now.Sub(s.fetchedAt) < s.ttl {
		return s.current
	}

	configs, err := s.fetcher.ModuleConfigs(ctx)
	if err != nil || len(configs) == 0 {
		if err != nil {
			s.logger.WarnContext(ctx, "module configs fetch failed", "err", err)
		}
		if s.current != nil {
			return s.current
		}
		return s.fallback
	}
	s.current = New(configs)
	s.fetchedAt = now
	return s.current
}
