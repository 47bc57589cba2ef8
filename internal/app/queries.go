package app

import (
	"context"
	"fmt"
	"time"

	"stayhunt/internal/domain"
)

const (
	locationsCacheKey = "locations"
	maxSuggestions    = 5
)

func propertyCacheKey(id int64) string { return fmt.Sprintf("property:%d", id) }

type QueryService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// ListProperties goes straight to the repository. The filter/sort/page
// space is too wide for key-per-query caching to pay off, and stale pages
// after an admin write would be worse than the extra read.
func (s *QueryService) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	return s.repo.ListProperties(ctx, q.Normalize())
}

func (s *QueryService) GetProperty(ctx context.Context, id int64) (domain.Property, error) {
	key := propertyCacheKey(id)
	var p domain.Property
	if ok, _ := s.cache.Get(ctx, key, &p); ok {
		return p, nil
	}
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	return p, nil
}

func (s *QueryService) Locations(ctx context.Context) ([]domain.LocationStat, error) {
	var out []domain.LocationStat
	if ok, _ := s.cache.Get(ctx, locationsCacheKey, &out); ok {
		return out, nil
	}
	stats, err := s.repo.LocationStats(ctx)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached value
	cp := make([]domain.LocationStat, len(stats))
	copy(cp, stats)
	_ = s.cache.Set(ctx, locationsCacheKey, cp, int(s.cacheTTL.Seconds()))
	return stats, nil
}

func (s *QueryService) Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	return s.repo.Suggestions(ctx, query, maxSuggestions)
}
