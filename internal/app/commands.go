package app

import (
	"context"

	"stayhunt/internal/domain"
)

// AdminService owns the write paths. Every successful write evicts the
// caches that could serve the old row: the per-property entry and the
// locations summary (counts shift when rows move between locations).
type AdminService struct {
	repo  domain.PropertyRepository
	cache domain.Cache
}

func NewAdminService(r domain.PropertyRepository, c domain.Cache) *AdminService {
	return &AdminService{repo: r, cache: c}
}

func (s *AdminService) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	id, err := s.repo.CreateProperty(ctx, p)
	if err != nil {
		return domain.Property{}, err
	}
	s.invalidate(ctx, id)
	// Re-read so the caller gets DB-assigned id and timestamps.
	return s.repo.GetProperty(ctx, id)
}

func (s *AdminService) UpdateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	if err := s.repo.UpdateProperty(ctx, p); err != nil {
		return domain.Property{}, err
	}
	s.invalidate(ctx, p.ID)
	return s.repo.GetProperty(ctx, p.ID)
}

func (s *AdminService) DeleteProperty(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// UpsertProperty is the seeding path; identity is (homestay_name,
// sub_location), so re-seeding refreshes existing rows.
func (s *AdminService) UpsertProperty(ctx context.Context, p domain.Property) (int64, error) {
	id, err := s.repo.UpsertProperty(ctx, p)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return id, nil
}

func (s *AdminService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, propertyCacheKey(id))
	_ = s.cache.Del(ctx, locationsCacheKey)
}
