package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("property not found")

type PropertyRepository interface {
	// Read paths
	ListProperties(ctx context.Context, q PropertiesQuery) (PropertiesPage, error)
	GetProperty(ctx context.Context, id int64) (Property, error)
	LocationStats(ctx context.Context) ([]LocationStat, error)
	Suggestions(ctx context.Context, query string, limit int) ([]Suggestion, error)

	// Write paths
	CreateProperty(ctx context.Context, p Property) (int64, error)
	UpdateProperty(ctx context.Context, p Property) error
	DeleteProperty(ctx context.Context, id int64) error
	UpsertProperty(ctx context.Context, p Property) (int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
