package app_test

import (
	"context"
	"testing"
	"time"

	"stayhunt/internal/app"
	"stayhunt/internal/domain"
)

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func TestDeleteProperty_InvalidatesCaches(t *testing.T) {
	repo := &fakeRepo{property: domain.Property{ID: 5}}
	cache := &fakeCache{store: map[string]any{
		"property:5": domain.Property{ID: 5},
		"locations":  []domain.LocationStat{{Location: "Dooars", Count: 1}},
	}}
	adm := app.NewAdminService(repo, cache)

	if err := adm.DeleteProperty(context.Background(), 5); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.deletedID != 5 {
		t.Fatalf("repo delete not called, got id %d", repo.deletedID)
	}
	if !contains(cache.dels, "property:5") || !contains(cache.dels, "locations") {
		t.Fatalf("expected cache invalidation, got dels %v", cache.dels)
	}
}

func TestCreateProperty_ReturnsStoredRow(t *testing.T) {
	repo := &fakeRepo{property: domain.Property{ID: 11, HomestayName: "Forest Edge Resort"}}
	adm := app.NewAdminService(repo, &fakeCache{})

	created, err := adm.CreateProperty(context.Background(), domain.Property{HomestayName: "Forest Edge Resort"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if created.ID != 11 {
		t.Fatalf("expected DB-assigned id, got %+v", created)
	}
}

func TestUpdateThenRead_SeesFreshRow(t *testing.T) {
	repo := &fakeRepo{property: domain.Property{ID: 3, HomestayName: "Old Name"}}
	cache := &fakeCache{}
	qs := app.NewQueryService(repo, cache, 10*time.Minute)
	adm := app.NewAdminService(repo, cache)

	if _, err := qs.GetProperty(context.Background(), 3); err != nil {
		t.Fatalf("warm read: %v", err)
	}

	repo.property.HomestayName = "New Name"
	if _, err := adm.UpdateProperty(context.Background(), repo.property); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := qs.GetProperty(context.Background(), 3)
	if err != nil {
		t.Fatalf("read after update: %v", err)
	}
	if got.HomestayName != "New Name" {
		t.Fatalf("stale cache survived update: %+v", got)
	}
}
