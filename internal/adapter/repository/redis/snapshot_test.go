package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
)

func TestSnapshotStoreSaveAndLoad(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSnapshotStore(client, 0)
	ctx := context.Background()

	err := store.Save(ctx, domain.PriceSnapshot{"A": decimal.RequireFromString("70.5"), "EUR": decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snapshot, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !snapshot.Price("A").Equal(decimal.RequireFromString("70.5")) {
		t.Fatalf("expected A at 70.5, got %s", snapshot.Price("A"))
	}
	if !mr.Exists("prices:latest") {
		t.Fatalf("expected snapshot under prices:latest")
	}
}

func TestSnapshotStoreMissing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	_, err := NewSnapshotStore(client, 0).Load(context.Background())
	if !errors.Is(err, domain.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestSnapshotStoreCorrupt(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set("prices:latest", "{not json"); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	_, err := NewSnapshotStore(client, 0).Load(context.Background())
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestSnapshotStoreTTL(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSnapshotStore(client, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, domain.PriceSnapshot{"A": decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	mr.FastForward(2 * time.Hour)

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrMissingFile) {
		t.Fatalf("expected expired snapshot to be missing, got %v", err)
	}
}

func TestSnapshotStoreDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSnapshotStore(client, 0)
	ctx := context.Background()

	if err := store.Save(ctx, domain.PriceSnapshot{"A": decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if mr.Exists("prices:latest") {
		t.Fatalf("expected key to be removed")
	}
}
