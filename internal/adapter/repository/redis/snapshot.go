package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/networth/internal/domain"
)

// SnapshotKey holds the latest price snapshot as a JSON object.
const SnapshotKey = "latest"

// SnapshotStore implements usecase.PriceSnapshotStore using Redis.
type SnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSnapshotStore creates a new SnapshotStore. A zero ttl keeps the
// snapshot until the next refresh overwrites it.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: "prices:",
		ttl:    ttl,
	}
}

// Load retrieves the snapshot. A missing key yields domain.ErrMissingFile.
func (s *SnapshotStore) Load(ctx context.Context) (domain.PriceSnapshot, error) {
	raw, err := s.client.Get(ctx, s.prefix+SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s%s: %w", s.prefix, SnapshotKey, domain.ErrMissingFile)
	}
	if err != nil {
		return nil, fmt.Errorf("loading price snapshot: %w", err)
	}

	snapshot := domain.PriceSnapshot{}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("%s%s: %w: %w", s.prefix, SnapshotKey, domain.ErrParse, err)
	}
	return snapshot, nil
}

// Save overwrites the snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snapshot domain.PriceSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding prices: %w", err)
	}
	return s.client.Set(ctx, s.prefix+SnapshotKey, raw, s.ttl).Err()
}

// Delete removes the snapshot.
func (s *SnapshotStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.prefix+SnapshotKey).Err()
}
