// README: Profile store backed by Redis; merge-upsert JSON values per user.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eatbot/internal/types"
)

// Store persists profiles as one JSON value per user key.
//
// Writes are read-modify-write without locking: the only writer for a given
// key is the user's own event stream, and a chat user sends one message at a
// time. Last-writer-wins is acceptable here.
type Store struct {
	rdb *redis.Client
}

// NewStore returns a Store backed by the given Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func userKey(id types.ID) string {
	return "user:" + string(id)
}

// Get loads a profile. A missing user yields (nil, nil), not an error.
func (s *Store) Get(ctx context.Context, id types.ID) (*Profile, error) {
	data, err := s.rdb.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile get %s: %w", id, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile decode %s: %w", id, err)
	}
	return &p, nil
}

// Upsert merges the patch into the stored profile, creating the record on
// first contact. displayName is refreshed on every write when non-empty.
func (s *Store) Upsert(ctx context.Context, id types.ID, displayName string, patch Patch) error {
	now := time.Now()

	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		p = &Profile{CreatedAt: now}
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	p.Apply(patch, now)

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile encode %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, userKey(id), data, 0).Err(); err != nil {
		return fmt.Errorf("profile set %s: %w", id, err)
	}
	return nil
}
