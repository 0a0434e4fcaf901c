package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"printcart/internal/cart"
	"printcart/pkg/redis"
)

// Storage persists cart snapshots in Redis, keyed by session id. Snapshots
// expire with the client's TTL; an expired or missing snapshot reads back
// as an empty cart.
type Storage struct {
	client *redis.Client
}

func New(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) SetCartSnapshot(ctx context.Context, sessionID string, state cart.CartState) error {
	snapshot := CartSnapshot{
		SessionID: sessionID,
		State:     state,
		SavedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.client.Set(ctx, buildCartKey(sessionID), data, 0)
}

func (s *Storage) GetCartSnapshot(ctx context.Context, sessionID string) (cart.CartState, error) {
	data, err := s.client.Get(ctx, buildCartKey(sessionID))
	if errors.Is(err, goredis.Nil) {
		return cart.CartState{}, nil
	}
	if err != nil {
		return cart.CartState{}, fmt.Errorf("get snapshot: %w", err)
	}

	var snapshot CartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return cart.CartState{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot.State, nil
}

func (s *Storage) DropCartSnapshot(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, buildCartKey(sessionID))
}

func buildCartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
