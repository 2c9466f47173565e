// Package cache wraps Redis for the public card-read path. Cached entries
// hold card fields only, never scan counts, so the cache can not drift from
// the event log.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cardlink/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func cardKey(id string) string {
	return fmt.Sprintf("card:id:%s", id)
}

// CacheCard stores a card under its id key. A nil receiver is a no-op so
// callers need not branch on whether Redis is configured.
func (s *CacheService) CacheCard(ctx context.Context, card *models.Card) error {
	if s == nil || card == nil {
		return nil
	}
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, cardKey(card.ID), data, s.ttl).Err()
}

// GetCard returns the cached card and whether it was present.
func (s *CacheService) GetCard(ctx context.Context, id string) (*models.Card, bool) {
	if s == nil {
		return nil, false
	}
	data, err := s.client.Get(ctx, cardKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var card models.Card
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, false
	}
	return &card, true
}

// InvalidateCard drops the cached entry after an update or delete.
func (s *CacheService) InvalidateCard(ctx context.Context, id string) error {
	if s == nil {
		return nil
	}
	return s.client.Del(ctx, cardKey(id)).Err()
}

// FlushAll clears the cache, used on startup.
func (s *CacheService) FlushAll(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.client.FlushAll(ctx).Err()
}

// Close releases the underlying Redis connection.
func (s *CacheService) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
