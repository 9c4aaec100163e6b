package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"globetrotter/internal/model"
)

// ChallengeCache is a short-TTL read cache for challenge lookups by code.
// Challenge links get shared around, so the same code is hit repeatedly.
type ChallengeCache interface {
	Set(ctx context.Context, challenge *model.Challenge) error
	Get(ctx context.Context, code string) (*model.Challenge, error)
	Invalidate(ctx context.Context, code string) error
}

type challengeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewChallengeCache creates a new challenge cache
func NewChallengeCache(client *redis.Client) ChallengeCache {
	return &challengeCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *challengeCache) key(code string) string {
	return fmt.Sprintf("challenge:%s", code)
}

func (c *challengeCache) Set(ctx context.Context, challenge *model.Challenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(challenge.Code), data, c.ttl).Err()
}

func (c *challengeCache) Get(ctx context.Context, code string) (*model.Challenge, error) {
	data, err := c.client.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var challenge model.Challenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (c *challengeCache) Invalidate(ctx context.Context, code string) error {
	return c.client.Del(ctx, c.key(code)).Err()
}
