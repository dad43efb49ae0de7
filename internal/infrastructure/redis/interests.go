package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// InterestStore is the Redis implementation of domain.InterestStore.
// Each user's interests live in a list so their display order is kept.
type InterestStore struct {
	client *goredis.Client
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewInterestStore wraps a connected client.
func NewInterestStore(client *goredis.Client) *InterestStore {
	return &InterestStore{client: client}
}

func interestKey(userID string) string {
	return "interests:user:" + userID
}

// List returns the user's interests in display order. A missing key is an empty list.
func (s *InterestStore) List(ctx context.Context, userID string) ([]string, error) {
	interests, err := s.client.LRange(ctx, interestKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", interestKey(userID), err)
	}
	return interests, nil
}

// Save replaces the user's interests atomically.
func (s *InterestStore) Save(ctx context.Context, userID string, interests []string) error {
	key := interestKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(interests) == 0 {
			return nil
		}
		values := make([]any, len(interests))
		for i, v := range interests {
			values[i] = v
		}
		pipe.RPush(ctx, key, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
