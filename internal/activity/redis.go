package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// FeedKey is the Redis list holding the feed, newest at the head.
const FeedKey = "sultan:activities"

// RedisFeed stores the feed as a capped Redis list.
type RedisFeed struct {
	rdb    *redis.Client
	logger *slog.Logger
	limit  int
}

var _ Feed = (*RedisFeed)(nil)

// NewRedisFeed connects to redisURL and keeps at most limit entries.
func NewRedisFeed(ctx context.Context, redisURL string, limit int, logger *slog.Logger) (*RedisFeed, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	logger.Info("Connected to Redis for activity feed", "addr", opt.Addr, "limit", limit)

	return &RedisFeed{rdb: rdb, logger: logger, limit: limit}, nil
}

// Record pushes e to the head of the list and trims the tail.
func (f *RedisFeed) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal activity: %w", err)
	}

	_, err = f.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, FeedKey, data)
		pipe.LTrim(ctx, FeedKey, 0, int64(f.limit-1))
		return nil
	})
	if err != nil {
		f.logger.Error("Failed to record activity", "error", err, "action", e.Action, "entity", e.Entity)
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

func (f *RedisFeed) Recent(ctx context.Context, limit int) ([]Entry, error) {
	end := int64(limit - 1)
	if limit <= 0 {
		end = -1
	}

	raw, err := f.rdb.LRange(ctx, FeedKey, 0, end).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			f.logger.Warn("Skipping malformed activity entry", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (f *RedisFeed) Ping(ctx context.Context) error {
	if err := f.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (f *RedisFeed) Backend() string { return "redis" }

func (f *RedisFeed) Close() error {
	return f.rdb.Close()
}
