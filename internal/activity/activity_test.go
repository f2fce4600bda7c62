package activity

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, limit int) (*RedisFeed, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	feed, err := NewRedisFeed(context.Background(), "redis://"+mr.Addr(), limit, logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create activity feed: %v", err)
	}
	t.Cleanup(func() {
		_ = feed.Close()
		mr.Close()
	})
	return feed, mr
}

func record(t *testing.T, f Feed, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.Record(context.Background(), NewEntry(ActionCreate, "npc", fmt.Sprintf("id-%d", i), fmt.Sprintf("Created NPC %d", i))))
	}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.EntityID)
	}
	return out
}

func TestFeeds_NewestFirstAndCapped(t *testing.T) {
	redisFeed, _ := setupTestRedis(t, 3)
	feeds := map[string]Feed{
		"redis":  redisFeed,
		"memory": NewMemoryFeed(3),
	}

	for name, feed := range feeds {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := feed.Recent(ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, empty)

			record(t, feed, 5)

			all, err := feed.Recent(ctx, 10)
			require.NoError(t, err)
			assert.Equal(t, []string{"id-4", "id-3", "id-2"}, ids(all))

			two, err := feed.Recent(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, []string{"id-4", "id-3"}, ids(two))

			unbounded, err := feed.Recent(ctx, 0)
			require.NoError(t, err)
			assert.Len(t, unbounded, 3)

			assert.NoError(t, feed.Ping(ctx))
			assert.Equal(t, name, feed.Backend())
		})
	}
}

func TestRedisFeed_TrimsList(t *testing.T) {
	feed, mr := setupTestRedis(t, 2)
	record(t, feed, 4)

	items, err := mr.List(FeedKey)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRedisFeed_SkipsMalformed(t *testing.T) {
	feed, mr := setupTestRedis(t, 10)
	record(t, feed, 1)
	_, err := mr.Lpush(FeedKey, "not json")
	require.NoError(t, err)

	entries, err := feed.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-0"}, ids(entries))
}

func TestRedisFeed_PingFailsOnError(t *testing.T) {
	feed, mr := setupTestRedis(t, 10)
	mr.SetError("ERR server unavailable")
	defer mr.SetError("")
	assert.Error(t, feed.Ping(context.Background()))
}

func TestNewRedisFeed_BadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	_, err := NewRedisFeed(context.Background(), "not-a-url", 10, logger)
	assert.Error(t, err)
}

func TestNewEntry(t *testing.T) {
	e := NewEntry(ActionDelete, "card", "abc", "Deleted card")
	assert.NotEmpty(t, e.ID)
	assert.NotZero(t, e.Timestamp)
	assert.Equal(t, "card", e.Entity)
}
