package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
)

type testEnv struct {
	router  http.Handler
	storage *storage.SQLiteStorage
	feed    *activity.MemoryFeed
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	feed := activity.NewMemoryFeed(50)
	return &testEnv{
		router:  NewRouter(RouterConfig{Storage: store, Feed: feed, Logger: logger, Version: "test"}),
		storage: store,
		feed:    feed,
	}
}

// do sends body (a string is sent verbatim, anything else as JSON).
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, rr).Error
}

// create posts body and returns the new row's internal id.
func (e *testEnv) create(t *testing.T, path string, body any) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	out := decode[map[string]any](t, rr)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func npcBody(npcID string) map[string]any {
	return map[string]any{
		"npc_id":       npcID,
		"name":         "NPC " + npcID,
		"npc_type":     "game_npc",
		"tier":         "silver",
		"faction":      "military",
		"intelligence": 10,
		"strength":     50,
		"defense":      20,
		"hp_max":       150,
	}
}

func cardBody(cardID string) map[string]any {
	return map[string]any{
		"card_id":  cardID,
		"name":     "Card " + cardID,
		"rarity":   "rare",
		"category": "attribute",
	}
}

func sceneBody(sceneID string) map[string]any {
	return map[string]any{
		"scene_id": sceneID,
		"name":     "Scene " + sceneID,
		"category": "main_story",
	}
}

func aiConfigBody(configID string) map[string]any {
	return map[string]any{
		"config_id":   configID,
		"name":        "Config " + configID,
		"ai_type":     "narrator",
		"base_prompt": "You narrate the court of the Sultan.",
	}
}

func ptr[T any](v T) *T { return &v }
