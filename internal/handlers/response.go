package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// base carries what every resource handler needs.
type base struct {
	log     *slog.Logger
	storage storage.Storage
	feed    activity.Feed
}

func (b *base) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		b.log.Error("Failed to marshal response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (b *base) writeError(w http.ResponseWriter, status int, msg string) {
	b.writeJSON(w, status, ErrorResponse{Error: msg})
}

// resource names an entity in client-facing error messages.
type resource struct {
	name    string
	idField string
}

var (
	npcResource         = resource{"NPC", "npc_id"}
	cardResource        = resource{"Card", "card_id"}
	sceneResource       = resource{"Scene", "scene_id"}
	aiConfigResource    = resource{"AI config", "config_id"}
	templateResource    = resource{"Template", "template_id"}
	bindingResource     = resource{"Scene card binding", "id"}
	sceneNPCResource    = resource{"Scene NPC", "npc_id"}
	sceneAIResource     = resource{"Scene AI config", "ai_config_id"}
	sceneRewardResource = resource{"Scene rewards", "scene_id"}
)

// fail maps err onto the error taxonomy. action completes the
// "Failed to ..." message for anything unclassified.
func (b *base) fail(w http.ResponseWriter, err error, res resource, action string, args ...any) {
	var vErr *game.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		b.writeError(w, http.StatusNotFound, res.name+" not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		b.writeError(w, http.StatusConflict, fmt.Sprintf("%s with this %s already exists", res.name, res.idField))
	case errors.As(err, &vErr):
		b.writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, context.Canceled):
		b.log.Warn("Request canceled", append([]any{"action", action}, args...)...)
		b.writeError(w, http.StatusServiceUnavailable, "Request canceled")
	default:
		b.log.Error("Failed to "+action, append([]any{"error", err}, args...)...)
		b.writeError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// record adds an activity entry. Feed failures never fail the request.
func (b *base) record(ctx context.Context, action, entity, entityID, summary string) {
	if b.feed == nil {
		return
	}
	if err := b.feed.Record(ctx, activity.NewEntry(action, entity, entityID, summary)); err != nil {
		b.log.Warn("Failed to record activity", "error", err, "action", action, "entity", entity, "entity_id", entityID)
	}
}

var errEmptyBody = errors.New("request body is empty")

// decode reads one JSON value from the body into dst.
func (b *base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		err = errEmptyBody
	}
	if err != nil {
		b.log.Warn("Invalid JSON in request body", "error", err, "path", r.URL.Path)
		b.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}
	return true
}

func listOptions(r *http.Request) (storage.ListOptions, error) {
	opts := storage.ListOptions{Limit: defaultLimit}
	q := r.URL.Query()
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, game.Invalid("skip", "skip must be a non-negative integer")
		}
		opts.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			return opts, game.Invalid("limit", fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		}
		opts.Limit = n
	}
	return opts, nil
}

// enumQuery parses an optional enum filter from the query string.
func enumQuery[T ~string](r *http.Request, name string, values []T) (T, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", nil
	}
	return game.Parse(name, v, values)
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
