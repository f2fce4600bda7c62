package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

// SystemHandler serves the dashboard, system info, config validation and
// batch endpoints.
type SystemHandler struct {
	base
	version string
	started time.Time
}

func NewSystemHandler(log *slog.Logger, storage storage.Storage, feed activity.Feed, version string) *SystemHandler {
	return &SystemHandler{
		base:    base{log: log, storage: storage, feed: feed},
		version: version,
		started: time.Now(),
	}
}

type SystemInfo struct {
	Version         string `json:"version"`
	DatabaseStatus  string `json:"database_status"`
	APIStatus       string `json:"api_status"`
	AIServiceStatus string `json:"ai_service_status"`
	ActivityBackend string `json:"activity_backend"`
	Uptime          string `json:"uptime"`
}

type batchResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.storage.Counts(r.Context())
	if err != nil {
		h.fail(w, err, resource{name: "Stats"}, "get dashboard stats")
		return
	}
	h.writeJSON(w, http.StatusOK, counts)
}

func (h *SystemHandler) Activities(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxActivityLimit {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxActivityLimit))
			return
		}
		limit = n
	}
	if h.feed == nil {
		h.writeJSON(w, http.StatusOK, []activity.Entry{})
		return
	}
	entries, err := h.feed.Recent(r.Context(), limit)
	if err != nil {
		h.fail(w, err, resource{name: "Activities"}, "get recent activities")
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	info := SystemInfo{
		Version:         h.version,
		DatabaseStatus:  "connected",
		APIStatus:       "running",
		AIServiceStatus: "pending_configuration",
		ActivityBackend: "none",
		Uptime:          time.Since(h.started).Round(time.Second).String(),
	}
	if err := h.storage.Ping(r.Context()); err != nil {
		h.log.Warn("Database ping failed", "error", err)
		info.DatabaseStatus = "disconnected"
	}
	if h.feed != nil {
		info.ActivityBackend = h.feed.Backend()
	}
	h.writeJSON(w, http.StatusOK, info)
}

// ValidateConfig checks an arbitrary payload against the required fields
// of the type named by the config_type query parameter.
func (h *SystemHandler) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	configType := r.URL.Query().Get("config_type")
	if configType == "" {
		h.writeError(w, http.StatusBadRequest, "config_type is required")
		return
	}
	var data map[string]any
	if !h.decode(w, r, &data) {
		return
	}
	h.writeJSON(w, http.StatusOK, game.ValidateConfig(configType, data))
}

func (h *SystemHandler) Import(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, batchResponse{Message: "Batch import is not yet implemented", Status: "pending"})
}

func (h *SystemHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, batchResponse{Message: "Batch export is not yet implemented", Status: "pending"})
}
