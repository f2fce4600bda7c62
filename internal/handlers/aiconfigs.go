package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

type AIConfigHandler struct {
	base
}

func NewAIConfigHandler(log *slog.Logger, storage storage.Storage, feed activity.Feed) *AIConfigHandler {
	return &AIConfigHandler{base{log: log, storage: storage, feed: feed}}
}

type aiTestRequest struct {
	Prompt string `json:"prompt"`
}

func (h *AIConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		h.fail(w, err, aiConfigResource, "list AI configs")
		return
	}
	f := storage.AIConfigFilter{ListOptions: opts}
	if f.AIType, err = enumQuery(r, "ai_type", game.AITypes); err != nil {
		h.fail(w, err, aiConfigResource, "list AI configs")
		return
	}

	configs, err := h.storage.ListAIConfigs(r.Context(), f)
	if err != nil {
		h.fail(w, err, aiConfigResource, "list AI configs")
		return
	}
	h.writeJSON(w, http.StatusOK, configs)
}

func (h *AIConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req game.AIConfigCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, aiConfigResource, "create AI config")
		return
	}

	cfg := req.AIConfig()
	if err := h.storage.CreateAIConfig(r.Context(), cfg); err != nil {
		h.fail(w, err, aiConfigResource, "create AI config", "config_id", cfg.ConfigID)
		return
	}
	h.log.Info("AI config created", "id", cfg.ID, "config_id", cfg.ConfigID, "ai_type", cfg.AIType)
	h.record(r.Context(), activity.ActionCreate, "ai_config", cfg.ID, fmt.Sprintf("Created AI config %s", cfg.Name))
	h.writeJSON(w, http.StatusCreated, cfg)
}

// load resolves the {id} path variable. Ids that are not UUIDs are
// rejected before the store is queried.
func (h *AIConfigHandler) load(w http.ResponseWriter, r *http.Request) (*game.AIConfig, bool) {
	id := pathVar(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid UUID format")
		return nil, false
	}
	cfg, err := h.storage.GetAIConfig(r.Context(), id)
	if err != nil {
		h.fail(w, err, aiConfigResource, "get AI config", "id", id)
		return nil, false
	}
	return cfg, true
}

func (h *AIConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, cfg)
}

func (h *AIConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	var req game.AIConfigUpdate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Apply(cfg); err != nil {
		h.fail(w, err, aiConfigResource, "update AI config", "id", cfg.ID)
		return
	}
	if err := h.storage.UpdateAIConfig(r.Context(), cfg); err != nil {
		h.fail(w, err, aiConfigResource, "update AI config", "id", cfg.ID)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "ai_config", cfg.ID, fmt.Sprintf("Updated AI config %s", cfg.Name))
	h.writeJSON(w, http.StatusOK, cfg)
}

func (h *AIConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid UUID format")
		return
	}
	if err := h.storage.DeleteAIConfig(r.Context(), id); err != nil {
		h.fail(w, err, aiConfigResource, "delete AI config", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionDelete, "ai_config", id, "Deleted AI config")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "AI config deleted successfully"})
}

func (h *AIConfigHandler) Performance(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, game.PerformanceReport(cfg))
}

func (h *AIConfigHandler) Test(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	var req aiTestRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, game.DryRun(cfg, req.Prompt))
}

func (h *AIConfigHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, game.Optimize(cfg))
}

func (h *AIConfigHandler) Enums(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]game.EnumOption{
		"ai_types": game.EnumOptions(game.AITypes),
	})
}
