package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

type TemplateHandler struct {
	base
	now func() time.Time
}

func NewTemplateHandler(log *slog.Logger, storage storage.Storage, feed activity.Feed) *TemplateHandler {
	return &TemplateHandler{base: base{log: log, storage: storage, feed: feed}, now: time.Now}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		h.fail(w, err, templateResource, "list templates")
		return
	}
	f := storage.TemplateFilter{ListOptions: opts}
	if f.TemplateType, err = enumQuery(r, "template_type", game.TemplateTypes); err == nil {
		f.Category, err = enumQuery(r, "category", game.TemplateCategories)
	}
	if err != nil {
		h.fail(w, err, templateResource, "list templates")
		return
	}
	if v := r.URL.Query().Get("is_public"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "is_public must be true or false")
			return
		}
		f.IsPublic = &b
	}

	templates, err := h.storage.ListTemplates(r.Context(), f)
	if err != nil {
		h.fail(w, err, templateResource, "list templates")
		return
	}
	h.writeJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req game.TemplateCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, templateResource, "create template")
		return
	}
	h.create(w, r, req.Template(), "Template created successfully")
}

func (h *TemplateHandler) create(w http.ResponseWriter, r *http.Request, t *game.ConfigTemplate, msg string) {
	if err := h.storage.CreateTemplate(r.Context(), t); err != nil {
		h.fail(w, err, templateResource, "create template", "template_id", t.TemplateID)
		return
	}
	h.log.Info("Template created", "id", t.ID, "template_id", t.TemplateID, "template_type", t.TemplateType)
	h.record(r.Context(), activity.ActionCreate, "template", t.ID, fmt.Sprintf("Created template %s", t.Name))
	h.writeJSON(w, http.StatusCreated, MessageResponse{Message: msg, ID: t.ID})
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	t, err := h.storage.GetTemplate(r.Context(), id)
	if err != nil {
		h.fail(w, err, templateResource, "get template", "id", id)
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	var req game.TemplateUpdate
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.storage.GetTemplate(r.Context(), id)
	if err != nil {
		h.fail(w, err, templateResource, "get template", "id", id)
		return
	}
	if err := req.Apply(t); err != nil {
		h.fail(w, err, templateResource, "update template", "id", id)
		return
	}
	if err := h.storage.UpdateTemplate(r.Context(), t); err != nil {
		h.fail(w, err, templateResource, "update template", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "template", t.ID, fmt.Sprintf("Updated template %s", t.Name))
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Template updated successfully", ID: t.ID})
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	if err := h.storage.DeleteTemplate(r.Context(), id); err != nil {
		h.fail(w, err, templateResource, "delete template", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionDelete, "template", id, "Deleted template")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Template deleted successfully"})
}

// FromScene snapshots a scene with its NPC links, AI settings and basic
// rewards.
func (h *TemplateHandler) FromScene(w http.ResponseWriter, r *http.Request) {
	var req game.FromSceneRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, templateResource, "create template")
		return
	}

	ctx := r.Context()
	sc, err := h.storage.GetScene(ctx, req.SceneID)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene", "id", req.SceneID)
		return
	}
	npcs, err := h.storage.ListSceneNPCs(ctx, sc.ID)
	if err != nil {
		h.fail(w, err, templateResource, "create template", "scene", sc.ID)
		return
	}
	ai, err := h.storage.GetSceneAISettings(ctx, sc.ID)
	if errors.Is(err, storage.ErrNotFound) {
		ai, err = nil, nil
	}
	if err != nil {
		h.fail(w, err, templateResource, "create template", "scene", sc.ID)
		return
	}
	reward, err := h.storage.GetSceneReward(ctx, sc.ID)
	if errors.Is(err, storage.ErrNotFound) {
		reward, err = nil, nil
	}
	if err != nil {
		h.fail(w, err, templateResource, "create template", "scene", sc.ID)
		return
	}

	now := h.now().Unix()
	t := game.TemplateFromScene(&req, sc, game.SceneSnapshot(sc, npcs, ai, reward), now)
	t.CreatedAt = now
	h.create(w, r, t, "Template created from scene successfully")
}

func (h *TemplateHandler) FromAIConfig(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	cfg, err := h.storage.GetAIConfig(r.Context(), id)
	if err != nil {
		h.fail(w, err, aiConfigResource, "get AI config", "id", id)
		return
	}
	q := r.URL.Query()
	now := h.now().Unix()
	t := game.TemplateFromAIConfig(cfg, q.Get("template_name"), q.Get("description"), now)
	t.CreatedAt = now
	h.create(w, r, t, "Template created from AI config successfully")
}

// ApplyToScene copies a scene template's scalar settings onto a scene and
// counts one use of the template.
func (h *TemplateHandler) ApplyToScene(w http.ResponseWriter, r *http.Request) {
	id, sceneID := pathVar(r, "id"), pathVar(r, "scene_id")
	ctx := r.Context()

	t, err := h.storage.GetTemplate(ctx, id)
	if err != nil {
		h.fail(w, err, templateResource, "get template", "id", id)
		return
	}
	sc, err := h.storage.GetScene(ctx, sceneID)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene", "id", sceneID)
		return
	}
	if err := game.ApplySceneTemplate(t, sc); err != nil {
		h.fail(w, err, templateResource, "apply template")
		return
	}
	if err := h.storage.ApplySceneTemplate(ctx, t.ID, sc); err != nil {
		h.fail(w, err, templateResource, "apply template", "id", id, "scene", sceneID)
		return
	}
	h.record(ctx, activity.ActionApply, "template", t.ID, fmt.Sprintf("Applied template %s to scene %s", t.Name, sc.Name))
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Template applied to scene successfully"})
}

func (h *TemplateHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]game.EnumOption{
		"categories": game.EnumOptions(game.TemplateCategories),
	})
}

func (h *TemplateHandler) Types(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]game.EnumOption{
		"template_types": game.EnumOptions(game.TemplateTypes),
	})
}
