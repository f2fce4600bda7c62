package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/actor"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

type NPCHandler struct {
	base
}

func NewNPCHandler(log *slog.Logger, storage storage.Storage, feed activity.Feed) *NPCHandler {
	return &NPCHandler{base{log: log, storage: storage, feed: feed}}
}

func (h *NPCHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		h.fail(w, err, npcResource, "list NPCs")
		return
	}
	f := storage.NPCFilter{ListOptions: opts}
	if f.NPCType, err = enumQuery(r, "npc_type", game.NPCTypes); err == nil {
		if f.Tier, err = enumQuery(r, "tier", game.Tiers); err == nil {
			f.Faction, err = enumQuery(r, "faction", game.Factions)
		}
	}
	if err != nil {
		h.fail(w, err, npcResource, "list NPCs")
		return
	}

	npcs, err := h.storage.ListNPCs(r.Context(), f)
	if err != nil {
		h.fail(w, err, npcResource, "list NPCs")
		return
	}
	h.writeJSON(w, http.StatusOK, npcs)
}

func (h *NPCHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req game.NPCCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, npcResource, "create NPC")
		return
	}

	npc := req.NPC()
	if err := h.storage.CreateNPC(r.Context(), npc); err != nil {
		h.fail(w, err, npcResource, "create NPC", "npc_id", npc.NPCID)
		return
	}
	h.log.Info("NPC created", "id", npc.ID, "npc_id", npc.NPCID)
	h.record(r.Context(), activity.ActionCreate, "npc", npc.ID, fmt.Sprintf("Created NPC %s", npc.Name))
	h.writeJSON(w, http.StatusCreated, npc)
}

func (h *NPCHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	npc, err := h.storage.GetNPC(r.Context(), id)
	if err != nil {
		h.fail(w, err, npcResource, "get NPC", "id", id)
		return
	}
	h.writeJSON(w, http.StatusOK, npc)
}

// Update applies a partial payload. Ranges are not re-checked here.
func (h *NPCHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	var req game.NPCUpdate
	if !h.decode(w, r, &req) {
		return
	}

	npc, err := h.storage.GetNPC(r.Context(), id)
	if err != nil {
		h.fail(w, err, npcResource, "get NPC", "id", id)
		return
	}
	if err := req.Apply(npc); err != nil {
		h.fail(w, err, npcResource, "update NPC", "id", id)
		return
	}
	if err := h.storage.UpdateNPC(r.Context(), npc); err != nil {
		h.fail(w, err, npcResource, "update NPC", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "npc", npc.ID, fmt.Sprintf("Updated NPC %s", npc.Name))
	h.writeJSON(w, http.StatusOK, npc)
}

func (h *NPCHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	if err := h.storage.DeleteNPC(r.Context(), id); err != nil {
		h.fail(w, err, npcResource, "delete NPC", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionDelete, "npc", id, "Deleted NPC")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "NPC deleted successfully"})
}

// Validate runs the full rule set, including the combat actor check,
// against a stored NPC.
func (h *NPCHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	npc, err := h.storage.GetNPC(r.Context(), id)
	if err != nil {
		h.fail(w, err, npcResource, "get NPC", "id", id)
		return
	}
	h.writeJSON(w, http.StatusOK, actor.Validate(npc))
}

func (h *NPCHandler) Enums(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]game.EnumOption{
		"npc_types": game.EnumOptions(game.NPCTypes),
		"tiers":     game.EnumOptions(game.Tiers),
		"factions":  game.EnumOptions(game.Factions),
	})
}
