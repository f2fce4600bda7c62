package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

type CardHandler struct {
	base
}

func NewCardHandler(log *slog.Logger, storage storage.Storage, feed activity.Feed) *CardHandler {
	return &CardHandler{base{log: log, storage: storage, feed: feed}}
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		h.fail(w, err, cardResource, "list cards")
		return
	}
	f := storage.CardFilter{ListOptions: opts}
	if f.Rarity, err = enumQuery(r, "rarity", game.Rarities); err == nil {
		f.Category, err = enumQuery(r, "category", game.CardCategories)
	}
	if err != nil {
		h.fail(w, err, cardResource, "list cards")
		return
	}

	cards, err := h.storage.ListCards(r.Context(), f)
	if err != nil {
		h.fail(w, err, cardResource, "list cards")
		return
	}
	h.writeJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req game.CardCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, cardResource, "create card")
		return
	}

	card := req.Card()
	if err := h.storage.CreateCard(r.Context(), card); err != nil {
		h.fail(w, err, cardResource, "create card", "card_id", card.CardID)
		return
	}
	h.log.Info("Card created", "id", card.ID, "card_id", card.CardID)
	h.record(r.Context(), activity.ActionCreate, "card", card.ID, fmt.Sprintf("Created card %s", card.Name))
	h.writeJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	card, err := h.storage.GetCard(r.Context(), id)
	if err != nil {
		h.fail(w, err, cardResource, "get card", "id", id)
		return
	}
	h.writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	var req game.CardUpdate
	if !h.decode(w, r, &req) {
		return
	}

	card, err := h.storage.GetCard(r.Context(), id)
	if err != nil {
		h.fail(w, err, cardResource, "get card", "id", id)
		return
	}
	if err := req.Apply(card); err != nil {
		h.fail(w, err, cardResource, "update card", "id", id)
		return
	}
	if err := h.storage.UpdateCard(r.Context(), card); err != nil {
		h.fail(w, err, cardResource, "update card", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "card", card.ID, fmt.Sprintf("Updated card %s", card.Name))
	h.writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	if err := h.storage.DeleteCard(r.Context(), id); err != nil {
		h.fail(w, err, cardResource, "delete card", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionDelete, "card", id, "Deleted card")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Card deleted successfully"})
}

func (h *CardHandler) Enums(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]game.EnumOption{
		"rarities":     game.EnumOptions(game.Rarities),
		"categories":   game.EnumOptions(game.CardCategories),
		"effect_types": game.EnumOptions(game.EffectTypes),
		"use_timings":  game.EnumOptions(game.CardUseTimings),
	})
}
