package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

func TestCardHandler_CRUD(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/cards", cardBody("royal_seal"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	card := decode[game.Card](t, rr)
	assert.Equal(t, 1, card.MaxStack)
	assert.True(t, card.IsConsumable)
	assert.Equal(t, game.UseTimingAnytime, card.UseTiming)

	rr = env.do(t, http.MethodPost, "/api/cards", cardBody("royal_seal"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Card with this card_id already exists", errorMessage(t, rr))

	rr = env.do(t, http.MethodPut, "/api/cards/"+card.ID, map[string]any{"rarity": "legendary", "max_stack": 3})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[game.Card](t, rr)
	assert.Equal(t, game.RarityLegendary, updated.Rarity)
	assert.Equal(t, 3, updated.MaxStack)
	assert.Equal(t, card.Name, updated.Name)

	rr = env.do(t, http.MethodGet, "/api/cards/"+card.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, game.RarityLegendary, decode[game.Card](t, rr).Rarity)

	rr = env.do(t, http.MethodDelete, "/api/cards/"+card.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Card deleted successfully", decode[MessageResponse](t, rr).Message)
	assert.Empty(t, decode[[]game.Card](t, env.do(t, http.MethodGet, "/api/cards", nil)))

	rr = env.do(t, http.MethodGet, "/api/cards/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Card not found", errorMessage(t, rr))
}

func TestCardHandler_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "/api/cards", cardBody("royal_seal"))
	pass := cardBody("gate_pass")
	pass["category"] = "pass"
	pass["rarity"] = "common"
	env.create(t, "/api/cards", pass)

	tests := []struct {
		query      string
		wantStatus int
		wantLen    int
	}{
		{query: "", wantStatus: http.StatusOK, wantLen: 2},
		{query: "?rarity=common", wantStatus: http.StatusOK, wantLen: 1},
		{query: "?category=attribute", wantStatus: http.StatusOK, wantLen: 1},
		{query: "?category=special", wantStatus: http.StatusOK, wantLen: 0},
		{query: "?rarity=mythic", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := env.do(t, http.MethodGet, "/api/cards"+tt.query, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Len(t, decode[[]game.Card](t, rr), tt.wantLen)
			}
		})
	}
}

func TestCardHandler_CreateRejectsBadPayload(t *testing.T) {
	env := newTestEnv(t)
	body := cardBody("royal_seal")
	body["attribute_bonus_min"] = 5
	body["attribute_bonus_max"] = 2
	rr := env.do(t, http.MethodPost, "/api/cards", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body = cardBody("royal_seal")
	body["use_timing"] = "never"
	rr = env.do(t, http.MethodPost, "/api/cards", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `invalid use_timing "never"`, errorMessage(t, rr))
}

func TestCardHandler_Enums(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/api/cards/types/enum", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	enums := decode[map[string][]game.EnumOption](t, rr)
	for _, key := range []string{"rarities", "categories", "effect_types", "use_timings"} {
		assert.NotEmpty(t, enums[key], key)
	}
	assert.Equal(t, game.EnumOption{Value: "scene_start", Label: "Scene Start"}, enums["use_timings"][0])
}
