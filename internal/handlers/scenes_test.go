package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

func TestSceneHandler_CRUD(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/scenes", sceneBody("palace_intro"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	sc := decode[game.Scene](t, rr)
	assert.Equal(t, game.SceneStatusDraft, sc.Status)
	assert.Equal(t, 1, sc.MinPlayerNPCs)
	assert.Equal(t, 3, sc.MaxPlayerNPCs)
	assert.Equal(t, []string{}, sc.PrerequisiteScenes)

	rr = env.do(t, http.MethodPost, "/api/scenes", sceneBody("palace_intro"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Scene with this scene_id already exists", errorMessage(t, rr))

	rr = env.do(t, http.MethodPut, "/api/scenes/"+sc.ID, map[string]any{"status": "active", "chapter": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[game.Scene](t, rr)
	assert.Equal(t, game.SceneStatusActive, updated.Status)
	assert.Equal(t, 2, updated.Chapter)

	rr = env.do(t, http.MethodPut, "/api/scenes/"+sc.ID, map[string]any{"status": "finished"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/scenes/"+sc.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Scene deleted successfully", decode[MessageResponse](t, rr).Message)
	assert.Empty(t, decode[[]game.Scene](t, env.do(t, http.MethodGet, "/api/scenes", nil)))
}

func TestSceneHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(map[string]any)
		wantMessage string
	}{
		{name: "unknown category", mutate: func(b map[string]any) { b["category"] = "epilogue" }, wantMessage: `invalid category "epilogue"`},
		{name: "npc bounds inverted", mutate: func(b map[string]any) { b["min_player_npcs"] = 4; b["max_player_npcs"] = 2 }, wantMessage: "max_player_npcs must not be less than min_player_npcs"},
		{name: "missing name", mutate: func(b map[string]any) { b["name"] = " " }, wantMessage: "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			b := sceneBody("palace_intro")
			tt.mutate(b)
			rr := env.do(t, http.MethodPost, "/api/scenes", b)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantMessage, errorMessage(t, rr))
		})
	}
}

func TestSceneHandler_LiteralRoutesBeforeID(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "/api/scenes", sceneBody("palace_intro"))
	env.create(t, "/api/cards", cardBody("royal_seal"))
	player := npcBody("scribe")
	player["npc_type"] = "player_npc"
	env.create(t, "/api/npcs", player)
	env.create(t, "/api/npcs", npcBody("guard"))

	rr := env.do(t, http.MethodGet, "/api/scenes/list-all", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []sceneSummary{{SceneID: "palace_intro", Name: "Scene palace_intro", Category: game.SceneCategoryMainStory}}, decode[[]sceneSummary](t, rr))

	rr = env.do(t, http.MethodGet, "/api/scenes/available-cards", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cards := decode[[]cardSummary](t, rr)
	require.Len(t, cards, 1)
	assert.Equal(t, "royal_seal", cards[0].CardID)

	rr = env.do(t, http.MethodGet, "/api/scenes/available-player-npcs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	players := decode[[]playerNPC](t, rr)
	require.Len(t, players, 1)
	assert.Equal(t, "NPC scribe", players[0].Name)
	assert.Equal(t, 1, players[0].Level)
	assert.Equal(t, "available", players[0].Status)
}

func TestSceneHandler_NPCs(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))
	npcID := env.create(t, "/api/npcs", npcBody("vizier"))
	path := "/api/scenes/" + sceneID + "/npcs"

	rr := env.do(t, http.MethodPost, path, map[string]any{"npc_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NPC not found", errorMessage(t, rr))

	rr = env.do(t, http.MethodPost, path, map[string]any{"npc_id": npcID, "role": "antagonist"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	link := decode[game.SceneNPC](t, rr)
	assert.Equal(t, "NPC vizier", link.Name)
	assert.Equal(t, "neutral", link.Behavior)
	assert.True(t, link.CanBeChallenged)

	rr = env.do(t, http.MethodPost, path, map[string]any{"npc_id": npcID})
	assert.Equal(t, http.StatusConflict, rr.Code)

	links := decode[[]game.SceneNPC](t, env.do(t, http.MethodGet, path, nil))
	require.Len(t, links, 1)
	assert.Equal(t, "antagonist", links[0].Role)
	assert.Equal(t, "NPC vizier", links[0].Name)

	sc := decode[game.Scene](t, env.do(t, http.MethodGet, "/api/scenes/"+sceneID, nil))
	assert.Equal(t, 1, sc.NPCCount)

	rr = env.do(t, http.MethodDelete, path+"/"+npcID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "NPC removed from scene successfully", decode[MessageResponse](t, rr).Message)

	rr = env.do(t, http.MethodDelete, path+"/"+npcID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Scene NPC not found", errorMessage(t, rr))
}

func TestSceneHandler_CardBindings(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))
	otherID := env.create(t, "/api/scenes", sceneBody("harbor"))
	cardID := env.create(t, "/api/cards", cardBody("royal_seal"))
	path := "/api/scenes/" + sceneID + "/card-bindings"

	rr := env.do(t, http.MethodPost, path, map[string]any{"card_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Card not found", errorMessage(t, rr))

	rr = env.do(t, http.MethodPost, path, map[string]any{"card_id": cardID, "binding_type": "sometimes"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, path, map[string]any{"card_id": cardID, "binding_type": "required"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[bindingCreated](t, rr)
	assert.Equal(t, "Card binding created successfully", created.Message)
	require.NotEmpty(t, created.BindingID)

	bindings := decode[[]game.SceneCardBinding](t, env.do(t, http.MethodGet, path, nil))
	require.Len(t, bindings, 1)
	assert.Equal(t, "Card royal_seal", bindings[0].CardName)
	assert.Equal(t, 1, bindings[0].MaxUsesPerScene)
	assert.InDelta(t, 1.0, bindings[0].SceneEffectModifier, 0.001)

	// A binding can only be removed through the scene it belongs to.
	rr = env.do(t, http.MethodDelete, "/api/scenes/"+otherID+"/card-bindings/"+created.BindingID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodDelete, path+"/"+created.BindingID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]game.SceneCardBinding](t, env.do(t, http.MethodGet, path, nil)))

	// Soft-deleted cards cannot be bound.
	env.do(t, http.MethodDelete, "/api/cards/"+cardID, nil)
	rr = env.do(t, http.MethodPost, path, map[string]any{"card_id": cardID})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSceneHandler_Requirements(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))
	path := "/api/scenes/" + sceneID + "/requirements"

	defaults := decode[game.AttributeRequirements](t, env.do(t, http.MethodGet, path, nil))
	assert.Len(t, defaults, len(game.RequirementAttributes))
	assert.Equal(t, 0, defaults["strength"])

	rr := env.do(t, http.MethodPost, path, map[string]int{"strength": 30, "stealth": 5})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[game.AttributeRequirements](t, rr)
	assert.Equal(t, 30, saved["strength"])
	assert.Equal(t, 5, saved["stealth"])

	// Saving replaces the whole set.
	env.do(t, http.MethodPost, path, map[string]int{"charisma": 12})
	got := decode[game.AttributeRequirements](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, 0, got["strength"])
	assert.Equal(t, 12, got["charisma"])

	rr = env.do(t, http.MethodPost, path, map[string]int{"luck": 3})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `unknown attribute "luck"`, errorMessage(t, rr))

	rr = env.do(t, http.MethodPost, path, map[string]int{"defense": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/scenes/missing/requirements", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Scene not found", errorMessage(t, rr))
}

func TestSceneHandler_Rewards(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))
	path := "/api/scenes/" + sceneID + "/rewards"

	rr := env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 15, decode[game.SceneReward](t, rr).SuccessAttributePoints)

	rr = env.do(t, http.MethodPost, path, map[string]int{"success_gold": 40})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[game.SceneReward](t, rr)
	assert.Equal(t, 40, saved.SuccessGold)
	assert.Equal(t, 100, saved.SuccessExperience)

	got := decode[game.SceneReward](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, 40, got.SuccessGold)
	assert.Equal(t, sceneID, got.SceneID)
}

func TestSceneHandler_ExtendedRewards(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))
	path := "/api/scenes/" + sceneID + "/extended-rewards"

	defaults := decode[game.SceneRewardExtended](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, game.HealthPenaltyFixed, defaults.FailureHealthPenaltyType)
	assert.Equal(t, []string{}, defaults.RewardCards)
	assert.InDelta(t, 1.0, defaults.PerformanceMultiplier, 0.001)

	rr := env.do(t, http.MethodPost, path, map[string]any{
		"success_gold":                40,
		"failure_health_penalty":      25,
		"failure_health_penalty_type": "percentage",
		"reward_cards":                []string{"royal_seal"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// A second save drops everything it does not repeat.
	env.do(t, http.MethodPost, path, map[string]any{"failure_strength_penalty": 3})
	got := decode[game.SceneRewardExtended](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, 3, got.FailureStrengthPenalty)
	assert.Equal(t, 0, got.SuccessGold)
	assert.Equal(t, game.HealthPenaltyFixed, got.FailureHealthPenaltyType)
	assert.Empty(t, got.RewardCards)

	rr = env.do(t, http.MethodPost, path, map[string]any{"failure_health_penalty": 150, "failure_health_penalty_type": "percentage"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "percentage health penalty must be between 0 and 100", errorMessage(t, rr))
}

func TestSceneHandler_DisplayConfig(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("harbor"))
	env.create(t, "/api/scenes", sceneBody("palace_intro"))
	path := "/api/scenes/" + sceneID + "/display-config"

	got := decode[game.DisplayConfig](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, game.DisplayConfig{PrerequisiteScenes: []string{}}, got)

	rr := env.do(t, http.MethodPost, path, game.DisplayConfig{CardCount: 4, PrerequisiteScenes: []string{"palace_intro"}, DaysRequired: 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodPost, path, game.DisplayConfig{CardCount: 9, PrerequisiteScenes: []string{"palace_intro", "ghost_ship"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Prerequisite scene 'ghost_ship' not found", errorMessage(t, rr))

	// The rejected save wrote nothing.
	got = decode[game.DisplayConfig](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, game.DisplayConfig{CardCount: 4, PrerequisiteScenes: []string{"palace_intro"}, DaysRequired: 2}, got)

	rr = env.do(t, http.MethodPost, path, game.DisplayConfig{CardCount: -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSceneHandler_Config(t *testing.T) {
	env := newTestEnv(t)
	body := sceneBody("palace_intro")
	body["narrator_prompt"] = "The court falls silent."
	sceneID := env.create(t, "/api/scenes", body)
	path := "/api/scenes/" + sceneID + "/config"

	rr := env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cfg := decode[game.SceneConfig](t, rr)
	assert.Equal(t, "palace_intro", cfg.SceneID)
	assert.Equal(t, "The court falls silent.", cfg.NarratorConfig["prompt"])
	assert.Equal(t, map[string]int{"min": 10, "max": 25}, cfg.ExpectedRounds)

	rr = env.do(t, http.MethodPut, path, map[string]any{"narrator_style": "ominous", "narrator_prompt": "Drums echo."})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cfg = decode[game.SceneConfig](t, rr)
	assert.Equal(t, "ominous", cfg.NarratorConfig["style"])
	assert.Equal(t, "Drums echo.", cfg.NarratorConfig["prompt"])

	// Later updates merge into what was saved.
	env.do(t, http.MethodPut, path, map[string]any{"narrator_trigger_frequency": 5})
	cfg = decode[game.SceneConfig](t, env.do(t, http.MethodGet, path, nil))
	assert.Equal(t, "ominous", cfg.NarratorConfig["style"])
	assert.InDelta(t, 5, cfg.NarratorConfig["trigger_frequency"], 0.001)

	rr = env.do(t, http.MethodPut, path, map[string]any{"narrator_trigger_frequency": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSceneHandler_Test(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))

	rr := env.do(t, http.MethodPost, "/api/scenes/"+sceneID+"/test", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[sceneTestResponse](t, rr)
	assert.Equal(t, "Scene test completed", res.Message)
	require.NotNil(t, res.Results)
	assert.True(t, res.Results.ConfigValid)
	assert.False(t, res.Results.AIPromptsValid)
	assert.Contains(t, res.Results.Warnings, "No narrator prompt defined")
}

func TestSceneHandler_AIConfigLinks(t *testing.T) {
	env := newTestEnv(t)
	sceneID := env.create(t, "/api/scenes", sceneBody("palace_intro"))
	configID := env.create(t, "/api/ai-configs", aiConfigBody("narrator_main"))
	path := "/api/scenes/" + sceneID + "/ai-configs"

	rr := env.do(t, http.MethodPost, path, map[string]any{"ai_config_id": configID, "execution_order": 2})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	link := decode[game.SceneAIConfig](t, rr)
	assert.Equal(t, "Config narrator_main", link.AIConfigName)
	assert.Equal(t, game.AITypeNarrator, link.AIType)
	assert.True(t, link.IsRequired)

	rr = env.do(t, http.MethodPost, path, map[string]any{"ai_config_id": configID})
	assert.Equal(t, http.StatusConflict, rr.Code)

	links := decode[[]game.SceneAIConfig](t, env.do(t, http.MethodGet, path, nil))
	require.Len(t, links, 1)
	assert.Equal(t, "Config narrator_main", links[0].AIConfigName)

	rr = env.do(t, http.MethodDelete, path+"/"+configID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(t, http.MethodDelete, path+"/"+configID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
