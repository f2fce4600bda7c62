package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

func TestAIConfigHandler_CRUD(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/ai-configs", aiConfigBody("narrator_main"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	cfg := decode[game.AIConfig](t, rr)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "admin", cfg.CreatedBy)
	_, err := uuid.Parse(cfg.ID)
	require.NoError(t, err)

	rr = env.do(t, http.MethodPost, "/api/ai-configs", aiConfigBody("narrator_main"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "AI config with this config_id already exists", errorMessage(t, rr))

	rr = env.do(t, http.MethodPut, "/api/ai-configs/"+cfg.ID, map[string]any{"system_prompt": "Be brief.", "version": "1.1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[game.AIConfig](t, rr)
	assert.Equal(t, "Be brief.", updated.SystemPrompt)
	assert.Equal(t, "1.1", updated.Version)
	assert.Equal(t, cfg.BasePrompt, updated.BasePrompt)

	rr = env.do(t, http.MethodPut, "/api/ai-configs/"+cfg.ID, map[string]any{"base_prompt": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/ai-configs/"+cfg.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "AI config deleted successfully", decode[MessageResponse](t, rr).Message)
	assert.Empty(t, decode[[]game.AIConfig](t, env.do(t, http.MethodGet, "/api/ai-configs", nil)))
}

func TestAIConfigHandler_IDChecks(t *testing.T) {
	env := newTestEnv(t)
	unknown := uuid.NewString()

	tests := []struct {
		method      string
		path        string
		body        any
		wantStatus  int
		wantMessage string
	}{
		{method: http.MethodGet, path: "/api/ai-configs/not-a-uuid", wantStatus: http.StatusBadRequest, wantMessage: "Invalid UUID format"},
		{method: http.MethodPut, path: "/api/ai-configs/not-a-uuid", body: map[string]any{}, wantStatus: http.StatusBadRequest, wantMessage: "Invalid UUID format"},
		{method: http.MethodDelete, path: "/api/ai-configs/not-a-uuid", wantStatus: http.StatusBadRequest, wantMessage: "Invalid UUID format"},
		{method: http.MethodGet, path: "/api/ai-configs/not-a-uuid/performance", wantStatus: http.StatusBadRequest, wantMessage: "Invalid UUID format"},
		{method: http.MethodGet, path: "/api/ai-configs/" + unknown, wantStatus: http.StatusNotFound, wantMessage: "AI config not found"},
		{method: http.MethodDelete, path: "/api/ai-configs/" + unknown, wantStatus: http.StatusNotFound, wantMessage: "AI config not found"},
		{method: http.MethodPost, path: "/api/ai-configs/" + unknown + "/optimize", wantStatus: http.StatusNotFound, wantMessage: "AI config not found"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := env.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, errorMessage(t, rr))
		})
	}
}

func TestAIConfigHandler_ListFilter(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "/api/ai-configs", aiConfigBody("narrator_main"))
	judge := aiConfigBody("judge")
	judge["ai_type"] = "evaluator"
	env.create(t, "/api/ai-configs", judge)

	rr := env.do(t, http.MethodGet, "/api/ai-configs?ai_type=evaluator", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]game.AIConfig](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "judge", list[0].ConfigID)

	rr = env.do(t, http.MethodGet, "/api/ai-configs?ai_type=oracle", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAIConfigHandler_Tools(t *testing.T) {
	env := newTestEnv(t)
	id := env.create(t, "/api/ai-configs", aiConfigBody("narrator_main"))

	rr := env.do(t, http.MethodGet, "/api/ai-configs/"+id+"/performance", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	perf := decode[game.AIPerformance](t, rr)
	assert.Equal(t, "narrator_main", perf.ConfigID)
	assert.Equal(t, []map[string]any{}, perf.RecentResponses)

	rr = env.do(t, http.MethodPost, "/api/ai-configs/"+id+"/test", map[string]string{"prompt": "Describe the throne room."})
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[game.AITestResult](t, rr)
	assert.True(t, res.Success)
	assert.Positive(t, res.TokensUsed)

	rr = env.do(t, http.MethodPost, "/api/ai-configs/"+id+"/test", "{")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/ai-configs/"+id+"/optimize", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	opt := decode[game.AIOptimizeResult](t, rr)
	assert.Equal(t, "Optimization suggestions generated", opt.Message)
	assert.Contains(t, opt.Optimizations, "Add a system prompt to pin the model's role")
}

func TestAIConfigHandler_Enums(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/api/ai-configs/types/enum", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	enums := decode[map[string][]game.EnumOption](t, rr)
	assert.Len(t, enums["ai_types"], len(game.AITypes))
}
