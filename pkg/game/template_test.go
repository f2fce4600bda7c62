package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySceneTemplate_CopiesOnlyThreeFields(t *testing.T) {
	source := &Scene{
		ID: "src", SceneID: "palace_intrigue", Category: SceneCategoryMainStory,
		SceneType: "negotiation", DifficultyLevel: 4, EstimatedDuration: 45,
		Location: "throne room", MaxAttempts: 3, IsRepeatable: true,
	}
	data := SceneSnapshot(source, nil, nil, nil)

	// Round-trip through JSON the way a stored template would be read back.
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))

	tmpl := &ConfigTemplate{TemplateType: TemplateTypeScene, TemplateData: stored}
	target := &Scene{
		ID: "dst", SceneID: "market_day", Name: "Market Day", Category: SceneCategoryRandom,
		SceneType: "exploration", DifficultyLevel: 1, EstimatedDuration: 10,
		Location: "bazaar", MaxAttempts: 1,
	}

	require.NoError(t, ApplySceneTemplate(tmpl, target))

	assert.Equal(t, "negotiation", target.SceneType)
	assert.Equal(t, 4, target.DifficultyLevel)
	assert.Equal(t, 45, target.EstimatedDuration)
	assert.Equal(t, "bazaar", target.Location)
	assert.Equal(t, 1, target.MaxAttempts)
	assert.False(t, target.IsRepeatable)
	assert.Equal(t, SceneCategoryRandom, target.Category)
}

func TestApplySceneTemplate_WrongType(t *testing.T) {
	tmpl := &ConfigTemplate{TemplateType: TemplateTypeAIConfig, TemplateData: map[string]any{}}
	err := ApplySceneTemplate(tmpl, &Scene{})

	require.Error(t, err)
	assert.Equal(t, "Template type must be SCENE", err.Error())
}

func TestApplySceneTemplate_MissingKeysLeaveTarget(t *testing.T) {
	tmpl := &ConfigTemplate{
		TemplateType: TemplateTypeScene,
		TemplateData: map[string]any{"scene_config": map[string]any{"difficulty_level": 2}},
	}
	target := &Scene{SceneType: "duel", DifficultyLevel: 5, EstimatedDuration: 30}

	require.NoError(t, ApplySceneTemplate(tmpl, target))
	assert.Equal(t, "duel", target.SceneType)
	assert.Equal(t, 2, target.DifficultyLevel)
	assert.Equal(t, 30, target.EstimatedDuration)
}

func TestSceneSnapshot_Shape(t *testing.T) {
	s := &Scene{ID: "s1", SceneType: "court", DifficultyLevel: 2}
	npcs := []SceneNPC{{Role: "antagonist", SpeakingPriority: 2, CanBeChallenged: true}}
	ai := &SceneAISettings{NarratorPrompt: "Describe the court", NarratorTriggerFrequency: 3}

	data := SceneSnapshot(s, npcs, ai, nil)

	npcConfigs := data["npc_configs"].([]map[string]any)
	require.Len(t, npcConfigs, 1)
	assert.Equal(t, "antagonist", npcConfigs[0]["role"])
	assert.Equal(t, 2, npcConfigs[0]["speaking_order_priority"])

	aiConfigs := data["ai_configs"].([]map[string]any)
	require.Len(t, aiConfigs, 1)
	assert.Equal(t, "Describe the court", aiConfigs[0]["narrator_prompt"])

	reward := data["reward_config"].(map[string]any)
	assert.Equal(t, 15, reward["success_attribute_points"])
	assert.Equal(t, 100, reward["success_experience"])
	assert.Equal(t, 10, reward["success_reputation"])
}

func TestTemplateFromScene_CategoryFallback(t *testing.T) {
	req := &FromSceneRequest{SceneID: "s", TemplateName: "Court"}
	tmpl := TemplateFromScene(req, &Scene{Category: SceneCategoryFaction}, map[string]any{}, 1700000000)

	assert.Equal(t, "scene_template_1700000000", tmpl.TemplateID)
	assert.Equal(t, TemplateTypeScene, tmpl.TemplateType)
	assert.Equal(t, TemplateCategoryDialogue, tmpl.Category)
	assert.Equal(t, []string{}, tmpl.Tags)
}

func TestTemplateFromAIConfig(t *testing.T) {
	cfg := &AIConfig{ConfigID: "narr", Name: "Narrator", AIType: AITypeNarrator, BasePrompt: "You narrate.", Version: "2.1"}
	tmpl := TemplateFromAIConfig(cfg, "", "desc", 42)

	assert.Equal(t, "ai_template_42", tmpl.TemplateID)
	assert.Equal(t, "Narrator template", tmpl.Name)
	assert.Equal(t, []string{"narrator"}, tmpl.Tags)
	assert.Equal(t, "You narrate.", tmpl.TemplateData["base_prompt"])
	assert.Equal(t, "2.1", tmpl.TemplateData["version"])
}
