package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfigTemplate is a named, reusable snapshot of configuration.
// The shape of TemplateData depends on TemplateType.
type ConfigTemplate struct {
	ID             string           `json:"id"`
	TemplateID     string           `json:"template_id"`
	Name           string           `json:"name"`
	TemplateType   TemplateType     `json:"template_type"`
	Category       TemplateCategory `json:"category"`
	Description    string           `json:"description,omitempty"`
	Author         string           `json:"author,omitempty"`
	Version        string           `json:"version"`
	Tags           []string         `json:"tags"`
	TemplateData   map[string]any   `json:"template_data"`
	UsageCount     int              `json:"usage_count"`
	LastUsedAt     *int64           `json:"last_used_at"`
	MinGameVersion string           `json:"min_game_version,omitempty"`
	MaxGameVersion string           `json:"max_game_version,omitempty"`
	Dependencies   []string         `json:"dependencies,omitempty"`
	IsActive       bool             `json:"is_active"`
	IsPublic       bool             `json:"is_public"`
	IsOfficial     bool             `json:"is_official"`
	CreatedBy      string           `json:"created_by"`
	CreatedAt      int64            `json:"created_at"`
	UpdatedAt      int64            `json:"updated_at"`
}

type TemplateCreate struct {
	TemplateID     string           `json:"template_id"`
	Name           string           `json:"name"`
	TemplateType   TemplateType     `json:"template_type"`
	Category       TemplateCategory `json:"category"`
	Description    string           `json:"description"`
	Author         string           `json:"author"`
	Version        string           `json:"version"`
	Tags           []string         `json:"tags"`
	TemplateData   map[string]any   `json:"template_data"`
	MinGameVersion string           `json:"min_game_version"`
	MaxGameVersion string           `json:"max_game_version"`
	Dependencies   []string         `json:"dependencies"`
	IsPublic       bool             `json:"is_public"`
	IsOfficial     bool             `json:"is_official"`
}

func (c *TemplateCreate) Validate() error {
	if strings.TrimSpace(c.TemplateID) == "" {
		return Invalid("template_id", "template_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "name is required")
	}
	if _, err := Parse("template_type", string(c.TemplateType), TemplateTypes); err != nil {
		return err
	}
	return checkEnum("category", c.Category, TemplateCategories)
}

func (c *TemplateCreate) Template() *ConfigTemplate {
	t := &ConfigTemplate{
		TemplateID:     strings.TrimSpace(c.TemplateID),
		Name:           c.Name,
		TemplateType:   c.TemplateType,
		Category:       c.Category,
		Description:    c.Description,
		Author:         c.Author,
		Version:        c.Version,
		Tags:           c.Tags,
		TemplateData:   c.TemplateData,
		MinGameVersion: c.MinGameVersion,
		MaxGameVersion: c.MaxGameVersion,
		Dependencies:   c.Dependencies,
		IsActive:       true,
		IsPublic:       c.IsPublic,
		IsOfficial:     c.IsOfficial,
		CreatedBy:      "admin",
	}
	if t.Category == "" {
		t.Category = TemplateCategoryDialogue
	}
	if t.Version == "" {
		t.Version = "1.0"
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.TemplateData == nil {
		t.TemplateData = map[string]any{}
	}
	return t
}

type TemplateUpdate struct {
	Name           *string           `json:"name"`
	Category       *TemplateCategory `json:"category"`
	Description    *string           `json:"description"`
	Author         *string           `json:"author"`
	Version        *string           `json:"version"`
	Tags           []string          `json:"tags"`
	TemplateData   map[string]any    `json:"template_data"`
	MinGameVersion *string           `json:"min_game_version"`
	MaxGameVersion *string           `json:"max_game_version"`
	Dependencies   []string          `json:"dependencies"`
	IsActive       *bool             `json:"is_active"`
	IsPublic       *bool             `json:"is_public"`
	IsOfficial     *bool             `json:"is_official"`
}

func (u *TemplateUpdate) Apply(t *ConfigTemplate) error {
	if u.Category != nil {
		if _, err := Parse("category", string(*u.Category), TemplateCategories); err != nil {
			return err
		}
	}
	set(&t.Name, u.Name)
	set(&t.Category, u.Category)
	set(&t.Description, u.Description)
	set(&t.Author, u.Author)
	set(&t.Version, u.Version)
	set(&t.MinGameVersion, u.MinGameVersion)
	set(&t.MaxGameVersion, u.MaxGameVersion)
	set(&t.IsActive, u.IsActive)
	set(&t.IsPublic, u.IsPublic)
	set(&t.IsOfficial, u.IsOfficial)
	if u.Tags != nil {
		t.Tags = u.Tags
	}
	if u.TemplateData != nil {
		t.TemplateData = u.TemplateData
	}
	if u.Dependencies != nil {
		t.Dependencies = u.Dependencies
	}
	return nil
}

// FromSceneRequest asks for a snapshot of a scene.
type FromSceneRequest struct {
	SceneID      string   `json:"scene_id"`
	TemplateName string   `json:"template_name"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
}

func (r *FromSceneRequest) Validate() error {
	if strings.TrimSpace(r.SceneID) == "" {
		return Invalid("scene_id", "scene_id is required")
	}
	if strings.TrimSpace(r.TemplateName) == "" {
		return Invalid("template_name", "template_name is required")
	}
	return nil
}

// SceneSnapshot captures a scene, its NPC links, AI settings and basic
// rewards as template data. ai and reward may be nil.
func SceneSnapshot(s *Scene, npcs []SceneNPC, ai *SceneAISettings, reward *SceneReward) map[string]any {
	npcConfigs := make([]map[string]any, 0, len(npcs))
	for _, n := range npcs {
		npcConfigs = append(npcConfigs, map[string]any{
			"role":                    n.Role,
			"initial_position":        n.InitialPosition,
			"speaking_order_priority": n.SpeakingPriority,
			"special_behavior":        n.SpecialBehavior,
			"can_be_challenged":       n.CanBeChallenged,
			"can_be_converted":        n.CanBeConverted,
			"attribute_modifiers":     n.AttributeModifiers,
		})
	}

	aiConfigs := make([]map[string]any, 0, 1)
	if ai != nil {
		aiConfigs = append(aiConfigs, map[string]any{
			"narrator_prompt":            ai.NarratorPrompt,
			"narrator_style":             ai.NarratorStyle,
			"narrator_trigger_frequency": ai.NarratorTriggerFrequency,
			"evaluator_weights":          ai.EvaluatorWeights,
		})
	}

	if reward == nil {
		reward = DefaultSceneReward(s.ID)
	}

	return map[string]any{
		"scene_config": map[string]any{
			"category":           string(s.Category),
			"scene_type":         s.SceneType,
			"difficulty_level":   s.DifficultyLevel,
			"estimated_duration": s.EstimatedDuration,
			"is_repeatable":      s.IsRepeatable,
			"max_attempts":       s.MaxAttempts,
			"cooldown_hours":     s.CooldownHours,
			"location":           s.Location,
			"time_of_day":        string(s.TimeOfDay),
			"weather":            s.Weather,
		},
		"npc_configs": npcConfigs,
		"ai_configs":  aiConfigs,
		"reward_config": map[string]any{
			"success_attribute_points": reward.SuccessAttributePoints,
			"success_experience":       reward.SuccessExperience,
			"success_reputation":       reward.SuccessReputation,
			"success_gold":             reward.SuccessGold,
			"failure_reputation":       reward.FailureReputation,
		},
	}
}

// TemplateFromScene builds a scene template. The timestamp keeps ids
// unique per second.
func TemplateFromScene(req *FromSceneRequest, s *Scene, data map[string]any, now int64) *ConfigTemplate {
	category, err := Parse("category", string(s.Category), TemplateCategories)
	if err != nil {
		category = TemplateCategoryDialogue
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return &ConfigTemplate{
		TemplateID:   fmt.Sprintf("scene_template_%d", now),
		Name:         req.TemplateName,
		TemplateType: TemplateTypeScene,
		Category:     category,
		Description:  req.Description,
		Version:      "1.0",
		Tags:         tags,
		TemplateData: data,
		IsActive:     true,
		CreatedBy:    "admin",
	}
}

// TemplateFromAIConfig snapshots one AI config.
func TemplateFromAIConfig(c *AIConfig, name, description string, now int64) *ConfigTemplate {
	if name == "" {
		name = c.Name + " template"
	}
	return &ConfigTemplate{
		TemplateID:   fmt.Sprintf("ai_template_%d", now),
		Name:         name,
		TemplateType: TemplateTypeAIConfig,
		Category:     TemplateCategoryDialogue,
		Description:  description,
		Version:      "1.0",
		Tags:         []string{string(c.AIType)},
		TemplateData: map[string]any{
			"ai_type":           string(c.AIType),
			"base_prompt":       c.BasePrompt,
			"system_prompt":     c.SystemPrompt,
			"model_settings":    c.ModelSettings,
			"character_config":  c.CharacterConfig,
			"evaluation_config": c.EvaluationConfig,
			"generation_config": c.GenerationConfig,
			"narration_config":  c.NarrationConfig,
			"version":           c.Version,
		},
		IsActive:  true,
		CreatedBy: "admin",
	}
}

// ApplySceneTemplate copies scene_type, difficulty_level and
// estimated_duration from a scene template onto s. Keys missing from the
// snapshot leave the target untouched. Nothing else is reapplied.
func ApplySceneTemplate(t *ConfigTemplate, s *Scene) error {
	if t.TemplateType != TemplateTypeScene {
		return Invalid("template_type", "Template type must be SCENE")
	}
	cfg, _ := t.TemplateData["scene_config"].(map[string]any)
	if cfg == nil {
		return nil
	}
	if v, ok := cfg["scene_type"].(string); ok {
		s.SceneType = v
	}
	if v, ok := toInt(cfg["difficulty_level"]); ok {
		s.DifficultyLevel = v
	}
	if v, ok := toInt(cfg["estimated_duration"]); ok {
		s.EstimatedDuration = v
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
