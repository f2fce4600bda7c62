package game

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// RequirementAttributes are the attribute names a scene can gate on.
var RequirementAttributes = []string{
	"strength", "defense", "intelligence", "charisma", "loyalty",
	"influence", "command", "stealth", "health",
}

// SceneRequirement is one entry condition of a scene.
type SceneRequirement struct {
	ID                string          `json:"id"`
	SceneID           string          `json:"scene_id"`
	RequirementType   RequirementType `json:"requirement_type"`
	RequirementName   string          `json:"requirement_name"`
	Description       string          `json:"description,omitempty"`
	Operator          Operator        `json:"operator"`
	RequiredValue     json.RawMessage `json:"required_value"`
	IsMandatory       bool            `json:"is_mandatory"`
	Priority          int             `json:"priority"`
	ErrorMessage      string          `json:"error_message,omitempty"`
	AllowSubstitution bool            `json:"allow_substitution"`
	SubstitutionRules map[string]any  `json:"substitution_rules,omitempty"`
	IsDynamic         bool            `json:"is_dynamic"`
	DynamicFormula    string          `json:"dynamic_formula,omitempty"`
	CreatedAt         int64           `json:"created_at"`
}

// AttributeRequirements maps each attribute name to its minimum.
type AttributeRequirements map[string]int

// DefaultAttributeRequirements returns every attribute at zero.
func DefaultAttributeRequirements() AttributeRequirements {
	reqs := make(AttributeRequirements, len(RequirementAttributes))
	for _, name := range RequirementAttributes {
		reqs[name] = 0
	}
	return reqs
}

func (a AttributeRequirements) Validate() error {
	for name, v := range a {
		if !slices.Contains(RequirementAttributes, name) {
			return &ValidationError{Field: name, Message: fmt.Sprintf("unknown attribute %q", name), err: ErrInvalidEnum}
		}
		if v < 0 {
			return Invalid(name, fmt.Sprintf("%s requirement must not be negative", name))
		}
	}
	return nil
}

// Rows converts the map into stored rows, dropping zero values.
// Rows come out in attribute order.
func (a AttributeRequirements) Rows(sceneID string) []SceneRequirement {
	var rows []SceneRequirement
	for _, name := range RequirementAttributes {
		v := a[name]
		if v <= 0 {
			continue
		}
		rows = append(rows, SceneRequirement{
			SceneID:         sceneID,
			RequirementType: RequirementAttribute,
			RequirementName: name,
			Description:     fmt.Sprintf("Requires %s of at least %d", name, v),
			Operator:        OpGreaterEqual,
			RequiredValue:   json.RawMessage(fmt.Sprintf("%d", v)),
			IsMandatory:     true,
			Priority:        1,
		})
	}
	return rows
}

// Overlay reads stored attribute rows on top of the zero defaults.
func (a AttributeRequirements) Overlay(rows []SceneRequirement) {
	for _, row := range rows {
		if row.RequirementType != RequirementAttribute {
			continue
		}
		var v float64
		if err := json.Unmarshal(row.RequiredValue, &v); err != nil {
			continue
		}
		a[row.RequirementName] = int(v)
	}
}

// SceneCardBinding ties a card to a scene with usage limits.
type SceneCardBinding struct {
	ID                   string         `json:"id"`
	SceneID              string         `json:"scene_id"`
	CardID               string         `json:"card_id"`
	CardName             string         `json:"card_name"`
	BindingType          BindingType    `json:"binding_type"`
	MaxUsesPerScene      int            `json:"max_uses_per_scene"`
	CooldownRounds       int            `json:"cooldown_rounds"`
	SceneEffectModifier  float64        `json:"scene_effect_modifier"`
	SpecialEffects       map[string]any `json:"special_effects,omitempty"`
	UnlockConditions     map[string]any `json:"unlock_conditions,omitempty"`
	VisibilityConditions map[string]any `json:"visibility_conditions,omitempty"`
	UsageRewardBonus     map[string]any `json:"usage_reward_bonus,omitempty"`
	CreatedAt            int64          `json:"created_at"`
}

type SceneCardBindingCreate struct {
	CardID               string         `json:"card_id"`
	BindingType          BindingType    `json:"binding_type"`
	MaxUsesPerScene      *int           `json:"max_uses_per_scene"`
	CooldownRounds       int            `json:"cooldown_rounds"`
	SceneEffectModifier  *float64       `json:"scene_effect_modifier"`
	SpecialEffects       map[string]any `json:"special_effects"`
	UnlockConditions     map[string]any `json:"unlock_conditions"`
	VisibilityConditions map[string]any `json:"visibility_conditions"`
	UsageRewardBonus     map[string]any `json:"usage_reward_bonus"`
}

func (c *SceneCardBindingCreate) Validate() error {
	if strings.TrimSpace(c.CardID) == "" {
		return Invalid("card_id", "card_id is required")
	}
	if err := checkEnum("binding_type", c.BindingType, BindingTypes); err != nil {
		return err
	}
	if c.MaxUsesPerScene != nil && *c.MaxUsesPerScene < 0 {
		return Invalid("max_uses_per_scene", "max_uses_per_scene must not be negative")
	}
	return nil
}

func (c *SceneCardBindingCreate) Binding(sceneID string) *SceneCardBinding {
	b := &SceneCardBinding{
		SceneID:              sceneID,
		CardID:               c.CardID,
		BindingType:          c.BindingType,
		MaxUsesPerScene:      intOr(c.MaxUsesPerScene, 1),
		CooldownRounds:       c.CooldownRounds,
		SceneEffectModifier:  1.0,
		SpecialEffects:       c.SpecialEffects,
		UnlockConditions:     c.UnlockConditions,
		VisibilityConditions: c.VisibilityConditions,
		UsageRewardBonus:     c.UsageRewardBonus,
	}
	set(&b.SceneEffectModifier, c.SceneEffectModifier)
	if b.BindingType == "" {
		b.BindingType = BindingOptional
	}
	return b
}

// SceneNPC attaches an NPC to a scene with its role in that scene.
type SceneNPC struct {
	ID                 string         `json:"id"`
	SceneID            string         `json:"scene_id"`
	NPCID              string         `json:"npc_id"`
	Name               string         `json:"name"`
	Role               string         `json:"role"`
	Behavior           string         `json:"behavior"`
	SpeakingPriority   int            `json:"speaking_priority"`
	CanBeChallenged    bool           `json:"can_be_challenged"`
	CanBeConverted     bool           `json:"can_be_converted"`
	InitialPosition    string         `json:"initial_position"`
	SpecialBehavior    map[string]any `json:"special_behavior,omitempty"`
	AttributeModifiers map[string]any `json:"attribute_modifiers,omitempty"`
	CreatedAt          int64          `json:"created_at"`
}

type SceneNPCCreate struct {
	NPCID              string         `json:"npc_id"`
	Role               string         `json:"role"`
	Behavior           string         `json:"behavior"`
	SpeakingPriority   *int           `json:"speaking_priority"`
	CanBeChallenged    *bool          `json:"can_be_challenged"`
	CanBeConverted     bool           `json:"can_be_converted"`
	InitialPosition    string         `json:"initial_position"`
	SpecialBehavior    map[string]any `json:"special_behavior"`
	AttributeModifiers map[string]any `json:"attribute_modifiers"`
}

func (c *SceneNPCCreate) Validate() error {
	if strings.TrimSpace(c.NPCID) == "" {
		return Invalid("npc_id", "npc_id is required")
	}
	return nil
}

func (c *SceneNPCCreate) SceneNPC(sceneID string) *SceneNPC {
	link := &SceneNPC{
		SceneID:            sceneID,
		NPCID:              c.NPCID,
		Role:               c.Role,
		Behavior:           c.Behavior,
		SpeakingPriority:   intOr(c.SpeakingPriority, 1),
		CanBeChallenged:    true,
		CanBeConverted:     c.CanBeConverted,
		InitialPosition:    c.InitialPosition,
		SpecialBehavior:    c.SpecialBehavior,
		AttributeModifiers: c.AttributeModifiers,
	}
	set(&link.CanBeChallenged, c.CanBeChallenged)
	if link.Role == "" {
		link.Role = "supporter"
	}
	if link.Behavior == "" {
		link.Behavior = "neutral"
	}
	return link
}

// SceneReward is the basic success/failure payout of a scene.
type SceneReward struct {
	SceneID                string `json:"scene_id"`
	SuccessAttributePoints int    `json:"success_attribute_points"`
	SuccessExperience      int    `json:"success_experience"`
	SuccessReputation      int    `json:"success_reputation"`
	SuccessGold            int    `json:"success_gold"`
	FailureReputation      int    `json:"failure_reputation"`
	UpdatedAt              int64  `json:"updated_at"`
}

// DefaultSceneReward is what a scene pays out before anyone configures it.
func DefaultSceneReward(sceneID string) *SceneReward {
	return &SceneReward{
		SceneID:                sceneID,
		SuccessAttributePoints: 15,
		SuccessExperience:      100,
		SuccessReputation:      10,
	}
}

// SceneRewardUpdate carries a basic reward save. Missing keys take the defaults.
type SceneRewardUpdate struct {
	SuccessAttributePoints *int `json:"success_attribute_points"`
	SuccessExperience      *int `json:"success_experience"`
	SuccessReputation      *int `json:"success_reputation"`
	SuccessGold            *int `json:"success_gold"`
	FailureReputation      *int `json:"failure_reputation"`
}

func (u *SceneRewardUpdate) Reward(sceneID string) *SceneReward {
	r := DefaultSceneReward(sceneID)
	set(&r.SuccessAttributePoints, u.SuccessAttributePoints)
	set(&r.SuccessExperience, u.SuccessExperience)
	set(&r.SuccessReputation, u.SuccessReputation)
	set(&r.SuccessGold, u.SuccessGold)
	set(&r.FailureReputation, u.FailureReputation)
	return r
}

// SceneRewardExtended holds the full payout and penalty table.
type SceneRewardExtended struct {
	SceneID string `json:"scene_id"`

	SuccessAttributePoints int `json:"success_attribute_points"`
	SuccessExperience      int `json:"success_experience"`
	SuccessReputation      int `json:"success_reputation"`
	SuccessGold            int `json:"success_gold"`
	FailureReputation      int `json:"failure_reputation"`

	FailureStrengthPenalty     int `json:"failure_strength_penalty"`
	FailureDefensePenalty      int `json:"failure_defense_penalty"`
	FailureIntelligencePenalty int `json:"failure_intelligence_penalty"`
	FailureCharismaPenalty     int `json:"failure_charisma_penalty"`
	FailureLoyaltyPenalty      int `json:"failure_loyalty_penalty"`
	FailureInfluencePenalty    int `json:"failure_influence_penalty"`
	FailureCommandPenalty      int `json:"failure_command_penalty"`
	FailureStealthPenalty      int `json:"failure_stealth_penalty"`

	FailureHealthPenalty      int               `json:"failure_health_penalty"`
	FailureHealthPenaltyType  HealthPenaltyType `json:"failure_health_penalty_type"`
	FailurePenaltyDescription string            `json:"failure_penalty_description"`

	RewardCards            []string       `json:"reward_cards"`
	RewardNPCs             []string       `json:"reward_npcs"`
	SpecialRewards         map[string]any `json:"special_rewards"`
	UnlockContent          []string       `json:"unlock_content"`
	PerfectCompletionBonus map[string]any `json:"perfect_completion_bonus"`
	PerformanceMultiplier  float64        `json:"performance_multiplier"`

	UpdatedAt int64 `json:"updated_at"`
}

// DefaultSceneRewardExtended is the all-zero shape returned before a save.
// Decoding a save request on top of it gives full-replace semantics.
func DefaultSceneRewardExtended(sceneID string) *SceneRewardExtended {
	return &SceneRewardExtended{
		SceneID:                  sceneID,
		FailureHealthPenaltyType: HealthPenaltyFixed,
		RewardCards:              []string{},
		RewardNPCs:               []string{},
		SpecialRewards:           map[string]any{},
		UnlockContent:            []string{},
		PerfectCompletionBonus:   map[string]any{},
		PerformanceMultiplier:    1.0,
	}
}

func (r *SceneRewardExtended) Validate() error {
	if _, err := Parse("failure_health_penalty_type", string(r.FailureHealthPenaltyType), HealthPenaltyTypes); err != nil {
		return err
	}
	if r.FailureHealthPenaltyType == HealthPenaltyPercentage && (r.FailureHealthPenalty < 0 || r.FailureHealthPenalty > 100) {
		return Invalid("failure_health_penalty", "percentage health penalty must be between 0 and 100")
	}
	if r.PerformanceMultiplier < 0 {
		return Invalid("performance_multiplier", "performance_multiplier must not be negative")
	}
	return nil
}

// SceneAISettings are the narrator and evaluator settings of one scene.
type SceneAISettings struct {
	SceneID                   string         `json:"scene_id"`
	NarratorPrompt            string         `json:"narrator_prompt"`
	NarratorStyle             string         `json:"narrator_style"`
	NarratorTriggerFrequency  int            `json:"narrator_trigger_frequency"`
	EvaluatorWeights          map[string]any `json:"evaluator_weights"`
	EvaluatorThresholds       map[string]any `json:"evaluator_thresholds"`
	SuccessCriteria           map[string]any `json:"success_criteria"`
	OptionGenerationStyle     string         `json:"option_generation_style"`
	EffectValueRanges         map[string]any `json:"effect_value_ranges"`
	SceneSpecificInstructions string         `json:"scene_specific_instructions"`
	UpdatedAt                 int64          `json:"updated_at"`
}

func DefaultSceneAISettings(sceneID string) *SceneAISettings {
	return &SceneAISettings{
		SceneID:                  sceneID,
		NarratorTriggerFrequency: 3,
		EvaluatorWeights:         map[string]any{},
		EvaluatorThresholds:      map[string]any{},
		SuccessCriteria:          map[string]any{},
		EffectValueRanges:        map[string]any{},
	}
}

func (s *SceneAISettings) Validate() error {
	if s.NarratorTriggerFrequency < 1 {
		return Invalid("narrator_trigger_frequency", "narrator_trigger_frequency must be at least 1")
	}
	return nil
}

// SceneConfig is the assembled runtime configuration of a scene.
type SceneConfig struct {
	SceneID           string         `json:"scene_id"`
	ConfigVersion     string         `json:"config_version"`
	Status            SceneStatus    `json:"status"`
	NarratorConfig    map[string]any `json:"narrator_config"`
	EvaluatorConfig   map[string]any `json:"evaluator_config"`
	ExpectedRounds    map[string]int `json:"expected_rounds"`
	ScoringWeights    map[string]any `json:"scoring_weights"`
	TriggerThresholds map[string]int `json:"trigger_thresholds"`
}

// BuildSceneConfig merges a scene with its AI settings. Settings may be nil.
func BuildSceneConfig(s *Scene, ai *SceneAISettings) *SceneConfig {
	if ai == nil {
		ai = DefaultSceneAISettings(s.ID)
	}
	prompt := ai.NarratorPrompt
	if prompt == "" {
		prompt = s.NarratorPrompt
	}
	evaluator := map[string]any{
		"weights":          ai.EvaluatorWeights,
		"thresholds":       ai.EvaluatorThresholds,
		"success_criteria": ai.SuccessCriteria,
	}
	for k, v := range s.EvaluatorConfig {
		evaluator[k] = v
	}
	return &SceneConfig{
		SceneID:       s.SceneID,
		ConfigVersion: "1.0",
		Status:        s.Status,
		NarratorConfig: map[string]any{
			"prompt":                  prompt,
			"style":                   ai.NarratorStyle,
			"trigger_frequency":       ai.NarratorTriggerFrequency,
			"option_generation_style": ai.OptionGenerationStyle,
			"effect_value_ranges":     ai.EffectValueRanges,
			"instructions":            ai.SceneSpecificInstructions,
		},
		EvaluatorConfig: evaluator,
		ExpectedRounds:  map[string]int{"min": 10, "max": 25},
		ScoringWeights: map[string]any{
			"story_progress":   0.4,
			"dialogue_quality": 0.3,
			"tension_level":    0.3,
		},
		TriggerThresholds: map[string]int{"dice_trigger": 75, "tension_trigger": 85},
	}
}

// SceneTestResult is the outcome of a dry run of a scene's configuration.
type SceneTestResult struct {
	ConfigValid       bool     `json:"config_valid"`
	AIPromptsValid    bool     `json:"ai_prompts_valid"`
	RequirementsValid bool     `json:"requirements_valid"`
	Warnings          []string `json:"warnings"`
}

// TestScene checks that a scene has what a run needs. It does not call
// any AI service.
func TestScene(s *Scene, ai *SceneAISettings, reqs []SceneRequirement, npcs []SceneNPC) *SceneTestResult {
	res := &SceneTestResult{ConfigValid: true, RequirementsValid: true, Warnings: []string{}}
	prompt := s.NarratorPrompt
	if ai != nil && ai.NarratorPrompt != "" {
		prompt = ai.NarratorPrompt
	}
	res.AIPromptsValid = strings.TrimSpace(prompt) != ""
	if !res.AIPromptsValid {
		res.Warnings = append(res.Warnings, "No narrator prompt defined")
	}
	for _, r := range reqs {
		if !r.Operator.Valid() || !r.RequirementType.Valid() {
			res.RequirementsValid = false
			res.Warnings = append(res.Warnings, fmt.Sprintf("Requirement %q is malformed", r.RequirementName))
		}
	}
	if len(npcs) < s.MinPlayerNPCs {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Scene has %d NPCs, fewer than the minimum of %d", len(npcs), s.MinPlayerNPCs))
	}
	if s.MaxPlayerNPCs < s.MinPlayerNPCs {
		res.ConfigValid = false
		res.Warnings = append(res.Warnings, "max_player_npcs is less than min_player_npcs")
	}
	return res
}

// SceneAIConfig links a stored AI config to a scene.
type SceneAIConfig struct {
	ID                  string         `json:"id"`
	SceneID             string         `json:"scene_id"`
	AIConfigID          string         `json:"ai_config_id"`
	AIConfigName        string         `json:"ai_config_name"`
	AIType              AIType         `json:"ai_type"`
	ExecutionOrder      int            `json:"execution_order"`
	IsRequired          bool           `json:"is_required"`
	TriggerConditions   map[string]any `json:"trigger_conditions,omitempty"`
	SceneSpecificConfig map[string]any `json:"scene_specific_config,omitempty"`
	CreatedAt           int64          `json:"created_at"`
}

type SceneAIConfigCreate struct {
	AIConfigID          string         `json:"ai_config_id"`
	ExecutionOrder      int            `json:"execution_order"`
	IsRequired          *bool          `json:"is_required"`
	TriggerConditions   map[string]any `json:"trigger_conditions"`
	SceneSpecificConfig map[string]any `json:"scene_specific_config"`
}

func (c *SceneAIConfigCreate) Validate() error {
	if strings.TrimSpace(c.AIConfigID) == "" {
		return Invalid("ai_config_id", "ai_config_id is required")
	}
	return nil
}

func (c *SceneAIConfigCreate) Link(sceneID string) *SceneAIConfig {
	link := &SceneAIConfig{
		SceneID:             sceneID,
		AIConfigID:          c.AIConfigID,
		ExecutionOrder:      c.ExecutionOrder,
		IsRequired:          true,
		TriggerConditions:   c.TriggerConditions,
		SceneSpecificConfig: c.SceneSpecificConfig,
	}
	set(&link.IsRequired, c.IsRequired)
	return link
}
