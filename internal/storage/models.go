package storage

import "github.com/uptrace/bun"

// Row types mirror migrations/0001_schema.sql column for column. Map and
// slice fields are stored as JSON text.

type npcRow struct {
	bun.BaseModel `bun:"table:npcs,alias:n"`

	ID          string `bun:"id,pk"`
	NPCID       string `bun:"npc_id"`
	Name        string `bun:"name"`
	NPCType     string `bun:"npc_type"`
	Tier        string `bun:"tier"`
	Faction     string `bun:"faction"`
	Avatar      string `bun:"avatar"`
	Description string `bun:"description"`
	Appearance  string `bun:"appearance"`

	Intelligence int `bun:"intelligence"`
	Strength     int `bun:"strength"`
	Defense      int `bun:"defense"`
	HPMax        int `bun:"hp_max"`
	Charisma     int `bun:"charisma"`
	Loyalty      int `bun:"loyalty"`
	Fear         int `bun:"fear"`
	Influence    int `bun:"influence"`
	Command      int `bun:"command"`
	Stealth      int `bun:"stealth"`

	Category               string         `bun:"category"`
	CustomAttributes       map[string]any `bun:"custom_attributes"`
	PersonalityTraits      []string       `bun:"personality_traits"`
	PersonalityDescription string         `bun:"personality_description"`
	SpeakingStyle          string         `bun:"speaking_style"`
	EmotionThresholds      map[string]any `bun:"emotion_thresholds"`
	DialogueGoals          []string       `bun:"dialogue_goals"`

	AttributePointsDrop int              `bun:"attribute_points_drop"`
	GuaranteedDrops     []string         `bun:"guaranteed_drops"`
	RandomDrops         []map[string]any `bun:"random_drops"`
	SpecialRewards      map[string]any   `bun:"special_rewards"`
	CanConvert          bool             `bun:"can_convert"`
	ConvertConditions   map[string]any   `bun:"convert_conditions"`
	ConvertCost         int              `bun:"convert_cost"`

	IsActive  bool  `bun:"is_active"`
	CreatedAt int64 `bun:"created_at"`
	UpdatedAt int64 `bun:"updated_at"`
}

type cardRow struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID          string `bun:"id,pk"`
	CardID      string `bun:"card_id"`
	Name        string `bun:"name"`
	Rarity      string `bun:"rarity"`
	Category    string `bun:"category"`
	SubCategory string `bun:"sub_category"`
	Icon        string `bun:"icon"`
	CardArt     string `bun:"card_art"`
	FlavorText  string `bun:"flavor_text"`
	Description string `bun:"description"`

	EffectType        string         `bun:"effect_type"`
	Effects           map[string]any `bun:"effects"`
	AttributeBonusMin int            `bun:"attribute_bonus_min"`
	AttributeBonusMax int            `bun:"attribute_bonus_max"`
	BaseDuration      int            `bun:"base_duration"`
	CooldownTurns     int            `bun:"cooldown_turns"`

	BaseCost      int            `bun:"base_cost"`
	MaxStack      int            `bun:"max_stack"`
	UseTiming     string         `bun:"use_timing"`
	IsConsumable  bool           `bun:"is_consumable"`
	UseConditions map[string]any `bun:"use_conditions"`

	IsActive  bool  `bun:"is_active"`
	CreatedAt int64 `bun:"created_at"`
	UpdatedAt int64 `bun:"updated_at"`
}

type sceneRow struct {
	bun.BaseModel `bun:"table:scenes,alias:s"`

	ID              string `bun:"id,pk"`
	SceneID         string `bun:"scene_id"`
	Name            string `bun:"name"`
	Category        string `bun:"category"`
	Chapter         int    `bun:"chapter"`
	Description     string `bun:"description"`
	BackgroundImage string `bun:"background_image"`
	BackgroundMusic string `bun:"background_music"`
	Location        string `bun:"location"`
	TimeOfDay       string `bun:"time_of_day"`
	Weather         string `bun:"weather"`

	SceneType         string `bun:"scene_type"`
	DifficultyLevel   int    `bun:"difficulty_level"`
	EstimatedDuration int    `bun:"estimated_duration"`
	IsRepeatable      bool   `bun:"is_repeatable"`
	MaxAttempts       int    `bun:"max_attempts"`
	CooldownHours     int    `bun:"cooldown_hours"`

	Status string `bun:"status"`

	CardCount int `bun:"card_count"`
	// JSON-encoded list of scene_id values.
	PrerequisiteScenes string `bun:"prerequisite_scenes"`
	DaysRequired       int    `bun:"days_required"`

	NarratorPrompt        string         `bun:"narrator_prompt"`
	AttributeRequirements map[string]any `bun:"attribute_requirements"`
	CardRequirements      map[string]any `bun:"card_requirements"`
	Prerequisites         map[string]any `bun:"prerequisites"`
	Restrictions          map[string]any `bun:"restrictions"`

	MinPlayerNPCs       int      `bun:"min_player_npcs"`
	MaxPlayerNPCs       int      `bun:"max_player_npcs"`
	RecommendedNPCTypes []string `bun:"recommended_npc_types"`

	SpecialBonuses   map[string]any   `bun:"special_bonuses"`
	EvaluatorConfig  map[string]any   `bun:"evaluator_config"`
	SuccessRewards   map[string]any   `bun:"success_rewards"`
	FailurePenalties map[string]any   `bun:"failure_penalties"`
	DynamicEvents    []map[string]any `bun:"dynamic_events"`
	HiddenElements   map[string]any   `bun:"hidden_elements"`

	IsActive  bool  `bun:"is_active"`
	CreatedAt int64 `bun:"created_at"`
	UpdatedAt int64 `bun:"updated_at"`

	NPCCount int `bun:"npc_count,scanonly"`
}

type sceneNPCRow struct {
	bun.BaseModel `bun:"table:scene_npcs,alias:sn"`

	ID                 string         `bun:"id,pk"`
	SceneID            string         `bun:"scene_id"`
	NPCID              string         `bun:"npc_id"`
	Role               string         `bun:"role"`
	Behavior           string         `bun:"behavior"`
	SpeakingPriority   int            `bun:"speaking_priority"`
	CanBeChallenged    bool           `bun:"can_be_challenged"`
	CanBeConverted     bool           `bun:"can_be_converted"`
	InitialPosition    string         `bun:"initial_position"`
	SpecialBehavior    map[string]any `bun:"special_behavior"`
	AttributeModifiers map[string]any `bun:"attribute_modifiers"`
	CreatedAt          int64          `bun:"created_at"`
}

type sceneCardBindingRow struct {
	bun.BaseModel `bun:"table:scene_card_bindings,alias:scb"`

	ID                   string         `bun:"id,pk"`
	SceneID              string         `bun:"scene_id"`
	CardID               string         `bun:"card_id"`
	BindingType          string         `bun:"binding_type"`
	MaxUsesPerScene      int            `bun:"max_uses_per_scene"`
	CooldownRounds       int            `bun:"cooldown_rounds"`
	SceneEffectModifier  float64        `bun:"scene_effect_modifier"`
	SpecialEffects       map[string]any `bun:"special_effects"`
	UnlockConditions     map[string]any `bun:"unlock_conditions"`
	VisibilityConditions map[string]any `bun:"visibility_conditions"`
	UsageRewardBonus     map[string]any `bun:"usage_reward_bonus"`
	CreatedAt            int64          `bun:"created_at"`
}

type sceneRequirementRow struct {
	bun.BaseModel `bun:"table:scene_requirements,alias:sr"`

	ID              string `bun:"id,pk"`
	SceneID         string `bun:"scene_id"`
	RequirementType string `bun:"requirement_type"`
	RequirementName string `bun:"requirement_name"`
	Description     string `bun:"description"`
	Operator        string `bun:"operator"`
	// JSON text; attribute requirements hold a bare number.
	RequiredValue     string         `bun:"required_value"`
	IsMandatory       bool           `bun:"is_mandatory"`
	Priority          int            `bun:"priority"`
	ErrorMessage      string         `bun:"error_message"`
	AllowSubstitution bool           `bun:"allow_substitution"`
	SubstitutionRules map[string]any `bun:"substitution_rules"`
	IsDynamic         bool           `bun:"is_dynamic"`
	DynamicFormula    string         `bun:"dynamic_formula"`
	CreatedAt         int64          `bun:"created_at"`
}

type sceneRewardRow struct {
	bun.BaseModel `bun:"table:scene_rewards,alias:rw"`

	SceneID                string `bun:"scene_id,pk"`
	SuccessAttributePoints int    `bun:"success_attribute_points"`
	SuccessExperience      int    `bun:"success_experience"`
	SuccessReputation      int    `bun:"success_reputation"`
	SuccessGold            int    `bun:"success_gold"`
	FailureReputation      int    `bun:"failure_reputation"`
	UpdatedAt              int64  `bun:"updated_at"`
}

type sceneRewardExtendedRow struct {
	bun.BaseModel `bun:"table:scene_rewards_extended,alias:rx"`

	SceneID string `bun:"scene_id,pk"`

	SuccessAttributePoints int `bun:"success_attribute_points"`
	SuccessExperience      int `bun:"success_experience"`
	SuccessReputation      int `bun:"success_reputation"`
	SuccessGold            int `bun:"success_gold"`
	FailureReputation      int `bun:"failure_reputation"`

	FailureStrengthPenalty     int `bun:"failure_strength_penalty"`
	FailureDefensePenalty      int `bun:"failure_defense_penalty"`
	FailureIntelligencePenalty int `bun:"failure_intelligence_penalty"`
	FailureCharismaPenalty     int `bun:"failure_charisma_penalty"`
	FailureLoyaltyPenalty      int `bun:"failure_loyalty_penalty"`
	FailureInfluencePenalty    int `bun:"failure_influence_penalty"`
	FailureCommandPenalty      int `bun:"failure_command_penalty"`
	FailureStealthPenalty      int `bun:"failure_stealth_penalty"`

	FailureHealthPenalty      int    `bun:"failure_health_penalty"`
	FailureHealthPenaltyType  string `bun:"failure_health_penalty_type"`
	FailurePenaltyDescription string `bun:"failure_penalty_description"`

	RewardCards            []string       `bun:"reward_cards"`
	RewardNPCs             []string       `bun:"reward_npcs"`
	SpecialRewards         map[string]any `bun:"special_rewards"`
	UnlockContent          []string       `bun:"unlock_content"`
	PerfectCompletionBonus map[string]any `bun:"perfect_completion_bonus"`
	PerformanceMultiplier  float64        `bun:"performance_multiplier"`

	UpdatedAt int64 `bun:"updated_at"`
}

type sceneAISettingsRow struct {
	bun.BaseModel `bun:"table:scene_ai_settings,alias:sai"`

	SceneID                   string         `bun:"scene_id,pk"`
	NarratorPrompt            string         `bun:"narrator_prompt"`
	NarratorStyle             string         `bun:"narrator_style"`
	NarratorTriggerFrequency  int            `bun:"narrator_trigger_frequency"`
	EvaluatorWeights          map[string]any `bun:"evaluator_weights"`
	EvaluatorThresholds       map[string]any `bun:"evaluator_thresholds"`
	SuccessCriteria           map[string]any `bun:"success_criteria"`
	OptionGenerationStyle     string         `bun:"option_generation_style"`
	EffectValueRanges         map[string]any `bun:"effect_value_ranges"`
	SceneSpecificInstructions string         `bun:"scene_specific_instructions"`
	UpdatedAt                 int64          `bun:"updated_at"`
}

type aiConfigRow struct {
	bun.BaseModel `bun:"table:ai_configs,alias:ac"`

	ID               string         `bun:"id,pk"`
	ConfigID         string         `bun:"config_id"`
	Name             string         `bun:"name"`
	AIType           string         `bun:"ai_type"`
	Description      string         `bun:"description"`
	BasePrompt       string         `bun:"base_prompt"`
	SystemPrompt     string         `bun:"system_prompt"`
	ModelSettings    map[string]any `bun:"model_config"`
	CharacterConfig  map[string]any `bun:"character_config"`
	EvaluationConfig map[string]any `bun:"evaluation_config"`
	GenerationConfig map[string]any `bun:"generation_config"`
	NarrationConfig  map[string]any `bun:"narration_config"`
	Version          string         `bun:"version"`
	CreatedBy        string         `bun:"created_by"`
	IsActive         bool           `bun:"is_active"`
	CreatedAt        int64          `bun:"created_at"`
	UpdatedAt        int64          `bun:"updated_at"`
}

type sceneAIConfigRow struct {
	bun.BaseModel `bun:"table:scene_ai_configs,alias:sac"`

	ID                  string         `bun:"id,pk"`
	SceneID             string         `bun:"scene_id"`
	AIConfigID          string         `bun:"ai_config_id"`
	ExecutionOrder      int            `bun:"execution_order"`
	IsRequired          bool           `bun:"is_required"`
	TriggerConditions   map[string]any `bun:"trigger_conditions"`
	SceneSpecificConfig map[string]any `bun:"scene_specific_config"`
	CreatedAt           int64          `bun:"created_at"`
}

type templateRow struct {
	bun.BaseModel `bun:"table:config_templates,alias:t"`

	ID             string         `bun:"id,pk"`
	TemplateID     string         `bun:"template_id"`
	Name           string         `bun:"name"`
	TemplateType   string         `bun:"template_type"`
	Category       string         `bun:"category"`
	Description    string         `bun:"description"`
	Author         string         `bun:"author"`
	Version        string         `bun:"version"`
	Tags           []string       `bun:"tags"`
	TemplateData   map[string]any `bun:"template_data"`
	UsageCount     int            `bun:"usage_count"`
	LastUsedAt     *int64         `bun:"last_used_at"`
	MinGameVersion string         `bun:"min_game_version"`
	MaxGameVersion string         `bun:"max_game_version"`
	Dependencies   []string       `bun:"dependencies"`
	IsActive       bool           `bun:"is_active"`
	IsPublic       bool           `bun:"is_public"`
	IsOfficial     bool           `bun:"is_official"`
	CreatedBy      string         `bun:"created_by"`
	CreatedAt      int64          `bun:"created_at"`
	UpdatedAt      int64          `bun:"updated_at"`
}
