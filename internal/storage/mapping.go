package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// One mapping pair per entity. Enum columns are parsed here and nowhere
// else, so a corrupt stored value fails the read instead of leaking out.

func npcToRow(n *game.NPC) *npcRow {
	return &npcRow{
		ID:                     n.ID,
		NPCID:                  n.NPCID,
		Name:                   n.Name,
		NPCType:                string(n.NPCType),
		Tier:                   string(n.Tier),
		Faction:                string(n.Faction),
		Avatar:                 n.Avatar,
		Description:            n.Description,
		Appearance:             n.Appearance,
		Intelligence:           n.Intelligence,
		Strength:               n.Strength,
		Defense:                n.Defense,
		HPMax:                  n.HPMax,
		Charisma:               n.Charisma,
		Loyalty:                n.Loyalty,
		Fear:                   n.Fear,
		Influence:              n.Influence,
		Command:                n.Command,
		Stealth:                n.Stealth,
		Category:               n.Category,
		CustomAttributes:       n.CustomAttributes,
		PersonalityTraits:      n.PersonalityTraits,
		PersonalityDescription: n.PersonalityDescription,
		SpeakingStyle:          n.SpeakingStyle,
		EmotionThresholds:      n.EmotionThresholds,
		DialogueGoals:          n.DialogueGoals,
		AttributePointsDrop:    n.AttributePointsDrop,
		GuaranteedDrops:        n.GuaranteedDrops,
		RandomDrops:            n.RandomDrops,
		SpecialRewards:         n.SpecialRewards,
		CanConvert:             n.CanConvert,
		ConvertConditions:      n.ConvertConditions,
		ConvertCost:            n.ConvertCost,
		IsActive:               n.IsActive,
		CreatedAt:              n.CreatedAt,
		UpdatedAt:              n.UpdatedAt,
	}
}

func npcFromRow(r *npcRow) (*game.NPC, error) {
	npcType, err := game.Parse("npc_type", r.NPCType, game.NPCTypes)
	if err != nil {
		return nil, corrupt("npc", r.ID, err)
	}
	tier, err := game.Parse("tier", r.Tier, game.Tiers)
	if err != nil {
		return nil, corrupt("npc", r.ID, err)
	}
	faction, err := game.Parse("faction", r.Faction, game.Factions)
	if err != nil {
		return nil, corrupt("npc", r.ID, err)
	}
	return &game.NPC{
		ID:                     r.ID,
		NPCID:                  r.NPCID,
		Name:                   r.Name,
		NPCType:                npcType,
		Tier:                   tier,
		Faction:                faction,
		Avatar:                 r.Avatar,
		Description:            r.Description,
		Appearance:             r.Appearance,
		Intelligence:           r.Intelligence,
		Strength:               r.Strength,
		Defense:                r.Defense,
		HPMax:                  r.HPMax,
		Charisma:               r.Charisma,
		Loyalty:                r.Loyalty,
		Fear:                   r.Fear,
		Influence:              r.Influence,
		Command:                r.Command,
		Stealth:                r.Stealth,
		Category:               r.Category,
		CustomAttributes:       r.CustomAttributes,
		PersonalityTraits:      orEmpty(r.PersonalityTraits),
		PersonalityDescription: r.PersonalityDescription,
		SpeakingStyle:          r.SpeakingStyle,
		EmotionThresholds:      r.EmotionThresholds,
		DialogueGoals:          orEmpty(r.DialogueGoals),
		AttributePointsDrop:    r.AttributePointsDrop,
		GuaranteedDrops:        r.GuaranteedDrops,
		RandomDrops:            r.RandomDrops,
		SpecialRewards:         r.SpecialRewards,
		CanConvert:             r.CanConvert,
		ConvertConditions:      r.ConvertConditions,
		ConvertCost:            r.ConvertCost,
		IsActive:               r.IsActive,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}, nil
}

func cardToRow(c *game.Card) *cardRow {
	return &cardRow{
		ID:                c.ID,
		CardID:            c.CardID,
		Name:              c.Name,
		Rarity:            string(c.Rarity),
		Category:          string(c.Category),
		SubCategory:       c.SubCategory,
		Icon:              c.Icon,
		CardArt:           c.CardArt,
		FlavorText:        c.FlavorText,
		Description:       c.Description,
		EffectType:        string(c.EffectType),
		Effects:           c.Effects,
		AttributeBonusMin: c.AttributeBonusMin,
		AttributeBonusMax: c.AttributeBonusMax,
		BaseDuration:      c.BaseDuration,
		CooldownTurns:     c.CooldownTurns,
		BaseCost:          c.BaseCost,
		MaxStack:          c.MaxStack,
		UseTiming:         string(c.UseTiming),
		IsConsumable:      c.IsConsumable,
		UseConditions:     c.UseConditions,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func cardFromRow(r *cardRow) (*game.Card, error) {
	rarity, err := game.Parse("rarity", r.Rarity, game.Rarities)
	if err != nil {
		return nil, corrupt("card", r.ID, err)
	}
	category, err := game.Parse("category", r.Category, game.CardCategories)
	if err != nil {
		return nil, corrupt("card", r.ID, err)
	}
	effectType, err := game.Parse("effect_type", r.EffectType, game.EffectTypes)
	if err != nil {
		return nil, corrupt("card", r.ID, err)
	}
	useTiming, err := game.Parse("use_timing", r.UseTiming, game.CardUseTimings)
	if err != nil {
		return nil, corrupt("card", r.ID, err)
	}
	return &game.Card{
		ID:                r.ID,
		CardID:            r.CardID,
		Name:              r.Name,
		Rarity:            rarity,
		Category:          category,
		SubCategory:       r.SubCategory,
		Icon:              r.Icon,
		CardArt:           r.CardArt,
		FlavorText:        r.FlavorText,
		Description:       r.Description,
		EffectType:        effectType,
		Effects:           r.Effects,
		AttributeBonusMin: r.AttributeBonusMin,
		AttributeBonusMax: r.AttributeBonusMax,
		BaseDuration:      r.BaseDuration,
		CooldownTurns:     r.CooldownTurns,
		BaseCost:          r.BaseCost,
		MaxStack:          r.MaxStack,
		UseTiming:         useTiming,
		IsConsumable:      r.IsConsumable,
		UseConditions:     r.UseConditions,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}

func sceneToRow(s *game.Scene) (*sceneRow, error) {
	prereqs, err := encodePrerequisites(s.PrerequisiteScenes)
	if err != nil {
		return nil, err
	}
	return &sceneRow{
		ID:                    s.ID,
		SceneID:               s.SceneID,
		Name:                  s.Name,
		Category:              string(s.Category),
		Chapter:               s.Chapter,
		Description:           s.Description,
		BackgroundImage:       s.BackgroundImage,
		BackgroundMusic:       s.BackgroundMusic,
		Location:              s.Location,
		TimeOfDay:             string(s.TimeOfDay),
		Weather:               s.Weather,
		SceneType:             s.SceneType,
		DifficultyLevel:       s.DifficultyLevel,
		EstimatedDuration:     s.EstimatedDuration,
		IsRepeatable:          s.IsRepeatable,
		MaxAttempts:           s.MaxAttempts,
		CooldownHours:         s.CooldownHours,
		Status:                string(s.Status),
		CardCount:             s.CardCount,
		PrerequisiteScenes:    prereqs,
		DaysRequired:          s.DaysRequired,
		NarratorPrompt:        s.NarratorPrompt,
		AttributeRequirements: s.AttributeRequirements,
		CardRequirements:      s.CardRequirements,
		Prerequisites:         s.Prerequisites,
		Restrictions:          s.Restrictions,
		MinPlayerNPCs:         s.MinPlayerNPCs,
		MaxPlayerNPCs:         s.MaxPlayerNPCs,
		RecommendedNPCTypes:   s.RecommendedNPCTypes,
		SpecialBonuses:        s.SpecialBonuses,
		EvaluatorConfig:       s.EvaluatorConfig,
		SuccessRewards:        s.SuccessRewards,
		FailurePenalties:      s.FailurePenalties,
		DynamicEvents:         s.DynamicEvents,
		HiddenElements:        s.HiddenElements,
		IsActive:              s.IsActive,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}, nil
}

func sceneFromRow(r *sceneRow) (*game.Scene, error) {
	category, err := game.Parse("category", r.Category, game.SceneCategories)
	if err != nil {
		return nil, corrupt("scene", r.ID, err)
	}
	status, err := game.Parse("status", r.Status, game.SceneStatuses)
	if err != nil {
		return nil, corrupt("scene", r.ID, err)
	}
	var timeOfDay game.TimeOfDay
	if r.TimeOfDay != "" {
		if timeOfDay, err = game.Parse("time_of_day", r.TimeOfDay, game.TimesOfDay); err != nil {
			return nil, corrupt("scene", r.ID, err)
		}
	}
	prereqs, err := decodePrerequisites(r.PrerequisiteScenes)
	if err != nil {
		return nil, corrupt("scene", r.ID, err)
	}
	return &game.Scene{
		ID:                    r.ID,
		SceneID:               r.SceneID,
		Name:                  r.Name,
		Category:              category,
		Chapter:               r.Chapter,
		Description:           r.Description,
		BackgroundImage:       r.BackgroundImage,
		BackgroundMusic:       r.BackgroundMusic,
		Location:              r.Location,
		TimeOfDay:             timeOfDay,
		Weather:               r.Weather,
		SceneType:             r.SceneType,
		DifficultyLevel:       r.DifficultyLevel,
		EstimatedDuration:     r.EstimatedDuration,
		IsRepeatable:          r.IsRepeatable,
		MaxAttempts:           r.MaxAttempts,
		CooldownHours:         r.CooldownHours,
		Status:                status,
		CardCount:             r.CardCount,
		PrerequisiteScenes:    prereqs,
		DaysRequired:          r.DaysRequired,
		NarratorPrompt:        r.NarratorPrompt,
		AttributeRequirements: r.AttributeRequirements,
		CardRequirements:      r.CardRequirements,
		Prerequisites:         r.Prerequisites,
		Restrictions:          r.Restrictions,
		MinPlayerNPCs:         r.MinPlayerNPCs,
		MaxPlayerNPCs:         r.MaxPlayerNPCs,
		RecommendedNPCTypes:   r.RecommendedNPCTypes,
		SpecialBonuses:        r.SpecialBonuses,
		EvaluatorConfig:       r.EvaluatorConfig,
		SuccessRewards:        r.SuccessRewards,
		FailurePenalties:      r.FailurePenalties,
		DynamicEvents:         r.DynamicEvents,
		HiddenElements:        r.HiddenElements,
		NPCCount:              r.NPCCount,
		IsActive:              r.IsActive,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}, nil
}

func encodePrerequisites(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode prerequisite scenes: %w", err)
	}
	return string(data), nil
}

func decodePrerequisites(raw string) ([]string, error) {
	ids := []string{}
	if raw == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode prerequisite scenes: %w", err)
	}
	return ids, nil
}

func sceneNPCToRow(l *game.SceneNPC) *sceneNPCRow {
	return &sceneNPCRow{
		ID:                 l.ID,
		SceneID:            l.SceneID,
		NPCID:              l.NPCID,
		Role:               l.Role,
		Behavior:           l.Behavior,
		SpeakingPriority:   l.SpeakingPriority,
		CanBeChallenged:    l.CanBeChallenged,
		CanBeConverted:     l.CanBeConverted,
		InitialPosition:    l.InitialPosition,
		SpecialBehavior:    l.SpecialBehavior,
		AttributeModifiers: l.AttributeModifiers,
		CreatedAt:          l.CreatedAt,
	}
}

func sceneNPCFromRow(r *sceneNPCRow, name string) *game.SceneNPC {
	return &game.SceneNPC{
		ID:                 r.ID,
		SceneID:            r.SceneID,
		NPCID:              r.NPCID,
		Name:               name,
		Role:               r.Role,
		Behavior:           r.Behavior,
		SpeakingPriority:   r.SpeakingPriority,
		CanBeChallenged:    r.CanBeChallenged,
		CanBeConverted:     r.CanBeConverted,
		InitialPosition:    r.InitialPosition,
		SpecialBehavior:    r.SpecialBehavior,
		AttributeModifiers: r.AttributeModifiers,
		CreatedAt:          r.CreatedAt,
	}
}

func cardBindingToRow(b *game.SceneCardBinding) *sceneCardBindingRow {
	return &sceneCardBindingRow{
		ID:                   b.ID,
		SceneID:              b.SceneID,
		CardID:               b.CardID,
		BindingType:          string(b.BindingType),
		MaxUsesPerScene:      b.MaxUsesPerScene,
		CooldownRounds:       b.CooldownRounds,
		SceneEffectModifier:  b.SceneEffectModifier,
		SpecialEffects:       b.SpecialEffects,
		UnlockConditions:     b.UnlockConditions,
		VisibilityConditions: b.VisibilityConditions,
		UsageRewardBonus:     b.UsageRewardBonus,
		CreatedAt:            b.CreatedAt,
	}
}

func cardBindingFromRow(r *sceneCardBindingRow, cardName string) (*game.SceneCardBinding, error) {
	bindingType, err := game.Parse("binding_type", r.BindingType, game.BindingTypes)
	if err != nil {
		return nil, corrupt("scene card binding", r.ID, err)
	}
	return &game.SceneCardBinding{
		ID:                   r.ID,
		SceneID:              r.SceneID,
		CardID:               r.CardID,
		CardName:             cardName,
		BindingType:          bindingType,
		MaxUsesPerScene:      r.MaxUsesPerScene,
		CooldownRounds:       r.CooldownRounds,
		SceneEffectModifier:  r.SceneEffectModifier,
		SpecialEffects:       r.SpecialEffects,
		UnlockConditions:     r.UnlockConditions,
		VisibilityConditions: r.VisibilityConditions,
		UsageRewardBonus:     r.UsageRewardBonus,
		CreatedAt:            r.CreatedAt,
	}, nil
}

func requirementToRow(q *game.SceneRequirement) *sceneRequirementRow {
	value := string(q.RequiredValue)
	if value == "" {
		value = "null"
	}
	return &sceneRequirementRow{
		ID:                q.ID,
		SceneID:           q.SceneID,
		RequirementType:   string(q.RequirementType),
		RequirementName:   q.RequirementName,
		Description:       q.Description,
		Operator:          string(q.Operator),
		RequiredValue:     value,
		IsMandatory:       q.IsMandatory,
		Priority:          q.Priority,
		ErrorMessage:      q.ErrorMessage,
		AllowSubstitution: q.AllowSubstitution,
		SubstitutionRules: q.SubstitutionRules,
		IsDynamic:         q.IsDynamic,
		DynamicFormula:    q.DynamicFormula,
		CreatedAt:         q.CreatedAt,
	}
}

func requirementFromRow(r *sceneRequirementRow) (*game.SceneRequirement, error) {
	reqType, err := game.Parse("requirement_type", r.RequirementType, game.RequirementTypes)
	if err != nil {
		return nil, corrupt("scene requirement", r.ID, err)
	}
	op, err := game.Parse("operator", r.Operator, game.Operators)
	if err != nil {
		return nil, corrupt("scene requirement", r.ID, err)
	}
	return &game.SceneRequirement{
		ID:                r.ID,
		SceneID:           r.SceneID,
		RequirementType:   reqType,
		RequirementName:   r.RequirementName,
		Description:       r.Description,
		Operator:          op,
		RequiredValue:     json.RawMessage(r.RequiredValue),
		IsMandatory:       r.IsMandatory,
		Priority:          r.Priority,
		ErrorMessage:      r.ErrorMessage,
		AllowSubstitution: r.AllowSubstitution,
		SubstitutionRules: r.SubstitutionRules,
		IsDynamic:         r.IsDynamic,
		DynamicFormula:    r.DynamicFormula,
		CreatedAt:         r.CreatedAt,
	}, nil
}

func rewardToRow(r *game.SceneReward) *sceneRewardRow {
	return &sceneRewardRow{
		SceneID:                r.SceneID,
		SuccessAttributePoints: r.SuccessAttributePoints,
		SuccessExperience:      r.SuccessExperience,
		SuccessReputation:      r.SuccessReputation,
		SuccessGold:            r.SuccessGold,
		FailureReputation:      r.FailureReputation,
		UpdatedAt:              r.UpdatedAt,
	}
}

func rewardFromRow(r *sceneRewardRow) *game.SceneReward {
	return &game.SceneReward{
		SceneID:                r.SceneID,
		SuccessAttributePoints: r.SuccessAttributePoints,
		SuccessExperience:      r.SuccessExperience,
		SuccessReputation:      r.SuccessReputation,
		SuccessGold:            r.SuccessGold,
		FailureReputation:      r.FailureReputation,
		UpdatedAt:              r.UpdatedAt,
	}
}

func rewardExtendedToRow(r *game.SceneRewardExtended) *sceneRewardExtendedRow {
	return &sceneRewardExtendedRow{
		SceneID:                    r.SceneID,
		SuccessAttributePoints:     r.SuccessAttributePoints,
		SuccessExperience:          r.SuccessExperience,
		SuccessReputation:          r.SuccessReputation,
		SuccessGold:                r.SuccessGold,
		FailureReputation:          r.FailureReputation,
		FailureStrengthPenalty:     r.FailureStrengthPenalty,
		FailureDefensePenalty:      r.FailureDefensePenalty,
		FailureIntelligencePenalty: r.FailureIntelligencePenalty,
		FailureCharismaPenalty:     r.FailureCharismaPenalty,
		FailureLoyaltyPenalty:      r.FailureLoyaltyPenalty,
		FailureInfluencePenalty:    r.FailureInfluencePenalty,
		FailureCommandPenalty:      r.FailureCommandPenalty,
		FailureStealthPenalty:      r.FailureStealthPenalty,
		FailureHealthPenalty:       r.FailureHealthPenalty,
		FailureHealthPenaltyType:   string(r.FailureHealthPenaltyType),
		FailurePenaltyDescription:  r.FailurePenaltyDescription,
		RewardCards:                r.RewardCards,
		RewardNPCs:                 r.RewardNPCs,
		SpecialRewards:             r.SpecialRewards,
		UnlockContent:              r.UnlockContent,
		PerfectCompletionBonus:     r.PerfectCompletionBonus,
		PerformanceMultiplier:      r.PerformanceMultiplier,
		UpdatedAt:                  r.UpdatedAt,
	}
}

func rewardExtendedFromRow(r *sceneRewardExtendedRow) (*game.SceneRewardExtended, error) {
	penaltyType, err := game.Parse("failure_health_penalty_type", r.FailureHealthPenaltyType, game.HealthPenaltyTypes)
	if err != nil {
		return nil, corrupt("scene rewards", r.SceneID, err)
	}
	out := &game.SceneRewardExtended{
		SceneID:                    r.SceneID,
		SuccessAttributePoints:     r.SuccessAttributePoints,
		SuccessExperience:          r.SuccessExperience,
		SuccessReputation:          r.SuccessReputation,
		SuccessGold:                r.SuccessGold,
		FailureReputation:          r.FailureReputation,
		FailureStrengthPenalty:     r.FailureStrengthPenalty,
		FailureDefensePenalty:      r.FailureDefensePenalty,
		FailureIntelligencePenalty: r.FailureIntelligencePenalty,
		FailureCharismaPenalty:     r.FailureCharismaPenalty,
		FailureLoyaltyPenalty:      r.FailureLoyaltyPenalty,
		FailureInfluencePenalty:    r.FailureInfluencePenalty,
		FailureCommandPenalty:      r.FailureCommandPenalty,
		FailureStealthPenalty:      r.FailureStealthPenalty,
		FailureHealthPenalty:       r.FailureHealthPenalty,
		FailureHealthPenaltyType:   penaltyType,
		FailurePenaltyDescription:  r.FailurePenaltyDescription,
		RewardCards:                orEmpty(r.RewardCards),
		RewardNPCs:                 orEmpty(r.RewardNPCs),
		SpecialRewards:             orEmptyMap(r.SpecialRewards),
		UnlockContent:              orEmpty(r.UnlockContent),
		PerfectCompletionBonus:     orEmptyMap(r.PerfectCompletionBonus),
		PerformanceMultiplier:      r.PerformanceMultiplier,
		UpdatedAt:                  r.UpdatedAt,
	}
	return out, nil
}

func aiSettingsToRow(s *game.SceneAISettings) *sceneAISettingsRow {
	return &sceneAISettingsRow{
		SceneID:                   s.SceneID,
		NarratorPrompt:            s.NarratorPrompt,
		NarratorStyle:             s.NarratorStyle,
		NarratorTriggerFrequency:  s.NarratorTriggerFrequency,
		EvaluatorWeights:          s.EvaluatorWeights,
		EvaluatorThresholds:       s.EvaluatorThresholds,
		SuccessCriteria:           s.SuccessCriteria,
		OptionGenerationStyle:     s.OptionGenerationStyle,
		EffectValueRanges:         s.EffectValueRanges,
		SceneSpecificInstructions: s.SceneSpecificInstructions,
		UpdatedAt:                 s.UpdatedAt,
	}
}

func aiSettingsFromRow(r *sceneAISettingsRow) *game.SceneAISettings {
	return &game.SceneAISettings{
		SceneID:                   r.SceneID,
		NarratorPrompt:            r.NarratorPrompt,
		NarratorStyle:             r.NarratorStyle,
		NarratorTriggerFrequency:  r.NarratorTriggerFrequency,
		EvaluatorWeights:          orEmptyMap(r.EvaluatorWeights),
		EvaluatorThresholds:       orEmptyMap(r.EvaluatorThresholds),
		SuccessCriteria:           orEmptyMap(r.SuccessCriteria),
		OptionGenerationStyle:     r.OptionGenerationStyle,
		EffectValueRanges:         orEmptyMap(r.EffectValueRanges),
		SceneSpecificInstructions: r.SceneSpecificInstructions,
		UpdatedAt:                 r.UpdatedAt,
	}
}

func aiConfigToRow(c *game.AIConfig) *aiConfigRow {
	return &aiConfigRow{
		ID:               c.ID,
		ConfigID:         c.ConfigID,
		Name:             c.Name,
		AIType:           string(c.AIType),
		Description:      c.Description,
		BasePrompt:       c.BasePrompt,
		SystemPrompt:     c.SystemPrompt,
		ModelSettings:    c.ModelSettings,
		CharacterConfig:  c.CharacterConfig,
		EvaluationConfig: c.EvaluationConfig,
		GenerationConfig: c.GenerationConfig,
		NarrationConfig:  c.NarrationConfig,
		Version:          c.Version,
		CreatedBy:        c.CreatedBy,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func aiConfigFromRow(r *aiConfigRow) (*game.AIConfig, error) {
	aiType, err := game.Parse("ai_type", r.AIType, game.AITypes)
	if err != nil {
		return nil, corrupt("ai config", r.ID, err)
	}
	return &game.AIConfig{
		ID:               r.ID,
		ConfigID:         r.ConfigID,
		Name:             r.Name,
		AIType:           aiType,
		Description:      r.Description,
		BasePrompt:       r.BasePrompt,
		SystemPrompt:     r.SystemPrompt,
		ModelSettings:    r.ModelSettings,
		CharacterConfig:  r.CharacterConfig,
		EvaluationConfig: r.EvaluationConfig,
		GenerationConfig: r.GenerationConfig,
		NarrationConfig:  r.NarrationConfig,
		Version:          r.Version,
		CreatedBy:        r.CreatedBy,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}, nil
}

func sceneAIConfigToRow(l *game.SceneAIConfig) *sceneAIConfigRow {
	return &sceneAIConfigRow{
		ID:                  l.ID,
		SceneID:             l.SceneID,
		AIConfigID:          l.AIConfigID,
		ExecutionOrder:      l.ExecutionOrder,
		IsRequired:          l.IsRequired,
		TriggerConditions:   l.TriggerConditions,
		SceneSpecificConfig: l.SceneSpecificConfig,
		CreatedAt:           l.CreatedAt,
	}
}

func sceneAIConfigFromRow(r *sceneAIConfigRow, cfg *aiConfigRow) *game.SceneAIConfig {
	link := &game.SceneAIConfig{
		ID:                  r.ID,
		SceneID:             r.SceneID,
		AIConfigID:          r.AIConfigID,
		ExecutionOrder:      r.ExecutionOrder,
		IsRequired:          r.IsRequired,
		TriggerConditions:   r.TriggerConditions,
		SceneSpecificConfig: r.SceneSpecificConfig,
		CreatedAt:           r.CreatedAt,
	}
	if cfg != nil {
		link.AIConfigName = cfg.Name
		link.AIType = game.AIType(cfg.AIType)
	}
	return link
}

func templateToRow(t *game.ConfigTemplate) *templateRow {
	return &templateRow{
		ID:             t.ID,
		TemplateID:     t.TemplateID,
		Name:           t.Name,
		TemplateType:   string(t.TemplateType),
		Category:       string(t.Category),
		Description:    t.Description,
		Author:         t.Author,
		Version:        t.Version,
		Tags:           t.Tags,
		TemplateData:   t.TemplateData,
		UsageCount:     t.UsageCount,
		LastUsedAt:     t.LastUsedAt,
		MinGameVersion: t.MinGameVersion,
		MaxGameVersion: t.MaxGameVersion,
		Dependencies:   t.Dependencies,
		IsActive:       t.IsActive,
		IsPublic:       t.IsPublic,
		IsOfficial:     t.IsOfficial,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func templateFromRow(r *templateRow) (*game.ConfigTemplate, error) {
	templateType, err := game.Parse("template_type", r.TemplateType, game.TemplateTypes)
	if err != nil {
		return nil, corrupt("template", r.ID, err)
	}
	category, err := game.Parse("category", r.Category, game.TemplateCategories)
	if err != nil {
		return nil, corrupt("template", r.ID, err)
	}
	return &game.ConfigTemplate{
		ID:             r.ID,
		TemplateID:     r.TemplateID,
		Name:           r.Name,
		TemplateType:   templateType,
		Category:       category,
		Description:    r.Description,
		Author:         r.Author,
		Version:        r.Version,
		Tags:           orEmpty(r.Tags),
		TemplateData:   orEmptyMap(r.TemplateData),
		UsageCount:     r.UsageCount,
		LastUsedAt:     r.LastUsedAt,
		MinGameVersion: r.MinGameVersion,
		MaxGameVersion: r.MaxGameVersion,
		Dependencies:   r.Dependencies,
		IsActive:       r.IsActive,
		IsPublic:       r.IsPublic,
		IsOfficial:     r.IsOfficial,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func corrupt(entity, id string, err error) error {
	return fmt.Errorf("stored %s %s is corrupt: %w", entity, id, err)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
