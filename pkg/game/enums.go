package game

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type NPCType string

const (
	NPCTypeGame   NPCType = "game_npc"
	NPCTypePlayer NPCType = "player_npc"
)

var NPCTypes = []NPCType{NPCTypeGame, NPCTypePlayer}

type Tier string

const (
	TierBronze    Tier = "bronze"
	TierSilver    Tier = "silver"
	TierGold      Tier = "gold"
	TierLegendary Tier = "legendary"
)

var Tiers = []Tier{TierBronze, TierSilver, TierGold, TierLegendary}

type Faction string

const (
	FactionSultan    Faction = "sultan"
	FactionMinister  Faction = "minister"
	FactionMilitary  Faction = "military"
	FactionBlackduck Faction = "blackduck"
	FactionCommoner  Faction = "commoner"
	FactionScholar   Faction = "scholar"
)

var Factions = []Faction{FactionSultan, FactionMinister, FactionMilitary, FactionBlackduck, FactionCommoner, FactionScholar}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

type CardCategory string

const (
	CardCategoryPass      CardCategory = "pass"
	CardCategoryAttribute CardCategory = "attribute"
	CardCategoryInfluence CardCategory = "influence"
	CardCategorySpecial   CardCategory = "special"
)

var CardCategories = []CardCategory{CardCategoryPass, CardCategoryAttribute, CardCategoryInfluence, CardCategorySpecial}

type CardUseTiming string

const (
	UseTimingSceneStart CardUseTiming = "scene_start"
	UseTimingDialogue   CardUseTiming = "dialogue"
	UseTimingCombat     CardUseTiming = "combat"
	UseTimingAnytime    CardUseTiming = "anytime"
)

var CardUseTimings = []CardUseTiming{UseTimingSceneStart, UseTimingDialogue, UseTimingCombat, UseTimingAnytime}

type EffectType string

const (
	EffectImmediate EffectType = "immediate"
	EffectDuration  EffectType = "duration"
	EffectPermanent EffectType = "permanent"
)

var EffectTypes = []EffectType{EffectImmediate, EffectDuration, EffectPermanent}

type SceneCategory string

const (
	SceneCategoryMainStory SceneCategory = "main_story"
	SceneCategorySideQuest SceneCategory = "side_quest"
	SceneCategoryFaction   SceneCategory = "faction"
	SceneCategoryRandom    SceneCategory = "random"
)

var SceneCategories = []SceneCategory{SceneCategoryMainStory, SceneCategorySideQuest, SceneCategoryFaction, SceneCategoryRandom}

type SceneStatus string

const (
	SceneStatusDraft    SceneStatus = "draft"
	SceneStatusActive   SceneStatus = "active"
	SceneStatusTesting  SceneStatus = "testing"
	SceneStatusArchived SceneStatus = "archived"
)

var SceneStatuses = []SceneStatus{SceneStatusDraft, SceneStatusActive, SceneStatusTesting, SceneStatusArchived}

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

var TimesOfDay = []TimeOfDay{TimeMorning, TimeAfternoon, TimeEvening, TimeNight}

type RequirementType string

const (
	RequirementAttribute    RequirementType = "attribute"
	RequirementCard         RequirementType = "card"
	RequirementNPC          RequirementType = "npc"
	RequirementItem         RequirementType = "item"
	RequirementRelationship RequirementType = "relationship"
)

var RequirementTypes = []RequirementType{RequirementAttribute, RequirementCard, RequirementNPC, RequirementItem, RequirementRelationship}

type Operator string

const (
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpIn           Operator = "in"
	OpNotIn        Operator = "not_in"
)

var Operators = []Operator{OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpEqual, OpNotEqual, OpIn, OpNotIn}

type BindingType string

const (
	BindingRequired BindingType = "required"
	BindingOptional BindingType = "optional"
	BindingBonus    BindingType = "bonus"
)

var BindingTypes = []BindingType{BindingRequired, BindingOptional, BindingBonus}

type HealthPenaltyType string

const (
	HealthPenaltyFixed      HealthPenaltyType = "fixed"
	HealthPenaltyPercentage HealthPenaltyType = "percentage"
)

var HealthPenaltyTypes = []HealthPenaltyType{HealthPenaltyFixed, HealthPenaltyPercentage}

type AIType string

const (
	AITypeNarrator        AIType = "narrator"
	AITypeNPC             AIType = "npc"
	AITypeEvaluator       AIType = "evaluator"
	AITypeOptionGenerator AIType = "option_generator"
)

var AITypes = []AIType{AITypeNarrator, AITypeNPC, AITypeEvaluator, AITypeOptionGenerator}

type TemplateType string

const (
	TemplateTypeScene     TemplateType = "scene"
	TemplateTypeAIConfig  TemplateType = "ai_config"
	TemplateTypeNPCConfig TemplateType = "npc_config"
	TemplateTypeComposite TemplateType = "composite"
)

var TemplateTypes = []TemplateType{TemplateTypeScene, TemplateTypeAIConfig, TemplateTypeNPCConfig, TemplateTypeComposite}

type TemplateCategory string

const (
	TemplateCategoryDialogue  TemplateCategory = "dialogue"
	TemplateCategoryCombat    TemplateCategory = "combat"
	TemplateCategoryPolitical TemplateCategory = "political"
	TemplateCategoryEconomic  TemplateCategory = "economic"
	TemplateCategoryStealth   TemplateCategory = "stealth"
	TemplateCategorySocial    TemplateCategory = "social"
)

var TemplateCategories = []TemplateCategory{
	TemplateCategoryDialogue, TemplateCategoryCombat, TemplateCategoryPolitical,
	TemplateCategoryEconomic, TemplateCategoryStealth, TemplateCategorySocial,
}

func (v NPCType) Valid() bool           { return slices.Contains(NPCTypes, v) }
func (v Tier) Valid() bool              { return slices.Contains(Tiers, v) }
func (v Faction) Valid() bool           { return slices.Contains(Factions, v) }
func (v Rarity) Valid() bool            { return slices.Contains(Rarities, v) }
func (v CardCategory) Valid() bool      { return slices.Contains(CardCategories, v) }
func (v CardUseTiming) Valid() bool     { return slices.Contains(CardUseTimings, v) }
func (v EffectType) Valid() bool        { return slices.Contains(EffectTypes, v) }
func (v SceneCategory) Valid() bool     { return slices.Contains(SceneCategories, v) }
func (v SceneStatus) Valid() bool       { return slices.Contains(SceneStatuses, v) }
func (v TimeOfDay) Valid() bool         { return slices.Contains(TimesOfDay, v) }
func (v RequirementType) Valid() bool   { return slices.Contains(RequirementTypes, v) }
func (v Operator) Valid() bool          { return slices.Contains(Operators, v) }
func (v BindingType) Valid() bool       { return slices.Contains(BindingTypes, v) }
func (v HealthPenaltyType) Valid() bool { return slices.Contains(HealthPenaltyTypes, v) }
func (v AIType) Valid() bool            { return slices.Contains(AITypes, v) }
func (v TemplateType) Valid() bool      { return slices.Contains(TemplateTypes, v) }
func (v TemplateCategory) Valid() bool  { return slices.Contains(TemplateCategories, v) }

// Parse converts a stored or requested string into one of values.
// The empty string is rejected like any other unknown value.
func Parse[T ~string](field, s string, values []T) (T, error) {
	v := T(s)
	if slices.Contains(values, v) {
		return v, nil
	}
	return "", &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("invalid %s %q", field, s),
		err:     ErrInvalidEnum,
	}
}

// checkEnum validates an optional enum value; empty means unset.
func checkEnum[T ~string](field string, v T, values []T) error {
	if v == "" {
		return nil
	}
	_, err := Parse(field, string(v), values)
	return err
}

// EnumOption is the {value,label} shape returned by the enum endpoints.
type EnumOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Label turns an enum value such as "side_quest" into "Side Quest".
func Label(value string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(value, "_", " "))
}

// EnumOptions builds labelled options for every value, in declaration order.
func EnumOptions[T ~string](values []T) []EnumOption {
	opts := make([]EnumOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, EnumOption{Value: string(v), Label: Label(string(v))})
	}
	return opts
}

// Strings returns the raw values, for endpoints that list plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
