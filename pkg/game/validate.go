package game

import (
	"fmt"
	"slices"
)

// NPCReport is the result of validating a stored NPC.
type NPCReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *NPCReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// ValidateNPC checks a stored NPC against the create-time ranges and
// reports missing AI behavior data as warnings.
func ValidateNPC(n *NPC) *NPCReport {
	r := &NPCReport{IsValid: true, Errors: []string{}, Warnings: []string{}}

	c := &NPCCreate{Intelligence: n.Intelligence, Strength: n.Strength, Defense: n.Defense, HPMax: n.HPMax}
	for _, rng := range npcCreateRanges {
		if err := rng.check(rng.value(c)); err != nil {
			r.AddError(err.Error())
		}
	}
	soft := []struct {
		name  string
		value int
	}{
		{"Charisma", n.Charisma}, {"Loyalty", n.Loyalty}, {"Fear", n.Fear},
		{"Influence", n.Influence}, {"Command", n.Command}, {"Stealth", n.Stealth},
	}
	for _, s := range soft {
		if s.value < 0 || s.value > 100 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s should be between 0 and 100", s.name))
		}
	}
	if !n.NPCType.Valid() {
		r.AddError(fmt.Sprintf("Unknown npc_type %q", n.NPCType))
	}
	if !n.Tier.Valid() {
		r.AddError(fmt.Sprintf("Unknown tier %q", n.Tier))
	}
	if !n.Faction.Valid() {
		r.AddError(fmt.Sprintf("Unknown faction %q", n.Faction))
	}

	if len(n.PersonalityTraits) == 0 {
		r.Warnings = append(r.Warnings, "No personality traits defined")
	}
	if n.SpeakingStyle == "" {
		r.Warnings = append(r.Warnings, "No speaking style defined")
	}
	if len(n.DialogueGoals) == 0 {
		r.Warnings = append(r.Warnings, "No dialogue goals defined")
	}
	return r
}

// ConfigReport is the result of validating a raw configuration payload.
type ConfigReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Config types accepted by ValidateConfig.
const (
	ConfigTypeScene = "scene"
	ConfigTypeNPC   = "npc"
	ConfigTypeCard  = "card"
)

var ConfigTypes = []string{ConfigTypeScene, ConfigTypeNPC, ConfigTypeCard}

var requiredConfigFields = map[string][]string{
	ConfigTypeScene: {"scene_id", "name", "narrator_prompt"},
	ConfigTypeNPC:   {"npc_id", "name", "intelligence", "strength", "defense", "hp_max"},
	ConfigTypeCard:  {"card_id", "name", "rarity", "card_type"},
}

// ValidateConfig checks an untyped payload for the fields of configType.
func ValidateConfig(configType string, data map[string]any) *ConfigReport {
	r := &ConfigReport{Errors: []string{}, Warnings: []string{}}
	required, ok := requiredConfigFields[configType]
	if !ok {
		r.Errors = append(r.Errors, fmt.Sprintf("Unknown config type: %s", configType))
		return r
	}
	for _, field := range required {
		if v, present := data[field]; !present || v == nil || v == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	switch configType {
	case ConfigTypeScene:
		if id, ok := data["scene_id"].(string); ok && id != "" && !ValidSceneID(id) {
			r.Warnings = append(r.Warnings, "scene_id should contain only letters, digits and underscores")
		}
	case ConfigTypeNPC:
		if v, ok := toInt(data["intelligence"]); ok && (v < 1 || v > 20) {
			r.Errors = append(r.Errors, "Intelligence must be between 1 and 20")
		}
	case ConfigTypeCard:
		if v, ok := data["rarity"].(string); ok && v != "" && !slices.Contains(Rarities, Rarity(v)) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Unknown rarity %q", v))
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}
