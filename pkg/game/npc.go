package game

import (
	"fmt"
	"strings"
)

// NPC is a character definition, either a fixed game NPC or a template
// for player-owned instances.
type NPC struct {
	ID          string  `json:"id"`
	NPCID       string  `json:"npc_id"`
	Name        string  `json:"name"`
	NPCType     NPCType `json:"npc_type"`
	Tier        Tier    `json:"tier"`
	Faction     Faction `json:"faction"`
	Avatar      string  `json:"avatar,omitempty"`
	Description string  `json:"description,omitempty"`
	Appearance  string  `json:"appearance,omitempty"`

	Intelligence int `json:"intelligence"`
	Strength     int `json:"strength"`
	Defense      int `json:"defense"`
	HPMax        int `json:"hp_max"`
	Charisma     int `json:"charisma"`
	Loyalty      int `json:"loyalty"`
	Fear         int `json:"fear"`
	Influence    int `json:"influence"`
	Command      int `json:"command"`
	Stealth      int `json:"stealth"`

	Category         string         `json:"category,omitempty"`
	CustomAttributes map[string]any `json:"custom_attributes,omitempty"`

	PersonalityTraits      []string       `json:"personality_traits"`
	PersonalityDescription string         `json:"personality_description,omitempty"`
	SpeakingStyle          string         `json:"speaking_style,omitempty"`
	EmotionThresholds      map[string]any `json:"emotion_thresholds,omitempty"`
	DialogueGoals          []string       `json:"dialogue_goals"`

	// Loot and conversion settings for game NPCs.
	AttributePointsDrop int              `json:"attribute_points_drop"`
	GuaranteedDrops     []string         `json:"guaranteed_drops,omitempty"`
	RandomDrops         []map[string]any `json:"random_drops,omitempty"`
	SpecialRewards      map[string]any   `json:"special_rewards,omitempty"`
	CanConvert          bool             `json:"can_convert"`
	ConvertConditions   map[string]any   `json:"convert_conditions,omitempty"`
	ConvertCost         int              `json:"convert_cost"`

	IsActive  bool  `json:"is_active"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Stats returns the nine bounded attributes keyed by name.
func (n *NPC) Stats() map[string]int {
	return map[string]int{
		"intelligence": n.Intelligence,
		"strength":     n.Strength,
		"defense":      n.Defense,
		"charisma":     n.Charisma,
		"loyalty":      n.Loyalty,
		"fear":         n.Fear,
		"influence":    n.Influence,
		"command":      n.Command,
		"stealth":      n.Stealth,
	}
}

// NPCCreate is the create payload. Pointer fields have non-zero defaults.
type NPCCreate struct {
	NPCID       string  `json:"npc_id"`
	Name        string  `json:"name"`
	NPCType     NPCType `json:"npc_type"`
	Tier        Tier    `json:"tier"`
	Faction     Faction `json:"faction"`
	Avatar      string  `json:"avatar"`
	Description string  `json:"description"`
	Appearance  string  `json:"appearance"`

	Intelligence int  `json:"intelligence"`
	Strength     int  `json:"strength"`
	Defense      int  `json:"defense"`
	HPMax        int  `json:"hp_max"`
	Charisma     *int `json:"charisma"`
	Loyalty      *int `json:"loyalty"`
	Fear         int  `json:"fear"`
	Influence    int  `json:"influence"`
	Command      int  `json:"command"`
	Stealth      int  `json:"stealth"`

	Category         string         `json:"category"`
	CustomAttributes map[string]any `json:"custom_attributes"`

	PersonalityTraits      []string       `json:"personality_traits"`
	PersonalityDescription string         `json:"personality_description"`
	SpeakingStyle          string         `json:"speaking_style"`
	EmotionThresholds      map[string]any `json:"emotion_thresholds"`
	DialogueGoals          []string       `json:"dialogue_goals"`

	AttributePointsDrop *int             `json:"attribute_points_drop"`
	GuaranteedDrops     []string         `json:"guaranteed_drops"`
	RandomDrops         []map[string]any `json:"random_drops"`
	SpecialRewards      map[string]any   `json:"special_rewards"`
	CanConvert          bool             `json:"can_convert"`
	ConvertConditions   map[string]any   `json:"convert_conditions"`
	ConvertCost         int              `json:"convert_cost"`
}

const (
	defaultCharisma            = 50
	defaultLoyalty             = 50
	defaultAttributePointsDrop = 20
)

// Validate checks identity, enums and the four create-time ranges.
func (c *NPCCreate) Validate() error {
	if strings.TrimSpace(c.NPCID) == "" {
		return Invalid("npc_id", "npc_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "name is required")
	}
	if _, err := Parse("npc_type", string(c.NPCType), NPCTypes); err != nil {
		return err
	}
	if _, err := Parse("tier", string(c.Tier), Tiers); err != nil {
		return err
	}
	if _, err := Parse("faction", string(c.Faction), Factions); err != nil {
		return err
	}
	for _, r := range npcCreateRanges {
		if err := r.check(r.value(c)); err != nil {
			return err
		}
	}
	return nil
}

// NPC builds the stored representation with defaults applied.
func (c *NPCCreate) NPC() *NPC {
	return &NPC{
		NPCID:                  strings.TrimSpace(c.NPCID),
		Name:                   c.Name,
		NPCType:                c.NPCType,
		Tier:                   c.Tier,
		Faction:                c.Faction,
		Avatar:                 c.Avatar,
		Description:            c.Description,
		Appearance:             c.Appearance,
		Intelligence:           c.Intelligence,
		Strength:               c.Strength,
		Defense:                c.Defense,
		HPMax:                  c.HPMax,
		Charisma:               intOr(c.Charisma, defaultCharisma),
		Loyalty:                intOr(c.Loyalty, defaultLoyalty),
		Fear:                   c.Fear,
		Influence:              c.Influence,
		Command:                c.Command,
		Stealth:                c.Stealth,
		Category:               c.Category,
		CustomAttributes:       c.CustomAttributes,
		PersonalityTraits:      c.PersonalityTraits,
		PersonalityDescription: c.PersonalityDescription,
		SpeakingStyle:          c.SpeakingStyle,
		EmotionThresholds:      c.EmotionThresholds,
		DialogueGoals:          c.DialogueGoals,
		AttributePointsDrop:    intOr(c.AttributePointsDrop, defaultAttributePointsDrop),
		GuaranteedDrops:        c.GuaranteedDrops,
		RandomDrops:            c.RandomDrops,
		SpecialRewards:         c.SpecialRewards,
		CanConvert:             c.CanConvert,
		ConvertConditions:      c.ConvertConditions,
		ConvertCost:            c.ConvertCost,
		IsActive:               true,
	}
}

// NPCUpdate is a partial update. Absent and null fields are left alone.
type NPCUpdate struct {
	Name        *string  `json:"name"`
	NPCType     *NPCType `json:"npc_type"`
	Tier        *Tier    `json:"tier"`
	Faction     *Faction `json:"faction"`
	Avatar      *string  `json:"avatar"`
	Description *string  `json:"description"`
	Appearance  *string  `json:"appearance"`

	Intelligence *int `json:"intelligence"`
	Strength     *int `json:"strength"`
	Defense      *int `json:"defense"`
	HPMax        *int `json:"hp_max"`
	Charisma     *int `json:"charisma"`
	Loyalty      *int `json:"loyalty"`
	Fear         *int `json:"fear"`
	Influence    *int `json:"influence"`
	Command      *int `json:"command"`
	Stealth      *int `json:"stealth"`

	Category         *string        `json:"category"`
	CustomAttributes map[string]any `json:"custom_attributes"`

	PersonalityTraits      []string       `json:"personality_traits"`
	PersonalityDescription *string        `json:"personality_description"`
	SpeakingStyle          *string        `json:"speaking_style"`
	EmotionThresholds      map[string]any `json:"emotion_thresholds"`
	DialogueGoals          []string       `json:"dialogue_goals"`

	AttributePointsDrop *int             `json:"attribute_points_drop"`
	GuaranteedDrops     []string         `json:"guaranteed_drops"`
	RandomDrops         []map[string]any `json:"random_drops"`
	SpecialRewards      map[string]any   `json:"special_rewards"`
	CanConvert          *bool            `json:"can_convert"`
	ConvertConditions   map[string]any   `json:"convert_conditions"`
	ConvertCost         *int             `json:"convert_cost"`

	IsActive *bool `json:"is_active"`
}

// Apply writes every present field onto n. Numeric ranges are not
// re-checked here; only create and the validate endpoints enforce them.
func (u *NPCUpdate) Apply(n *NPC) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return Invalid("name", "name is required")
	}
	if u.NPCType != nil {
		if _, err := Parse("npc_type", string(*u.NPCType), NPCTypes); err != nil {
			return err
		}
	}
	if u.Tier != nil {
		if _, err := Parse("tier", string(*u.Tier), Tiers); err != nil {
			return err
		}
	}
	if u.Faction != nil {
		if _, err := Parse("faction", string(*u.Faction), Factions); err != nil {
			return err
		}
	}

	set(&n.Name, u.Name)
	set(&n.NPCType, u.NPCType)
	set(&n.Tier, u.Tier)
	set(&n.Faction, u.Faction)
	set(&n.Avatar, u.Avatar)
	set(&n.Description, u.Description)
	set(&n.Appearance, u.Appearance)
	set(&n.Intelligence, u.Intelligence)
	set(&n.Strength, u.Strength)
	set(&n.Defense, u.Defense)
	set(&n.HPMax, u.HPMax)
	set(&n.Charisma, u.Charisma)
	set(&n.Loyalty, u.Loyalty)
	set(&n.Fear, u.Fear)
	set(&n.Influence, u.Influence)
	set(&n.Command, u.Command)
	set(&n.Stealth, u.Stealth)
	set(&n.Category, u.Category)
	set(&n.PersonalityDescription, u.PersonalityDescription)
	set(&n.SpeakingStyle, u.SpeakingStyle)
	set(&n.AttributePointsDrop, u.AttributePointsDrop)
	set(&n.CanConvert, u.CanConvert)
	set(&n.ConvertCost, u.ConvertCost)
	set(&n.IsActive, u.IsActive)
	if u.CustomAttributes != nil {
		n.CustomAttributes = u.CustomAttributes
	}
	if u.PersonalityTraits != nil {
		n.PersonalityTraits = u.PersonalityTraits
	}
	if u.EmotionThresholds != nil {
		n.EmotionThresholds = u.EmotionThresholds
	}
	if u.DialogueGoals != nil {
		n.DialogueGoals = u.DialogueGoals
	}
	if u.GuaranteedDrops != nil {
		n.GuaranteedDrops = u.GuaranteedDrops
	}
	if u.RandomDrops != nil {
		n.RandomDrops = u.RandomDrops
	}
	if u.SpecialRewards != nil {
		n.SpecialRewards = u.SpecialRewards
	}
	if u.ConvertConditions != nil {
		n.ConvertConditions = u.ConvertConditions
	}
	return nil
}

// intRange is an inclusive bound on one NPC attribute.
type intRange struct {
	field    string
	label    string
	min, max int
	value    func(*NPCCreate) int
}

func (r intRange) check(v int) error {
	if v < r.min || v > r.max {
		return Invalid(r.field, fmt.Sprintf("%s must be between %d and %d", r.label, r.min, r.max))
	}
	return nil
}

var npcCreateRanges = []intRange{
	{field: "intelligence", label: "Intelligence", min: 1, max: 20, value: func(c *NPCCreate) int { return c.Intelligence }},
	{field: "strength", label: "Strength", min: 1, max: 100, value: func(c *NPCCreate) int { return c.Strength }},
	{field: "defense", label: "Defense", min: 1, max: 100, value: func(c *NPCCreate) int { return c.Defense }},
	{field: "hp_max", label: "HP", min: 1, max: 500, value: func(c *NPCCreate) int { return c.HPMax }},
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
