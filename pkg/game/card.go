package game

import "strings"

// Card is an ownable item granting effects inside scenes.
type Card struct {
	ID          string       `json:"id"`
	CardID      string       `json:"card_id"`
	Name        string       `json:"name"`
	Rarity      Rarity       `json:"rarity"`
	Category    CardCategory `json:"category"`
	SubCategory string       `json:"sub_category,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	CardArt     string       `json:"card_art,omitempty"`
	FlavorText  string       `json:"flavor_text,omitempty"`
	Description string       `json:"description,omitempty"`

	EffectType        EffectType     `json:"effect_type"`
	Effects           map[string]any `json:"effects,omitempty"`
	AttributeBonusMin int            `json:"attribute_bonus_min"`
	AttributeBonusMax int            `json:"attribute_bonus_max"`
	BaseDuration      int            `json:"base_duration"`
	CooldownTurns     int            `json:"cooldown_turns"`

	BaseCost      int            `json:"base_cost"`
	MaxStack      int            `json:"max_stack"`
	UseTiming     CardUseTiming  `json:"use_timing"`
	IsConsumable  bool           `json:"is_consumable"`
	UseConditions map[string]any `json:"use_conditions,omitempty"`

	IsActive  bool  `json:"is_active"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

type CardCreate struct {
	CardID      string       `json:"card_id"`
	Name        string       `json:"name"`
	Rarity      Rarity       `json:"rarity"`
	Category    CardCategory `json:"category"`
	SubCategory string       `json:"sub_category"`
	Icon        string       `json:"icon"`
	CardArt     string       `json:"card_art"`
	FlavorText  string       `json:"flavor_text"`
	Description string       `json:"description"`

	EffectType        EffectType     `json:"effect_type"`
	Effects           map[string]any `json:"effects"`
	AttributeBonusMin int            `json:"attribute_bonus_min"`
	AttributeBonusMax int            `json:"attribute_bonus_max"`
	BaseDuration      int            `json:"base_duration"`
	CooldownTurns     int            `json:"cooldown_turns"`

	BaseCost      int            `json:"base_cost"`
	MaxStack      *int           `json:"max_stack"`
	UseTiming     CardUseTiming  `json:"use_timing"`
	IsConsumable  *bool          `json:"is_consumable"`
	UseConditions map[string]any `json:"use_conditions"`
}

func (c *CardCreate) Validate() error {
	if strings.TrimSpace(c.CardID) == "" {
		return Invalid("card_id", "card_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "name is required")
	}
	if _, err := Parse("rarity", string(c.Rarity), Rarities); err != nil {
		return err
	}
	if _, err := Parse("category", string(c.Category), CardCategories); err != nil {
		return err
	}
	if err := checkEnum("effect_type", c.EffectType, EffectTypes); err != nil {
		return err
	}
	if err := checkEnum("use_timing", c.UseTiming, CardUseTimings); err != nil {
		return err
	}
	if c.AttributeBonusMax < c.AttributeBonusMin {
		return Invalid("attribute_bonus_max", "attribute_bonus_max must not be less than attribute_bonus_min")
	}
	return nil
}

func (c *CardCreate) Card() *Card {
	card := &Card{
		CardID:            strings.TrimSpace(c.CardID),
		Name:              c.Name,
		Rarity:            c.Rarity,
		Category:          c.Category,
		SubCategory:       c.SubCategory,
		Icon:              c.Icon,
		CardArt:           c.CardArt,
		FlavorText:        c.FlavorText,
		Description:       c.Description,
		EffectType:        c.EffectType,
		Effects:           c.Effects,
		AttributeBonusMin: c.AttributeBonusMin,
		AttributeBonusMax: c.AttributeBonusMax,
		BaseDuration:      c.BaseDuration,
		CooldownTurns:     c.CooldownTurns,
		BaseCost:          c.BaseCost,
		MaxStack:          intOr(c.MaxStack, 1),
		UseTiming:         c.UseTiming,
		IsConsumable:      true,
		UseConditions:     c.UseConditions,
		IsActive:          true,
	}
	set(&card.IsConsumable, c.IsConsumable)
	if card.EffectType == "" {
		card.EffectType = EffectImmediate
	}
	if card.UseTiming == "" {
		card.UseTiming = UseTimingAnytime
	}
	return card
}

type CardUpdate struct {
	Name        *string       `json:"name"`
	Rarity      *Rarity       `json:"rarity"`
	Category    *CardCategory `json:"category"`
	SubCategory *string       `json:"sub_category"`
	Icon        *string       `json:"icon"`
	CardArt     *string       `json:"card_art"`
	FlavorText  *string       `json:"flavor_text"`
	Description *string       `json:"description"`

	EffectType        *EffectType    `json:"effect_type"`
	Effects           map[string]any `json:"effects"`
	AttributeBonusMin *int           `json:"attribute_bonus_min"`
	AttributeBonusMax *int           `json:"attribute_bonus_max"`
	BaseDuration      *int           `json:"base_duration"`
	CooldownTurns     *int           `json:"cooldown_turns"`

	BaseCost      *int           `json:"base_cost"`
	MaxStack      *int           `json:"max_stack"`
	UseTiming     *CardUseTiming `json:"use_timing"`
	IsConsumable  *bool          `json:"is_consumable"`
	UseConditions map[string]any `json:"use_conditions"`

	IsActive *bool `json:"is_active"`
}

func (u *CardUpdate) Apply(c *Card) error {
	if u.Rarity != nil {
		if _, err := Parse("rarity", string(*u.Rarity), Rarities); err != nil {
			return err
		}
	}
	if u.Category != nil {
		if _, err := Parse("category", string(*u.Category), CardCategories); err != nil {
			return err
		}
	}
	if u.EffectType != nil {
		if _, err := Parse("effect_type", string(*u.EffectType), EffectTypes); err != nil {
			return err
		}
	}
	if u.UseTiming != nil {
		if _, err := Parse("use_timing", string(*u.UseTiming), CardUseTimings); err != nil {
			return err
		}
	}

	set(&c.Name, u.Name)
	set(&c.Rarity, u.Rarity)
	set(&c.Category, u.Category)
	set(&c.SubCategory, u.SubCategory)
	set(&c.Icon, u.Icon)
	set(&c.CardArt, u.CardArt)
	set(&c.FlavorText, u.FlavorText)
	set(&c.Description, u.Description)
	set(&c.EffectType, u.EffectType)
	set(&c.AttributeBonusMin, u.AttributeBonusMin)
	set(&c.AttributeBonusMax, u.AttributeBonusMax)
	set(&c.BaseDuration, u.BaseDuration)
	set(&c.CooldownTurns, u.CooldownTurns)
	set(&c.BaseCost, u.BaseCost)
	set(&c.MaxStack, u.MaxStack)
	set(&c.UseTiming, u.UseTiming)
	set(&c.IsConsumable, u.IsConsumable)
	set(&c.IsActive, u.IsActive)
	if u.Effects != nil {
		c.Effects = u.Effects
	}
	if u.UseConditions != nil {
		c.UseConditions = u.UseConditions
	}
	return nil
}
