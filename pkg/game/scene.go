package game

import (
	"regexp"
	"strings"
)

// Scene is a unit of narrative content with its display and AI settings.
// Requirements, bindings and rewards live in their own records.
type Scene struct {
	ID              string        `json:"id"`
	SceneID         string        `json:"scene_id"`
	Name            string        `json:"name"`
	Category        SceneCategory `json:"category"`
	Chapter         int           `json:"chapter"`
	Description     string        `json:"description,omitempty"`
	BackgroundImage string        `json:"background_image,omitempty"`
	BackgroundMusic string        `json:"background_music,omitempty"`
	Location        string        `json:"location,omitempty"`
	TimeOfDay       TimeOfDay     `json:"time_of_day,omitempty"`
	Weather         string        `json:"weather,omitempty"`

	SceneType         string `json:"scene_type,omitempty"`
	DifficultyLevel   int    `json:"difficulty_level"`
	EstimatedDuration int    `json:"estimated_duration"`
	IsRepeatable      bool   `json:"is_repeatable"`
	MaxAttempts       int    `json:"max_attempts"`
	CooldownHours     int    `json:"cooldown_hours"`

	Status SceneStatus `json:"status"`

	CardCount          int      `json:"card_count"`
	PrerequisiteScenes []string `json:"prerequisite_scenes"`
	DaysRequired       int      `json:"days_required"`

	NarratorPrompt        string         `json:"narrator_prompt,omitempty"`
	AttributeRequirements map[string]any `json:"attribute_requirements,omitempty"`
	CardRequirements      map[string]any `json:"card_requirements,omitempty"`
	Prerequisites         map[string]any `json:"prerequisites,omitempty"`
	Restrictions          map[string]any `json:"restrictions,omitempty"`

	MinPlayerNPCs       int      `json:"min_player_npcs"`
	MaxPlayerNPCs       int      `json:"max_player_npcs"`
	RecommendedNPCTypes []string `json:"recommended_npc_types,omitempty"`

	SpecialBonuses   map[string]any   `json:"special_bonuses,omitempty"`
	EvaluatorConfig  map[string]any   `json:"evaluator_config,omitempty"`
	SuccessRewards   map[string]any   `json:"success_rewards,omitempty"`
	FailurePenalties map[string]any   `json:"failure_penalties,omitempty"`
	DynamicEvents    []map[string]any `json:"dynamic_events,omitempty"`
	HiddenElements   map[string]any   `json:"hidden_elements,omitempty"`

	NPCCount int `json:"npc_count"`

	IsActive  bool  `json:"is_active"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

type SceneCreate struct {
	SceneID         string        `json:"scene_id"`
	Name            string        `json:"name"`
	Category        SceneCategory `json:"category"`
	Chapter         *int          `json:"chapter"`
	Description     string        `json:"description"`
	BackgroundImage string        `json:"background_image"`
	BackgroundMusic string        `json:"background_music"`
	Location        string        `json:"location"`
	TimeOfDay       TimeOfDay     `json:"time_of_day"`
	Weather         string        `json:"weather"`

	SceneType         string `json:"scene_type"`
	DifficultyLevel   *int   `json:"difficulty_level"`
	EstimatedDuration int    `json:"estimated_duration"`
	IsRepeatable      bool   `json:"is_repeatable"`
	MaxAttempts       *int   `json:"max_attempts"`
	CooldownHours     int    `json:"cooldown_hours"`

	Status SceneStatus `json:"status"`

	CardCount          int      `json:"card_count"`
	PrerequisiteScenes []string `json:"prerequisite_scenes"`
	DaysRequired       int      `json:"days_required"`

	NarratorPrompt        string         `json:"narrator_prompt"`
	AttributeRequirements map[string]any `json:"attribute_requirements"`
	CardRequirements      map[string]any `json:"card_requirements"`
	Prerequisites         map[string]any `json:"prerequisites"`
	Restrictions          map[string]any `json:"restrictions"`

	MinPlayerNPCs       *int     `json:"min_player_npcs"`
	MaxPlayerNPCs       *int     `json:"max_player_npcs"`
	RecommendedNPCTypes []string `json:"recommended_npc_types"`

	SpecialBonuses   map[string]any   `json:"special_bonuses"`
	EvaluatorConfig  map[string]any   `json:"evaluator_config"`
	SuccessRewards   map[string]any   `json:"success_rewards"`
	FailurePenalties map[string]any   `json:"failure_penalties"`
	DynamicEvents    []map[string]any `json:"dynamic_events"`
	HiddenElements   map[string]any   `json:"hidden_elements"`
}

var sceneIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidSceneID reports whether id uses only letters, digits and underscores.
func ValidSceneID(id string) bool {
	return sceneIDPattern.MatchString(id)
}

func (c *SceneCreate) Validate() error {
	if strings.TrimSpace(c.SceneID) == "" {
		return Invalid("scene_id", "scene_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "name is required")
	}
	if _, err := Parse("category", string(c.Category), SceneCategories); err != nil {
		return err
	}
	if err := checkEnum("status", c.Status, SceneStatuses); err != nil {
		return err
	}
	if err := checkEnum("time_of_day", c.TimeOfDay, TimesOfDay); err != nil {
		return err
	}
	minNPCs, maxNPCs := intOr(c.MinPlayerNPCs, 1), intOr(c.MaxPlayerNPCs, 3)
	if maxNPCs < minNPCs {
		return Invalid("max_player_npcs", "max_player_npcs must not be less than min_player_npcs")
	}
	return nil
}

func (c *SceneCreate) Scene() *Scene {
	s := &Scene{
		SceneID:               strings.TrimSpace(c.SceneID),
		Name:                  c.Name,
		Category:              c.Category,
		Chapter:               intOr(c.Chapter, 1),
		Description:           c.Description,
		BackgroundImage:       c.BackgroundImage,
		BackgroundMusic:       c.BackgroundMusic,
		Location:              c.Location,
		TimeOfDay:             c.TimeOfDay,
		Weather:               c.Weather,
		SceneType:             c.SceneType,
		DifficultyLevel:       intOr(c.DifficultyLevel, 1),
		EstimatedDuration:     c.EstimatedDuration,
		IsRepeatable:          c.IsRepeatable,
		MaxAttempts:           intOr(c.MaxAttempts, 1),
		CooldownHours:         c.CooldownHours,
		Status:                c.Status,
		CardCount:             c.CardCount,
		PrerequisiteScenes:    c.PrerequisiteScenes,
		DaysRequired:          c.DaysRequired,
		NarratorPrompt:        c.NarratorPrompt,
		AttributeRequirements: c.AttributeRequirements,
		CardRequirements:      c.CardRequirements,
		Prerequisites:         c.Prerequisites,
		Restrictions:          c.Restrictions,
		MinPlayerNPCs:         intOr(c.MinPlayerNPCs, 1),
		MaxPlayerNPCs:         intOr(c.MaxPlayerNPCs, 3),
		RecommendedNPCTypes:   c.RecommendedNPCTypes,
		SpecialBonuses:        c.SpecialBonuses,
		EvaluatorConfig:       c.EvaluatorConfig,
		SuccessRewards:        c.SuccessRewards,
		FailurePenalties:      c.FailurePenalties,
		DynamicEvents:         c.DynamicEvents,
		HiddenElements:        c.HiddenElements,
		IsActive:              true,
	}
	if s.Status == "" {
		s.Status = SceneStatusDraft
	}
	if s.PrerequisiteScenes == nil {
		s.PrerequisiteScenes = []string{}
	}
	return s
}

// SceneUpdate is a partial update. Status changes are not checked
// against the current status.
type SceneUpdate struct {
	Name            *string        `json:"name"`
	Category        *SceneCategory `json:"category"`
	Chapter         *int           `json:"chapter"`
	Description     *string        `json:"description"`
	BackgroundImage *string        `json:"background_image"`
	BackgroundMusic *string        `json:"background_music"`
	Location        *string        `json:"location"`
	TimeOfDay       *TimeOfDay     `json:"time_of_day"`
	Weather         *string        `json:"weather"`

	SceneType         *string `json:"scene_type"`
	DifficultyLevel   *int    `json:"difficulty_level"`
	EstimatedDuration *int    `json:"estimated_duration"`
	IsRepeatable      *bool   `json:"is_repeatable"`
	MaxAttempts       *int    `json:"max_attempts"`
	CooldownHours     *int    `json:"cooldown_hours"`

	Status *SceneStatus `json:"status"`

	CardCount          *int     `json:"card_count"`
	PrerequisiteScenes []string `json:"prerequisite_scenes"`
	DaysRequired       *int     `json:"days_required"`

	NarratorPrompt        *string        `json:"narrator_prompt"`
	AttributeRequirements map[string]any `json:"attribute_requirements"`
	CardRequirements      map[string]any `json:"card_requirements"`
	Prerequisites         map[string]any `json:"prerequisites"`
	Restrictions          map[string]any `json:"restrictions"`

	MinPlayerNPCs       *int     `json:"min_player_npcs"`
	MaxPlayerNPCs       *int     `json:"max_player_npcs"`
	RecommendedNPCTypes []string `json:"recommended_npc_types"`

	SpecialBonuses   map[string]any   `json:"special_bonuses"`
	EvaluatorConfig  map[string]any   `json:"evaluator_config"`
	SuccessRewards   map[string]any   `json:"success_rewards"`
	FailurePenalties map[string]any   `json:"failure_penalties"`
	DynamicEvents    []map[string]any `json:"dynamic_events"`
	HiddenElements   map[string]any   `json:"hidden_elements"`

	IsActive *bool `json:"is_active"`
}

func (u *SceneUpdate) Apply(s *Scene) error {
	if u.Category != nil {
		if _, err := Parse("category", string(*u.Category), SceneCategories); err != nil {
			return err
		}
	}
	if u.Status != nil {
		if _, err := Parse("status", string(*u.Status), SceneStatuses); err != nil {
			return err
		}
	}
	if u.TimeOfDay != nil {
		if err := checkEnum("time_of_day", *u.TimeOfDay, TimesOfDay); err != nil {
			return err
		}
	}

	set(&s.Name, u.Name)
	set(&s.Category, u.Category)
	set(&s.Chapter, u.Chapter)
	set(&s.Description, u.Description)
	set(&s.BackgroundImage, u.BackgroundImage)
	set(&s.BackgroundMusic, u.BackgroundMusic)
	set(&s.Location, u.Location)
	set(&s.TimeOfDay, u.TimeOfDay)
	set(&s.Weather, u.Weather)
	set(&s.SceneType, u.SceneType)
	set(&s.DifficultyLevel, u.DifficultyLevel)
	set(&s.EstimatedDuration, u.EstimatedDuration)
	set(&s.IsRepeatable, u.IsRepeatable)
	set(&s.MaxAttempts, u.MaxAttempts)
	set(&s.CooldownHours, u.CooldownHours)
	set(&s.Status, u.Status)
	set(&s.CardCount, u.CardCount)
	set(&s.DaysRequired, u.DaysRequired)
	set(&s.NarratorPrompt, u.NarratorPrompt)
	set(&s.MinPlayerNPCs, u.MinPlayerNPCs)
	set(&s.MaxPlayerNPCs, u.MaxPlayerNPCs)
	set(&s.IsActive, u.IsActive)
	if u.PrerequisiteScenes != nil {
		s.PrerequisiteScenes = u.PrerequisiteScenes
	}
	if u.AttributeRequirements != nil {
		s.AttributeRequirements = u.AttributeRequirements
	}
	if u.CardRequirements != nil {
		s.CardRequirements = u.CardRequirements
	}
	if u.Prerequisites != nil {
		s.Prerequisites = u.Prerequisites
	}
	if u.Restrictions != nil {
		s.Restrictions = u.Restrictions
	}
	if u.RecommendedNPCTypes != nil {
		s.RecommendedNPCTypes = u.RecommendedNPCTypes
	}
	if u.SpecialBonuses != nil {
		s.SpecialBonuses = u.SpecialBonuses
	}
	if u.EvaluatorConfig != nil {
		s.EvaluatorConfig = u.EvaluatorConfig
	}
	if u.SuccessRewards != nil {
		s.SuccessRewards = u.SuccessRewards
	}
	if u.FailurePenalties != nil {
		s.FailurePenalties = u.FailurePenalties
	}
	if u.DynamicEvents != nil {
		s.DynamicEvents = u.DynamicEvents
	}
	if u.HiddenElements != nil {
		s.HiddenElements = u.HiddenElements
	}
	return nil
}

// DisplayConfig is the small triple shown on the scene selection screen.
type DisplayConfig struct {
	CardCount          int      `json:"card_count"`
	PrerequisiteScenes []string `json:"prerequisite_scenes"`
	DaysRequired       int      `json:"days_required"`
}

func (d *DisplayConfig) Validate() error {
	if d.CardCount < 0 {
		return Invalid("card_count", "card_count must not be negative")
	}
	if d.DaysRequired < 0 {
		return Invalid("days_required", "days_required must not be negative")
	}
	return nil
}
