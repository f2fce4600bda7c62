package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a write hits a unique constraint.
	ErrAlreadyExists = errors.New("already exists")
)

// Storage defines every persistence operation of the admin backend.
// Entity ids are internal UUIDs unless a parameter says otherwise.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// NPC operations
	ListNPCs(ctx context.Context, f NPCFilter) ([]game.NPC, error)
	GetNPC(ctx context.Context, id string) (*game.NPC, error)
	CreateNPC(ctx context.Context, n *game.NPC) error
	UpdateNPC(ctx context.Context, n *game.NPC) error
	DeleteNPC(ctx context.Context, id string) error

	// Card operations
	ListCards(ctx context.Context, f CardFilter) ([]game.Card, error)
	GetCard(ctx context.Context, id string) (*game.Card, error)
	CreateCard(ctx context.Context, c *game.Card) error
	UpdateCard(ctx context.Context, c *game.Card) error
	DeleteCard(ctx context.Context, id string) error

	// Scene operations
	ListScenes(ctx context.Context, f SceneFilter) ([]game.Scene, error)
	GetScene(ctx context.Context, id string) (*game.Scene, error)
	CreateScene(ctx context.Context, s *game.Scene) error
	UpdateScene(ctx context.Context, s *game.Scene) error
	DeleteScene(ctx context.Context, id string) error
	// MissingScenes returns the business scene ids that do not name an
	// active scene, in input order.
	MissingScenes(ctx context.Context, sceneIDs []string) ([]string, error)
	UpdateSceneDisplay(ctx context.Context, id string, d *game.DisplayConfig) error

	// Scene requirements
	ListSceneRequirements(ctx context.Context, sceneID string, t game.RequirementType) ([]game.SceneRequirement, error)
	// ReplaceAttributeRequirements swaps every attribute row of the scene
	// for rows in one transaction.
	ReplaceAttributeRequirements(ctx context.Context, sceneID string, rows []game.SceneRequirement) error

	// Scene card bindings
	ListCardBindings(ctx context.Context, sceneID string) ([]game.SceneCardBinding, error)
	CreateCardBinding(ctx context.Context, b *game.SceneCardBinding) error
	DeleteCardBinding(ctx context.Context, sceneID, bindingID string) error

	// Scene NPC links
	ListSceneNPCs(ctx context.Context, sceneID string) ([]game.SceneNPC, error)
	AddSceneNPC(ctx context.Context, l *game.SceneNPC) error
	RemoveSceneNPC(ctx context.Context, sceneID, npcID string) error

	// Scene AI config links
	ListSceneAIConfigs(ctx context.Context, sceneID string) ([]game.SceneAIConfig, error)
	AddSceneAIConfig(ctx context.Context, l *game.SceneAIConfig) error
	RemoveSceneAIConfig(ctx context.Context, sceneID, aiConfigID string) error

	// Per-scene settings. Getters return ErrNotFound until the first save.
	GetSceneReward(ctx context.Context, sceneID string) (*game.SceneReward, error)
	SaveSceneReward(ctx context.Context, r *game.SceneReward) error
	GetSceneRewardExtended(ctx context.Context, sceneID string) (*game.SceneRewardExtended, error)
	SaveSceneRewardExtended(ctx context.Context, r *game.SceneRewardExtended) error
	GetSceneAISettings(ctx context.Context, sceneID string) (*game.SceneAISettings, error)
	SaveSceneAISettings(ctx context.Context, s *game.SceneAISettings) error

	// AI config operations
	ListAIConfigs(ctx context.Context, f AIConfigFilter) ([]game.AIConfig, error)
	GetAIConfig(ctx context.Context, id string) (*game.AIConfig, error)
	CreateAIConfig(ctx context.Context, c *game.AIConfig) error
	UpdateAIConfig(ctx context.Context, c *game.AIConfig) error
	DeleteAIConfig(ctx context.Context, id string) error

	// Template operations
	ListTemplates(ctx context.Context, f TemplateFilter) ([]game.ConfigTemplate, error)
	GetTemplate(ctx context.Context, id string) (*game.ConfigTemplate, error)
	CreateTemplate(ctx context.Context, t *game.ConfigTemplate) error
	UpdateTemplate(ctx context.Context, t *game.ConfigTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	// ApplySceneTemplate saves the already-modified scene and records one
	// use of the template in the same transaction.
	ApplySceneTemplate(ctx context.Context, templateID string, s *game.Scene) error

	Counts(ctx context.Context) (*Counts, error)
}

// ListOptions pages a list query.
type ListOptions struct {
	Skip  int
	Limit int
}

type NPCFilter struct {
	ListOptions
	NPCType game.NPCType
	Tier    game.Tier
	Faction game.Faction
}

type CardFilter struct {
	ListOptions
	Rarity   game.Rarity
	Category game.CardCategory
}

type SceneFilter struct {
	ListOptions
	Category game.SceneCategory
	Status   game.SceneStatus
}

type AIConfigFilter struct {
	ListOptions
	AIType game.AIType
}

type TemplateFilter struct {
	ListOptions
	TemplateType game.TemplateType
	Category     game.TemplateCategory
	IsPublic     *bool
}

// Counts are active row totals for the dashboard.
type Counts struct {
	Scenes       int `json:"total_scenes"`
	NPCs         int `json:"total_npcs"`
	Cards        int `json:"total_cards"`
	AIConfigs    int `json:"total_ai_configs"`
	Templates    int `json:"total_templates"`
	ActiveScenes int `json:"active_scenes"`
}
