package game

import (
	"strings"
	"unicode/utf8"
)

// AIConfig is a stored prompt and parameter bundle for one AI role.
type AIConfig struct {
	ID               string         `json:"id"`
	ConfigID         string         `json:"config_id"`
	Name             string         `json:"name"`
	AIType           AIType         `json:"ai_type"`
	Description      string         `json:"description,omitempty"`
	BasePrompt       string         `json:"base_prompt"`
	SystemPrompt     string         `json:"system_prompt,omitempty"`
	ModelSettings    map[string]any `json:"model_settings,omitempty"`
	CharacterConfig  map[string]any `json:"character_config,omitempty"`
	EvaluationConfig map[string]any `json:"evaluation_config,omitempty"`
	GenerationConfig map[string]any `json:"generation_config,omitempty"`
	NarrationConfig  map[string]any `json:"narration_config,omitempty"`
	Version          string         `json:"version"`
	CreatedBy        string         `json:"created_by"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        int64          `json:"created_at"`
	UpdatedAt        int64          `json:"updated_at"`
}

type AIConfigCreate struct {
	ConfigID         string         `json:"config_id"`
	Name             string         `json:"name"`
	AIType           AIType         `json:"ai_type"`
	Description      string         `json:"description"`
	BasePrompt       string         `json:"base_prompt"`
	SystemPrompt     string         `json:"system_prompt"`
	ModelSettings    map[string]any `json:"model_settings"`
	CharacterConfig  map[string]any `json:"character_config"`
	EvaluationConfig map[string]any `json:"evaluation_config"`
	GenerationConfig map[string]any `json:"generation_config"`
	NarrationConfig  map[string]any `json:"narration_config"`
	Version          string         `json:"version"`
	CreatedBy        string         `json:"created_by"`
}

func (c *AIConfigCreate) Validate() error {
	if strings.TrimSpace(c.ConfigID) == "" {
		return Invalid("config_id", "config_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "name is required")
	}
	if _, err := Parse("ai_type", string(c.AIType), AITypes); err != nil {
		return err
	}
	if strings.TrimSpace(c.BasePrompt) == "" {
		return Invalid("base_prompt", "base_prompt is required")
	}
	return nil
}

func (c *AIConfigCreate) AIConfig() *AIConfig {
	cfg := &AIConfig{
		ConfigID:         strings.TrimSpace(c.ConfigID),
		Name:             c.Name,
		AIType:           c.AIType,
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
		IsActive:         true,
	}
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.CreatedBy == "" {
		cfg.CreatedBy = "admin"
	}
	return cfg
}

type AIConfigUpdate struct {
	Name             *string        `json:"name"`
	AIType           *AIType        `json:"ai_type"`
	Description      *string        `json:"description"`
	BasePrompt       *string        `json:"base_prompt"`
	SystemPrompt     *string        `json:"system_prompt"`
	ModelSettings    map[string]any `json:"model_settings"`
	CharacterConfig  map[string]any `json:"character_config"`
	EvaluationConfig map[string]any `json:"evaluation_config"`
	GenerationConfig map[string]any `json:"generation_config"`
	NarrationConfig  map[string]any `json:"narration_config"`
	Version          *string        `json:"version"`
	IsActive         *bool          `json:"is_active"`
}

func (u *AIConfigUpdate) Apply(c *AIConfig) error {
	if u.AIType != nil {
		if _, err := Parse("ai_type", string(*u.AIType), AITypes); err != nil {
			return err
		}
	}
	if u.BasePrompt != nil && strings.TrimSpace(*u.BasePrompt) == "" {
		return Invalid("base_prompt", "base_prompt must not be empty")
	}
	set(&c.Name, u.Name)
	set(&c.AIType, u.AIType)
	set(&c.Description, u.Description)
	set(&c.BasePrompt, u.BasePrompt)
	set(&c.SystemPrompt, u.SystemPrompt)
	set(&c.Version, u.Version)
	set(&c.IsActive, u.IsActive)
	if u.ModelSettings != nil {
		c.ModelSettings = u.ModelSettings
	}
	if u.CharacterConfig != nil {
		c.CharacterConfig = u.CharacterConfig
	}
	if u.EvaluationConfig != nil {
		c.EvaluationConfig = u.EvaluationConfig
	}
	if u.GenerationConfig != nil {
		c.GenerationConfig = u.GenerationConfig
	}
	if u.NarrationConfig != nil {
		c.NarrationConfig = u.NarrationConfig
	}
	return nil
}

// AIPerformance is a placeholder metrics report. No AI service is wired
// yet, so the figures are fixed.
type AIPerformance struct {
	ConfigID        string           `json:"config_id"`
	AvgResponseTime int              `json:"avg_response_time"`
	SuccessRate     float64          `json:"success_rate"`
	TotalCalls      int              `json:"total_calls"`
	TotalTokens     int              `json:"total_tokens"`
	RecentResponses []map[string]any `json:"recent_responses"`
}

func PerformanceReport(c *AIConfig) *AIPerformance {
	return &AIPerformance{
		ConfigID:        c.ConfigID,
		AvgResponseTime: 1250,
		SuccessRate:     0.95,
		TotalCalls:      1542,
		TotalTokens:     145860,
		RecentResponses: []map[string]any{},
	}
}

// AITestResult is the answer to a prompt dry run.
type AITestResult struct {
	Success        bool   `json:"success"`
	ResponseTimeMS int    `json:"response_time_ms"`
	TokensUsed     int    `json:"tokens_used"`
	ResponseText   string `json:"response_text"`
}

// DryRun estimates token use for prompt against c without calling a model.
// Tokens are approximated at four characters each.
func DryRun(c *AIConfig, prompt string) *AITestResult {
	chars := utf8.RuneCountInString(c.SystemPrompt) + utf8.RuneCountInString(c.BasePrompt) + utf8.RuneCountInString(prompt)
	tokens := (chars + 3) / 4
	return &AITestResult{
		Success:        true,
		ResponseTimeMS: 0,
		TokensUsed:     tokens,
		ResponseText:   "Dry run for " + string(c.AIType) + " config " + c.ConfigID + ": no AI service configured",
	}
}

// AIOptimizeResult lists prompt improvements.
type AIOptimizeResult struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	Optimizations []string `json:"optimizations"`
}

const longPromptRunes = 4000

// Optimize suggests static improvements to a config's prompts.
func Optimize(c *AIConfig) *AIOptimizeResult {
	var tips []string
	if strings.TrimSpace(c.SystemPrompt) == "" {
		tips = append(tips, "Add a system prompt to pin the model's role")
	}
	if utf8.RuneCountInString(c.BasePrompt) > longPromptRunes {
		tips = append(tips, "Base prompt is long; move static context into the system prompt")
	}
	if len(c.ModelSettings) == 0 {
		tips = append(tips, "Set model_settings such as temperature and max_tokens explicitly")
	}
	if c.AIType == AITypeNPC && len(c.CharacterConfig) == 0 {
		tips = append(tips, "NPC configs should define character_config")
	}
	if c.AIType == AITypeEvaluator && len(c.EvaluationConfig) == 0 {
		tips = append(tips, "Evaluator configs should define evaluation_config")
	}
	msg := "Configuration looks good"
	if len(tips) > 0 {
		msg = "Optimization suggestions generated"
	} else {
		tips = []string{}
	}
	return &AIOptimizeResult{Success: true, Message: msg, Optimizations: tips}
}
