package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		configType   string
		data         map[string]any
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:       "scene ok",
			configType: "scene",
			data:       map[string]any{"scene_id": "court_1", "name": "Court", "narrator_prompt": "Go"},
			wantValid:  true,
		},
		{
			name:         "scene id format warning",
			configType:   "scene",
			data:         map[string]any{"scene_id": "court-1", "name": "Court", "narrator_prompt": "Go"},
			wantValid:    true,
			wantWarnings: []string{"scene_id should contain only letters, digits and underscores"},
		},
		{
			name:       "scene missing prompt",
			configType: "scene",
			data:       map[string]any{"scene_id": "court_1", "name": "Court"},
			wantErrors: []string{"Missing required field: narrator_prompt"},
		},
		{
			name:       "npc intelligence out of range",
			configType: "npc",
			data: map[string]any{
				"npc_id": "guard", "name": "Guard", "intelligence": float64(25),
				"strength": float64(10), "defense": float64(10), "hp_max": float64(10),
			},
			wantErrors: []string{"Intelligence must be between 1 and 20"},
		},
		{
			name:       "card missing type",
			configType: "card",
			data:       map[string]any{"card_id": "c1", "name": "Pass", "rarity": "rare"},
			wantErrors: []string{"Missing required field: card_type"},
		},
		{
			name:       "unknown type",
			configType: "weather",
			data:       map[string]any{},
			wantErrors: []string{"Unknown config type: weather"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateConfig(tt.configType, tt.data)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantErrors == nil {
				tt.wantErrors = []string{}
			}
			if tt.wantWarnings == nil {
				tt.wantWarnings = []string{}
			}
			assert.Equal(t, tt.wantErrors, got.Errors)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"dialogue":         "Dialogue",
		"side_quest":       "Side Quest",
		"option_generator": "Option Generator",
		"ai_config":        "Ai Config",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnumOptions(t *testing.T) {
	opts := EnumOptions(TemplateTypes)
	assert.Len(t, opts, 4)
	assert.Equal(t, EnumOption{Value: "npc_config", Label: "Npc Config"}, opts[2])
}

func TestParse(t *testing.T) {
	v, err := Parse("rarity", "epic", Rarities)
	assert.NoError(t, err)
	assert.Equal(t, RarityEpic, v)

	_, err = Parse("rarity", "", Rarities)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}
