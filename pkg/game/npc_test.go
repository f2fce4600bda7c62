package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validNPCCreate() *NPCCreate {
	return &NPCCreate{
		NPCID:        "grand_vizier",
		Name:         "Grand Vizier",
		NPCType:      NPCTypeGame,
		Tier:         TierGold,
		Faction:      FactionMinister,
		Intelligence: 18,
		Strength:     20,
		Defense:      30,
		HPMax:        120,
	}
}

func TestNPCCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *NPCCreate)
		wantMsg string
	}{
		{name: "valid", mutate: func(c *NPCCreate) {}},
		{name: "intelligence lower bound", mutate: func(c *NPCCreate) { c.Intelligence = 1 }},
		{name: "intelligence too low", mutate: func(c *NPCCreate) { c.Intelligence = 0 }, wantMsg: "Intelligence must be between 1 and 20"},
		{name: "intelligence too high", mutate: func(c *NPCCreate) { c.Intelligence = 21 }, wantMsg: "Intelligence must be between 1 and 20"},
		{name: "strength too high", mutate: func(c *NPCCreate) { c.Strength = 101 }, wantMsg: "Strength must be between 1 and 100"},
		{name: "defense too low", mutate: func(c *NPCCreate) { c.Defense = 0 }, wantMsg: "Defense must be between 1 and 100"},
		{name: "hp upper bound", mutate: func(c *NPCCreate) { c.HPMax = 500 }},
		{name: "hp too high", mutate: func(c *NPCCreate) { c.HPMax = 501 }, wantMsg: "HP must be between 1 and 500"},
		{name: "missing npc_id", mutate: func(c *NPCCreate) { c.NPCID = " " }, wantMsg: "npc_id is required"},
		{name: "bad tier", mutate: func(c *NPCCreate) { c.Tier = "platinum" }, wantMsg: `invalid tier "platinum"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validNPCCreate()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Equal(t, tt.wantMsg, err.Error())
				assert.True(t, errors.Is(err, ErrValidation))
			}
		})
	}
}

func TestNPCCreate_Defaults(t *testing.T) {
	npc := validNPCCreate().NPC()

	assert.Equal(t, 50, npc.Charisma)
	assert.Equal(t, 50, npc.Loyalty)
	assert.Equal(t, 0, npc.Fear)
	assert.Equal(t, 20, npc.AttributePointsDrop)
	assert.True(t, npc.IsActive)

	zero := 0
	c := validNPCCreate()
	c.Charisma = &zero
	assert.Equal(t, 0, c.NPC().Charisma, "explicit zero should not be replaced by the default")
}

func TestNPCUpdate_ApplySkipsRangeChecks(t *testing.T) {
	npc := validNPCCreate().NPC()
	intel := 99
	name := "Fallen Vizier"
	u := &NPCUpdate{Name: &name, Intelligence: &intel, PersonalityTraits: []string{"cunning"}}

	if err := u.Apply(npc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if npc.Intelligence != 99 {
		t.Errorf("Intelligence = %d, want 99", npc.Intelligence)
	}
	if npc.Name != name {
		t.Errorf("Name = %q, want %q", npc.Name, name)
	}
	if npc.Strength != 20 {
		t.Errorf("Strength changed to %d, absent fields must be left alone", npc.Strength)
	}
	assert.Equal(t, []string{"cunning"}, npc.PersonalityTraits)
}

func TestNPCUpdate_ApplyRejectsBadEnum(t *testing.T) {
	npc := validNPCCreate().NPC()
	faction := Faction("pirates")
	err := (&NPCUpdate{Faction: &faction}).Apply(npc)

	assert.ErrorIs(t, err, ErrInvalidEnum)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, FactionMinister, npc.Faction)
}

func TestNPCUpdate_ApplyRejectsBlankName(t *testing.T) {
	npc := validNPCCreate().NPC()
	blank := "   "
	err := (&NPCUpdate{Name: &blank}).Apply(npc)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Grand Vizier", npc.Name)
}

func TestValidateNPC(t *testing.T) {
	npc := validNPCCreate().NPC()
	report := ValidateNPC(npc)

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.ElementsMatch(t, []string{
		"No personality traits defined",
		"No speaking style defined",
		"No dialogue goals defined",
	}, report.Warnings)

	npc.Intelligence = 40
	npc.PersonalityTraits = []string{"proud"}
	npc.SpeakingStyle = "formal"
	npc.DialogueGoals = []string{"keep power"}
	report = ValidateNPC(npc)

	assert.False(t, report.IsValid)
	assert.Equal(t, []string{"Intelligence must be between 1 and 20"}, report.Errors)
	assert.Empty(t, report.Warnings)
}
