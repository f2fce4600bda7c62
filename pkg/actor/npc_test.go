package actor

import (
	"testing"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

func TestNewNPCActor(t *testing.T) {
	npc := &game.NPC{
		NPCID:        "captain_of_guard",
		NPCType:      game.NPCTypeGame,
		Tier:         game.TierSilver,
		Faction:      game.FactionMilitary,
		Intelligence: 8,
		Strength:     70,
		Defense:      15,
		HPMax:        200,
		Charisma:     40,
		Command:      60,
	}

	a, err := NewNPCActor(npc)
	if err != nil {
		t.Fatalf("NewNPCActor() error = %v", err)
	}
	if a.MaxHP() != 200 {
		t.Errorf("MaxHP() = %d, want 200", a.MaxHP())
	}
	if a.AC() != 15 {
		t.Errorf("AC() = %d, want 15", a.AC())
	}
	strength, ok := a.Attribute("strength")
	if !ok || strength != 70 {
		t.Errorf("Attribute(strength) = %d, %v; want 70, true", strength, ok)
	}
	command, ok := a.Attribute("command")
	if !ok || command != 60 {
		t.Errorf("Attribute(command) = %d, %v; want 60, true", command, ok)
	}
}

func TestNewNPCActor_Nil(t *testing.T) {
	if _, err := NewNPCActor(nil); err == nil {
		t.Error("expected error for nil NPC")
	}
}

func TestValidate_ValidNPC(t *testing.T) {
	npc := &game.NPC{
		NPCID: "scribe", NPCType: game.NPCTypePlayer, Tier: game.TierBronze, Faction: game.FactionScholar,
		Intelligence: 15, Strength: 5, Defense: 5, HPMax: 40,
		PersonalityTraits: []string{"meticulous"}, SpeakingStyle: "quiet", DialogueGoals: []string{"record history"},
	}
	report := Validate(npc)
	if !report.IsValid {
		t.Errorf("expected valid report, got errors %v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", report.Warnings)
	}
}
