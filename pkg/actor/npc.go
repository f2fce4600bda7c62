package actor

import (
	"fmt"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// NewNPCActor builds a d20 actor from an NPC's combat stats.
// hp_max becomes max HP, defense becomes AC, and the nine bounded stats
// become attributes.
func NewNPCActor(npc *game.NPC) (*d20.Actor, error) {
	if npc == nil {
		return nil, fmt.Errorf("npc cannot be nil")
	}

	id := npc.NPCID
	if id == "" {
		id = npc.ID
	}

	actor, err := d20.NewActor(id).
		WithHP(npc.HPMax).
		WithAC(npc.Defense).
		WithAttributes(npc.Stats()).
		WithCombatModifiers(map[string]int{
			"command": npc.Command / 10,
			"stealth": npc.Stealth / 10,
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}
	return actor, nil
}

// Validate runs the NPC rules and then checks the NPC can be fielded as a
// combat actor.
func Validate(npc *game.NPC) *game.NPCReport {
	report := game.ValidateNPC(npc)
	if _, err := NewNPCActor(npc); err != nil {
		report.AddError(fmt.Sprintf("NPC cannot be used in combat: %v", err))
	}
	return report
}
