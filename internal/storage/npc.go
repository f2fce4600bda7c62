package storage

import (
	"context"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// NPC operations

// ListNPCs returns active NPCs, newest first.
func (s *SQLiteStorage) ListNPCs(ctx context.Context, f NPCFilter) ([]game.NPC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []npcRow
	q := s.db.NewSelect().Model(&rows).Where("n.is_active = ?", true)
	if f.NPCType != "" {
		q = q.Where("n.npc_type = ?", string(f.NPCType))
	}
	if f.Tier != "" {
		q = q.Where("n.tier = ?", string(f.Tier))
	}
	if f.Faction != "" {
		q = q.Where("n.faction = ?", string(f.Faction))
	}
	q = page(q.OrderExpr("n.created_at DESC, n.rowid DESC"), f.ListOptions)
	if err := q.Scan(ctx); err != nil {
		return nil, mapErr(err)
	}

	out := make([]game.NPC, 0, len(rows))
	for i := range rows {
		n, err := npcFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, nil
}

// GetNPC returns the NPC whether or not it is active.
func (s *SQLiteStorage) GetNPC(ctx context.Context, id string) (*game.NPC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row npcRow
	if err := s.db.NewSelect().Model(&row).Where("n.id = ?", id).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return npcFromRow(&row)
}

// CreateNPC assigns the id and timestamps and inserts n. A taken npc_id
// returns ErrAlreadyExists.
func (s *SQLiteStorage) CreateNPC(ctx context.Context, n *game.NPC) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.ID = newID()
	n.CreatedAt = s.unix()
	n.UpdatedAt = n.CreatedAt
	if _, err := s.db.NewInsert().Model(npcToRow(n)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateNPC(ctx context.Context, n *game.NPC) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.UpdatedAt = s.unix()
	res, err := s.db.NewUpdate().Model(npcToRow(n)).WherePK().ExcludeColumn("created_at").Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) DeleteNPC(ctx context.Context, id string) error {
	return s.softDelete(ctx, (*npcRow)(nil), id)
}
