package storage

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// Scene association rows. These are deleted outright on detach.

func (s *SQLiteStorage) ListCardBindings(ctx context.Context, sceneID string) ([]game.SceneCardBinding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []sceneCardBindingRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("scb.scene_id = ?", sceneID).
		OrderExpr("scb.created_at ASC, scb.rowid ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	cardIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		cardIDs = append(cardIDs, r.CardID)
	}
	names, err := s.names(ctx, (*cardRow)(nil), "c", cardIDs)
	if err != nil {
		return nil, err
	}

	out := make([]game.SceneCardBinding, 0, len(rows))
	for i := range rows {
		b, err := cardBindingFromRow(&rows[i], names[rows[i].CardID])
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *SQLiteStorage) CreateCardBinding(ctx context.Context, b *game.SceneCardBinding) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.ID = newID()
	b.CreatedAt = s.unix()
	if _, err := s.db.NewInsert().Model(cardBindingToRow(b)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

// DeleteCardBinding removes the binding only if it belongs to sceneID.
func (s *SQLiteStorage) DeleteCardBinding(ctx context.Context, sceneID, bindingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.NewDelete().
		Model((*sceneCardBindingRow)(nil)).
		Where("id = ?", bindingID).
		Where("scene_id = ?", sceneID).
		Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) ListSceneNPCs(ctx context.Context, sceneID string) ([]game.SceneNPC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []sceneNPCRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("sn.scene_id = ?", sceneID).
		OrderExpr("sn.speaking_priority ASC, sn.rowid ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	npcIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		npcIDs = append(npcIDs, r.NPCID)
	}
	names, err := s.names(ctx, (*npcRow)(nil), "n", npcIDs)
	if err != nil {
		return nil, err
	}

	out := make([]game.SceneNPC, 0, len(rows))
	for i := range rows {
		out = append(out, *sceneNPCFromRow(&rows[i], names[rows[i].NPCID]))
	}
	return out, nil
}

// AddSceneNPC links an NPC to a scene. Linking the same NPC twice returns
// ErrAlreadyExists.
func (s *SQLiteStorage) AddSceneNPC(ctx context.Context, l *game.SceneNPC) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.ID = newID()
	l.CreatedAt = s.unix()
	if _, err := s.db.NewInsert().Model(sceneNPCToRow(l)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) RemoveSceneNPC(ctx context.Context, sceneID, npcID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.NewDelete().
		Model((*sceneNPCRow)(nil)).
		Where("scene_id = ?", sceneID).
		Where("npc_id = ?", npcID).
		Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) ListSceneAIConfigs(ctx context.Context, sceneID string) ([]game.SceneAIConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []sceneAIConfigRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("sac.scene_id = ?", sceneID).
		OrderExpr("sac.execution_order ASC, sac.rowid ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	configs := make(map[string]*aiConfigRow, len(rows))
	if len(rows) > 0 {
		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.AIConfigID)
		}
		var cfgRows []aiConfigRow
		err := s.db.NewSelect().
			Model(&cfgRows).
			Column("id", "name", "ai_type").
			Where("ac.id IN (?)", bun.In(ids)).
			Scan(ctx)
		if err != nil {
			return nil, mapErr(err)
		}
		for i := range cfgRows {
			configs[cfgRows[i].ID] = &cfgRows[i]
		}
	}

	out := make([]game.SceneAIConfig, 0, len(rows))
	for i := range rows {
		out = append(out, *sceneAIConfigFromRow(&rows[i], configs[rows[i].AIConfigID]))
	}
	return out, nil
}

func (s *SQLiteStorage) AddSceneAIConfig(ctx context.Context, l *game.SceneAIConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.ID = newID()
	l.CreatedAt = s.unix()
	if _, err := s.db.NewInsert().Model(sceneAIConfigToRow(l)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) RemoveSceneAIConfig(ctx context.Context, sceneID, aiConfigID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.NewDelete().
		Model((*sceneAIConfigRow)(nil)).
		Where("scene_id = ?", sceneID).
		Where("ai_config_id = ?", aiConfigID).
		Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

// names maps internal ids to the name column of model's table.
func (s *SQLiteStorage) names(ctx context.Context, model any, alias string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var pairs []struct {
		ID   string `bun:"id"`
		Name string `bun:"name"`
	}
	err := s.db.NewSelect().
		Model(model).
		Column("id", "name").
		Where("?.id IN (?)", bun.Ident(alias), bun.In(ids)).
		Scan(ctx, &pairs)
	if err != nil {
		return nil, mapErr(err)
	}
	for _, p := range pairs {
		out[p.ID] = p.Name
	}
	return out, nil
}
