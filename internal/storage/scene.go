package storage

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// Scene operations

const npcCountExpr = "(SELECT COUNT(*) FROM scene_npcs AS sn WHERE sn.scene_id = s.id) AS npc_count"

// ListScenes returns active scenes with their bound NPC count, newest first.
func (s *SQLiteStorage) ListScenes(ctx context.Context, f SceneFilter) ([]game.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []sceneRow
	q := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("s.*").
		ColumnExpr(npcCountExpr).
		Where("s.is_active = ?", true)
	if f.Category != "" {
		q = q.Where("s.category = ?", string(f.Category))
	}
	if f.Status != "" {
		q = q.Where("s.status = ?", string(f.Status))
	}
	q = page(q.OrderExpr("s.created_at DESC, s.rowid DESC"), f.ListOptions)
	if err := q.Scan(ctx); err != nil {
		return nil, mapErr(err)
	}

	out := make([]game.Scene, 0, len(rows))
	for i := range rows {
		sc, err := sceneFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *sc)
	}
	return out, nil
}

func (s *SQLiteStorage) GetScene(ctx context.Context, id string) (*game.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row sceneRow
	err := s.db.NewSelect().
		Model(&row).
		ColumnExpr("s.*").
		ColumnExpr(npcCountExpr).
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return sceneFromRow(&row)
}

func (s *SQLiteStorage) CreateScene(ctx context.Context, sc *game.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sc.ID = newID()
	sc.CreatedAt = s.unix()
	sc.UpdatedAt = sc.CreatedAt
	row, err := sceneToRow(sc)
	if err != nil {
		return err
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateScene(ctx context.Context, sc *game.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.updateScene(ctx, s.db, sc)
}

func (s *SQLiteStorage) updateScene(ctx context.Context, db bun.IDB, sc *game.Scene) error {
	sc.UpdatedAt = s.unix()
	row, err := sceneToRow(sc)
	if err != nil {
		return err
	}
	res, err := db.NewUpdate().Model(row).WherePK().ExcludeColumn("created_at").Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) DeleteScene(ctx context.Context, id string) error {
	return s.softDelete(ctx, (*sceneRow)(nil), id)
}

func (s *SQLiteStorage) MissingScenes(ctx context.Context, sceneIDs []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sceneIDs) == 0 {
		return nil, nil
	}
	var found []string
	err := s.db.NewSelect().
		Model((*sceneRow)(nil)).
		Column("scene_id").
		Where("s.scene_id IN (?)", bun.In(sceneIDs)).
		Where("s.is_active = ?", true).
		Scan(ctx, &found)
	if err != nil {
		return nil, mapErr(err)
	}

	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	var missing []string
	for _, id := range sceneIDs {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// UpdateSceneDisplay writes only the display columns of the scene.
func (s *SQLiteStorage) UpdateSceneDisplay(ctx context.Context, id string, d *game.DisplayConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prereqs, err := encodePrerequisites(d.PrerequisiteScenes)
	if err != nil {
		return err
	}
	res, err := s.db.NewUpdate().
		Model((*sceneRow)(nil)).
		Set("card_count = ?", d.CardCount).
		Set("prerequisite_scenes = ?", prereqs).
		Set("days_required = ?", d.DaysRequired).
		Set("updated_at = ?", s.unix()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}
