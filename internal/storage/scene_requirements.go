package storage

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// ListSceneRequirements returns the requirement rows of a scene. An empty
// type returns every row.
func (s *SQLiteStorage) ListSceneRequirements(ctx context.Context, sceneID string, t game.RequirementType) ([]game.SceneRequirement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []sceneRequirementRow
	q := s.db.NewSelect().Model(&rows).Where("sr.scene_id = ?", sceneID)
	if t != "" {
		q = q.Where("sr.requirement_type = ?", string(t))
	}
	if err := q.OrderExpr("sr.priority ASC, sr.rowid ASC").Scan(ctx); err != nil {
		return nil, mapErr(err)
	}

	out := make([]game.SceneRequirement, 0, len(rows))
	for i := range rows {
		r, err := requirementFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *SQLiteStorage) ReplaceAttributeRequirements(ctx context.Context, sceneID string, reqs []game.SceneRequirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := s.unix()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*sceneRequirementRow)(nil)).
			Where("scene_id = ?", sceneID).
			Where("requirement_type = ?", string(game.RequirementAttribute)).
			Exec(ctx)
		if err != nil {
			return mapErr(err)
		}
		if len(reqs) == 0 {
			return nil
		}

		rows := make([]*sceneRequirementRow, 0, len(reqs))
		for i := range reqs {
			reqs[i].ID = newID()
			reqs[i].SceneID = sceneID
			reqs[i].CreatedAt = now
			rows = append(rows, requirementToRow(&reqs[i]))
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return mapErr(err)
		}
		return nil
	})
}
