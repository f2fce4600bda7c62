package storage

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// Per-scene settings rows are keyed by scene id and saved whole.

func (s *SQLiteStorage) GetSceneReward(ctx context.Context, sceneID string) (*game.SceneReward, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row sceneRewardRow
	if err := s.db.NewSelect().Model(&row).Where("rw.scene_id = ?", sceneID).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return rewardFromRow(&row), nil
}

func (s *SQLiteStorage) SaveSceneReward(ctx context.Context, r *game.SceneReward) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.UpdatedAt = s.unix()
	return s.upsert(ctx, rewardToRow(r), (*sceneRewardRow)(nil), r.SceneID)
}

func (s *SQLiteStorage) GetSceneRewardExtended(ctx context.Context, sceneID string) (*game.SceneRewardExtended, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row sceneRewardExtendedRow
	if err := s.db.NewSelect().Model(&row).Where("rx.scene_id = ?", sceneID).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return rewardExtendedFromRow(&row)
}

func (s *SQLiteStorage) SaveSceneRewardExtended(ctx context.Context, r *game.SceneRewardExtended) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.UpdatedAt = s.unix()
	return s.upsert(ctx, rewardExtendedToRow(r), (*sceneRewardExtendedRow)(nil), r.SceneID)
}

func (s *SQLiteStorage) GetSceneAISettings(ctx context.Context, sceneID string) (*game.SceneAISettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row sceneAISettingsRow
	if err := s.db.NewSelect().Model(&row).Where("sai.scene_id = ?", sceneID).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return aiSettingsFromRow(&row), nil
}

func (s *SQLiteStorage) SaveSceneAISettings(ctx context.Context, a *game.SceneAISettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.UpdatedAt = s.unix()
	return s.upsert(ctx, aiSettingsToRow(a), (*sceneAISettingsRow)(nil), a.SceneID)
}

// upsert finds the row keyed by sceneID and overwrites every column but
// the key, or inserts row when there is none yet. Both steps share one
// transaction.
func (s *SQLiteStorage) upsert(ctx context.Context, row, model any, sceneID string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model(model).Where("scene_id = ?", sceneID).Exists(ctx)
		if err != nil {
			return mapErr(err)
		}
		if exists {
			_, err = tx.NewUpdate().Model(row).
				ExcludeColumn("scene_id").
				Where("scene_id = ?", sceneID).
				Exec(ctx)
		} else {
			_, err = tx.NewInsert().Model(row).Exec(ctx)
		}
		return mapErr(err)
	})
}
