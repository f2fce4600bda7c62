package storage

import (
	"context"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// AI config operations

func (s *SQLiteStorage) ListAIConfigs(ctx context.Context, f AIConfigFilter) ([]game.AIConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []aiConfigRow
	q := s.db.NewSelect().Model(&rows).Where("ac.is_active = ?", true)
	if f.AIType != "" {
		q = q.Where("ac.ai_type = ?", string(f.AIType))
	}
	q = page(q.OrderExpr("ac.created_at DESC, ac.rowid DESC"), f.ListOptions)
	if err := q.Scan(ctx); err != nil {
		return nil, mapErr(err)
	}

	out := make([]game.AIConfig, 0, len(rows))
	for i := range rows {
		c, err := aiConfigFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *SQLiteStorage) GetAIConfig(ctx context.Context, id string) (*game.AIConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row aiConfigRow
	if err := s.db.NewSelect().Model(&row).Where("ac.id = ?", id).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return aiConfigFromRow(&row)
}

func (s *SQLiteStorage) CreateAIConfig(ctx context.Context, c *game.AIConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.ID = newID()
	c.CreatedAt = s.unix()
	c.UpdatedAt = c.CreatedAt
	if _, err := s.db.NewInsert().Model(aiConfigToRow(c)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateAIConfig(ctx context.Context, c *game.AIConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.UpdatedAt = s.unix()
	res, err := s.db.NewUpdate().Model(aiConfigToRow(c)).WherePK().ExcludeColumn("created_at").Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) DeleteAIConfig(ctx context.Context, id string) error {
	return s.softDelete(ctx, (*aiConfigRow)(nil), id)
}
