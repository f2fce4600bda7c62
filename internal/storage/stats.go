package storage

import (
	"context"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// Counts totals active rows per entity.
func (s *SQLiteStorage) Counts(ctx context.Context) (*Counts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var c Counts
	tables := []struct {
		model any
		dst   *int
	}{
		{(*sceneRow)(nil), &c.Scenes},
		{(*npcRow)(nil), &c.NPCs},
		{(*cardRow)(nil), &c.Cards},
		{(*aiConfigRow)(nil), &c.AIConfigs},
		{(*templateRow)(nil), &c.Templates},
	}
	for _, t := range tables {
		n, err := s.db.NewSelect().Model(t.model).Where("is_active = ?", true).Count(ctx)
		if err != nil {
			return nil, mapErr(err)
		}
		*t.dst = n
	}

	n, err := s.db.NewSelect().
		Model((*sceneRow)(nil)).
		Where("is_active = ?", true).
		Where("status = ?", string(game.SceneStatusActive)).
		Count(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	c.ActiveScenes = n
	return &c, nil
}
