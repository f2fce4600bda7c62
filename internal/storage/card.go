package storage

import (
	"context"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// Card operations

func (s *SQLiteStorage) ListCards(ctx context.Context, f CardFilter) ([]game.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []cardRow
	q := s.db.NewSelect().Model(&rows).Where("c.is_active = ?", true)
	if f.Rarity != "" {
		q = q.Where("c.rarity = ?", string(f.Rarity))
	}
	if f.Category != "" {
		q = q.Where("c.category = ?", string(f.Category))
	}
	q = page(q.OrderExpr("c.created_at DESC, c.rowid DESC"), f.ListOptions)
	if err := q.Scan(ctx); err != nil {
		return nil, mapErr(err)
	}

	out := make([]game.Card, 0, len(rows))
	for i := range rows {
		c, err := cardFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *SQLiteStorage) GetCard(ctx context.Context, id string) (*game.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row cardRow
	if err := s.db.NewSelect().Model(&row).Where("c.id = ?", id).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return cardFromRow(&row)
}

func (s *SQLiteStorage) CreateCard(ctx context.Context, c *game.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.ID = newID()
	c.CreatedAt = s.unix()
	c.UpdatedAt = c.CreatedAt
	if _, err := s.db.NewInsert().Model(cardToRow(c)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateCard(ctx context.Context, c *game.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.UpdatedAt = s.unix()
	res, err := s.db.NewUpdate().Model(cardToRow(c)).WherePK().ExcludeColumn("created_at").Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) DeleteCard(ctx context.Context, id string) error {
	return s.softDelete(ctx, (*cardRow)(nil), id)
}
