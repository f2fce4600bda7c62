package storage

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/jwebster45206/sultan-admin/pkg/game"
)

// Template operations

// ListTemplates returns active templates, most used first.
func (s *SQLiteStorage) ListTemplates(ctx context.Context, f TemplateFilter) ([]game.ConfigTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []templateRow
	q := s.db.NewSelect().Model(&rows).Where("t.is_active = ?", true)
	if f.TemplateType != "" {
		q = q.Where("t.template_type = ?", string(f.TemplateType))
	}
	if f.Category != "" {
		q = q.Where("t.category = ?", string(f.Category))
	}
	if f.IsPublic != nil {
		q = q.Where("t.is_public = ?", *f.IsPublic)
	}
	q = page(q.OrderExpr("t.usage_count DESC, t.created_at DESC, t.rowid DESC"), f.ListOptions)
	if err := q.Scan(ctx); err != nil {
		return nil, mapErr(err)
	}

	out := make([]game.ConfigTemplate, 0, len(rows))
	for i := range rows {
		t, err := templateFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

// GetTemplate returns an active template. Deleted templates are not found.
func (s *SQLiteStorage) GetTemplate(ctx context.Context, id string) (*game.ConfigTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row templateRow
	err := s.db.NewSelect().
		Model(&row).
		Where("t.id = ?", id).
		Where("t.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return templateFromRow(&row)
}

func (s *SQLiteStorage) CreateTemplate(ctx context.Context, t *game.ConfigTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.ID = newID()
	if t.CreatedAt == 0 {
		t.CreatedAt = s.unix()
	}
	t.UpdatedAt = t.CreatedAt
	if _, err := s.db.NewInsert().Model(templateToRow(t)).Exec(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateTemplate(ctx context.Context, t *game.ConfigTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.UpdatedAt = s.unix()
	res, err := s.db.NewUpdate().Model(templateToRow(t)).WherePK().ExcludeColumn("created_at").Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (s *SQLiteStorage) DeleteTemplate(ctx context.Context, id string) error {
	return s.softDelete(ctx, (*templateRow)(nil), id)
}

func (s *SQLiteStorage) ApplySceneTemplate(ctx context.Context, templateID string, sc *game.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := s.unix()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.updateScene(ctx, tx, sc); err != nil {
			return err
		}
		res, err := tx.NewUpdate().
			Model((*templateRow)(nil)).
			Set("usage_count = usage_count + 1").
			Set("last_used_at = ?", now).
			Where("id = ?", templateID).
			Exec(ctx)
		if err != nil {
			return mapErr(err)
		}
		return affected(res)
	})
}
