package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/jwebster45206/sultan-admin/internal/storage/migrations"
	"github.com/jwebster45206/sultan-admin/internal/storage/sqlitemigrate"
)

// SQLiteStorage implements Storage on a single SQLite file through bun.
type SQLiteStorage struct {
	db     *bun.DB
	logger *slog.Logger
	now    func() time.Time
}

// Ensure SQLiteStorage implements Storage interface
var _ Storage = (*SQLiteStorage)(nil)

// Open opens the database at path, applies pending migrations and
// verifies the connection.
func Open(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps the
	// pragmas applied to every statement.
	sqldb.SetMaxOpenConns(1)

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	applied, err := sqlitemigrate.Apply(ctx, sqldb, migrations.FS)
	if err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, name := range applied {
		logger.Info("Applied migration", "name", name)
	}

	return &SQLiteStorage{
		db:     bun.NewDB(sqldb, sqlitedialect.New()),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Health and lifecycle methods

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database", "error", err)
		return err
	}
	s.logger.Info("Database connection closed")
	return nil
}

func (s *SQLiteStorage) unix() int64 {
	return s.now().UTC().Unix()
}

// mapErr translates driver errors into the package sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
		}
	}
	return err
}

// affected returns ErrNotFound when an update or delete matched nothing.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

// page applies skip/limit. A non-positive limit is unbounded; SQLite
// rejects OFFSET without LIMIT, so a skip alone gets MaxInt32.
func page(q *bun.SelectQuery, o ListOptions) *bun.SelectQuery {
	switch {
	case o.Limit > 0:
		q = q.Limit(o.Limit)
	case o.Skip > 0:
		q = q.Limit(math.MaxInt32)
	}
	if o.Skip > 0 {
		q = q.Offset(o.Skip)
	}
	return q
}

// softDelete marks one row of model inactive.
func (s *SQLiteStorage) softDelete(ctx context.Context, model any, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.NewUpdate().
		Model(model).
		Set("is_active = ?", false).
		Set("updated_at = ?", s.unix()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}
