package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
	"neovideo/internal/domain/maccms"
)

type MaccmsRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewMaccmsRepository(db *sql.DB, log *slog.Logger) *MaccmsRepository {
	return &MaccmsRepository{
		db:  db,
		log: log.With("component", "maccms_repository"),
	}
}

func (r *MaccmsRepository) List(ctx context.Context) ([]maccms.Source, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, api, resp_type, created_at, updated_at
		FROM maccms_sources
		ORDER BY id`)
	if err != nil {
		r.log.Error("failed to list sources", "error", err)
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []maccms.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, *src)
	}

	return sources, rows.Err()
}

func (r *MaccmsRepository) Get(ctx context.Context, id int) (*maccms.Source, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, api, resp_type, created_at, updated_at
		FROM maccms_sources
		WHERE id = ?`, id)

	src, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, maccms.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get source", "id", id, "error", err)
		return nil, fmt.Errorf("get source: %w", err)
	}

	return src, nil
}

func (r *MaccmsRepository) Create(ctx context.Context, src *maccms.Source) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO maccms_sources (name, api, resp_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		src.Name, src.Api, string(src.RespType), src.CreatedAt.UTC(), src.UpdatedAt.UTC())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, maccms.ErrDuplicate
		}
		r.log.Error("failed to create source", "api", src.Api, "error", err)
		return 0, fmt.Errorf("create source: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	src.ID = int(id)

	return src.ID, nil
}

func (r *MaccmsRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maccms_sources WHERE id = ?`, id)
	if err != nil {
		r.log.Error("failed to delete source", "id", id, "error", err)
		return fmt.Errorf("delete source: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return maccms.ErrNotFound
	}

	return nil
}

func (r *MaccmsRepository) CreateBatch(ctx context.Context, sources []maccms.Source) (int, error) {
	if len(sources) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO maccms_sources (name, api, resp_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, src := range sources {
		res, err := stmt.ExecContext(ctx, src.Name, src.Api, string(src.RespType), src.CreatedAt.UTC(), src.UpdatedAt.UTC())
		if err != nil {
			r.log.Error("failed to insert source batch", "api", src.Api, "error", err)
			return 0, fmt.Errorf("insert batch: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}

	return inserted, nil
}

func scanSource(row interface {
	Scan(dest ...interface{}) error
}) (*maccms.Source, error) {
	var src maccms.Source
	var respType string

	if err := row.Scan(&src.ID, &src.Name, &src.Api, &respType, &src.CreatedAt, &src.UpdatedAt); err != nil {
		return nil, err
	}
	src.RespType = maccms.RespType(respType)

	return &src, nil
}
