package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
	"neovideo/internal/domain/maccms"
)

const uniqueViolation = "23505"

type MaccmsRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewMaccmsRepository(pool *pgxpool.Pool, log *slog.Logger) *MaccmsRepository {
	return &MaccmsRepository{
		pool: pool,
		log:  log.With("component", "maccms_repository"),
	}
}

func (r *MaccmsRepository) List(ctx context.Context) ([]maccms.Source, error) {
	const query = `
		SELECT id, name, api, resp_type, created_at, updated_at
		FROM maccms_sources
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
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
	const query = `
		SELECT id, name, api, resp_type, created_at, updated_at
		FROM maccms_sources
		WHERE id = $1`

	src, err := scanSource(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, maccms.ErrNotFound
		}
		r.log.Error("failed to get source", "id", id, "error", err)
		return nil, fmt.Errorf("get source: %w", err)
	}

	return src, nil
}

func (r *MaccmsRepository) Create(ctx context.Context, src *maccms.Source) (int, error) {
	const query = `
		INSERT INTO maccms_sources (name, api, resp_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		src.Name, src.Api, string(src.RespType), src.CreatedAt, src.UpdatedAt,
	).Scan(&src.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, maccms.ErrDuplicate
		}
		r.log.Error("failed to create source", "api", src.Api, "error", err)
		return 0, fmt.Errorf("create source: %w", err)
	}

	return src.ID, nil
}

func (r *MaccmsRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM maccms_sources WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete source", "id", id, "error", err)
		return fmt.Errorf("delete source: %w", err)
	}

	if result.RowsAffected() == 0 {
		return maccms.ErrNotFound
	}

	return nil
}

func (r *MaccmsRepository) CreateBatch(ctx context.Context, sources []maccms.Source) (int, error) {
	if len(sources) == 0 {
		return 0, nil
	}

	const query = `
		INSERT INTO maccms_sources (name, api, resp_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (api) DO NOTHING`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, src := range sources {
		batch.Queue(query, src.Name, src.Api, string(src.RespType), src.CreatedAt, src.UpdatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range sources {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			r.log.Error("failed to insert source batch", "error", err)
			return 0, fmt.Errorf("insert batch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}

	return inserted, nil
}

func scanSource(row pgx.Row) (*maccms.Source, error) {
	var src maccms.Source
	var respType string

	err := row.Scan(&src.ID, &src.Name, &src.Api, &respType, &src.CreatedAt, &src.UpdatedAt)
	if err != nil {
		return nil, err
	}
	src.RespType = maccms.RespType(respType)

	return &src, nil
}
