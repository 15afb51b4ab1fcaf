package maccms

import (
	"context"
)

// Repository хранилище источников MacCMS
type Repository interface {
	List(ctx context.Context) ([]Source, error)
	Get(ctx context.Context, id int) (*Source, error)
	Create(ctx context.Context, src *Source) (int, error)
	Delete(ctx context.Context, id int) error

	// CreateBatch вставляет источники, пропуская уже известные api, и
	// возвращает число вставленных строк
	CreateBatch(ctx context.Context, sources []Source) (int, error)
}
