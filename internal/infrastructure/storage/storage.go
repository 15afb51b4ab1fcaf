package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
	"neovideo/internal/app/server/config"
	"neovideo/internal/domain/maccms"
	"neovideo/internal/infrastructure/storage/postgres"
	"neovideo/internal/infrastructure/storage/sqlite"
)

// Storage репозитории сервера поверх выбранного драйвера
type Storage struct {
	Maccms maccms.Repository
	close  func() error
}

// Open подключается к БД, выбирая драйвер по DATABASE_URI
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	switch cfg.Driver() {
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("storage opened", "driver", config.DriverSQLite, "path", cfg.SQLitePath())
		return &Storage{
			Maccms: sqlite.NewMaccmsRepository(db.DB(), log),
			close:  db.Close,
		}, nil
	default:
		db, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info("storage opened", "driver", config.DriverPostgres)
		return &Storage{
			Maccms: postgres.NewMaccmsRepository(db.Pool(), log),
			close:  db.Close,
		}, nil
	}
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
