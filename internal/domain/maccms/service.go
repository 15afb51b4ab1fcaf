package maccms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const (
	// HomeCacheTTL время жизни собранной главной
	HomeCacheTTL = 42 * time.Second
	homeCacheKey = "$home"
	// homeFetchLimit ограничивает число одновременных запросов к источникам
	homeFetchLimit = 8
)

// Service implements the MacCMS catalogue operations.
type Service struct {
	repo    Repository
	fetcher HomeFetcher
	cache   *cache.Cache
	log     *slog.Logger
}

type Servicer interface {
	List(ctx context.Context) ([]Source, error)
	Create(ctx context.Context, req CreateRequest) (*Source, error)
	Delete(ctx context.Context, id int) (int, error)
	BatchImport(ctx context.Context, raw string) (int, error)
	Check(ctx context.Context, id int) (*Home, error)
	Home(ctx context.Context) ([]HomeItem, error)
}

// NewService creates a new MacCMS service
func NewService(repo Repository, fetcher HomeFetcher, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		cache:   cache.New(HomeCacheTTL, time.Minute),
		log:     log.With("component", "maccms_service"),
	}
}

// List returns every registered source
func (s *Service) List(ctx context.Context) ([]Source, error) {
	sources, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list sources", "error", err)
		return nil, fmt.Errorf("list sources: %w", err)
	}
	if sources == nil {
		sources = []Source{}
	}
	return sources, nil
}

// Create validates and stores a new source
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Source, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	now := time.Now()
	src := &Source{
		Name:      req.Name,
		Api:       req.Api,
		RespType:  req.RespType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, src)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		s.log.Error("failed to create source", "api", req.Api, "error", err)
		return nil, fmt.Errorf("create source: %w", err)
	}
	src.ID = id

	s.cache.Delete(homeCacheKey)
	s.log.Info("source created", "id", id, "name", src.Name)
	return src, nil
}

// Delete removes a source and returns its id
func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	if id <= 0 {
		return 0, ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		s.log.Error("failed to delete source", "id", id, "error", err)
		return 0, fmt.Errorf("delete source: %w", err)
	}

	s.cache.Delete(homeCacheKey)
	s.log.Info("source deleted", "id", id)
	return id, nil
}

// BatchImport parses the blob and stores every new source
func (s *Service) BatchImport(ctx context.Context, raw string) (int, error) {
	parsed := Parse(raw)
	if len(parsed) == 0 {
		return 0, ErrEmptyImport
	}

	now := time.Now()
	sources := make([]Source, 0, len(parsed))
	for _, p := range parsed {
		sources = append(sources, Source{
			Name:      p.Name,
			Api:       p.Api,
			RespType:  p.RespType,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	inserted, err := s.repo.CreateBatch(ctx, sources)
	if err != nil {
		s.log.Error("failed to import sources", "parsed", len(parsed), "error", err)
		return 0, fmt.Errorf("import sources: %w", err)
	}

	if inserted > 0 {
		s.cache.Delete(homeCacheKey)
	}
	s.log.Info("sources imported", "parsed", len(parsed), "inserted", inserted)
	return inserted, nil
}

// Check fetches the home page of one stored source using its RespType
func (s *Service) Check(ctx context.Context, id int) (*Home, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	src, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get source: %w", err)
	}

	home, err := s.fetcher.FetchHome(ctx, *src)
	if err != nil {
		s.log.Warn("source check failed", "id", id, "api", src.Api, "error", err)
		return nil, err
	}

	return home, nil
}

// Home fetches every source concurrently. A failing source is reported in its
// item and does not fail the whole call. The result is cached for HomeCacheTTL.
func (s *Service) Home(ctx context.Context) ([]HomeItem, error) {
	if cached, ok := s.cache.Get(homeCacheKey); ok {
		if items, ok := cached.([]HomeItem); ok {
			return items, nil
		}
	}

	sources, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]HomeItem, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(homeFetchLimit)
	for i, src := range sources {
		g.Go(func() error {
			item := HomeItem{ID: src.ID, Name: src.Name, Api: src.Api}
			home, err := s.fetcher.FetchHome(gctx, src)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Data = home
			}
			// каждая горутина пишет только свой индекс
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	s.cache.SetDefault(homeCacheKey, items)

	return items, nil
}
