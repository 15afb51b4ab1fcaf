//GET    /health               # Проверка состояния (публичный)
//GET    /maccms               # Список источников MacCMS (auth)
//POST   /maccms               # Добавить источник (auth)
//DELETE /maccms/{id}          # Удалить источник (auth)
//POST   /maccms/batch_import  # Пакетный импорт из текста (auth)
//GET    /maccms/{id}/check    # Главная страница источника (auth)
//GET    /vod/home             # Главные страницы всех источников (публичный)

package api

import (
	healthAPI "neovideo/internal/app/server/api/http/health"
	maccmsAPI "neovideo/internal/app/server/api/http/maccms"
	vodAPI "neovideo/internal/app/server/api/http/vod"
	"neovideo/internal/app/server/api/http/middleware"
	"neovideo/internal/app/server/api/http/middleware/auth"
	"neovideo/internal/app/server/api/http/middleware/logger"
	"neovideo/internal/domain/maccms"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Maccms *maccmsAPI.Handler
	Vod    *vodAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(repo maccms.Repository, fetcher maccms.HomeFetcher, adminTokenHash string, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Neovideo API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(API, repo, fetcher, adminTokenHash, log)
	h.Health.SetupRoutes(API)
	h.Maccms.SetupRoutes(API)
	h.Vod.SetupRoutes(API)

	return mux
}

func handlers(API huma.API, repo maccms.Repository, fetcher maccms.HomeFetcher, adminTokenHash string, log *slog.Logger) *Handlers {
	authMW := auth.New(API, adminTokenHash, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	if !authMW.Enabled() {
		log.Warn("ADMIN_TOKEN_HASH is empty, /maccms is not protected")
	}

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(repo, log, middlewares.GetAllAndClear())

	maccmsService := maccms.NewService(repo, fetcher, log)
	middlewares.Add(loggerMW.Middleware())
	vodHandler := vodAPI.NewHandler(maccmsService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	maccmsHandler := maccmsAPI.NewHandler(maccmsService, log, middlewares.GetAllAndClear(), authMW.Enabled())

	return &Handlers{
		Health: healthHandler,
		Maccms: maccmsHandler,
		Vod:    vodHandler,
	}
}
