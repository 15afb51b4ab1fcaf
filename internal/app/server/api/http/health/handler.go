package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"neovideo/internal/domain/maccms"
)

type Handler struct {
	repo       maccms.Repository
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler; repo может быть nil, тогда хранилище не проверяется
func NewHandler(repo maccms.Repository, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		repo:       repo,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	out := &Output{Body: Response{Status: "OK"}}
	if h.repo == nil {
		return out, nil
	}

	if _, err := h.repo.List(ctx); err != nil {
		h.log.Error("storage health check failed", "error", err)
		return nil, huma.Error503ServiceUnavailable("storage unavailable")
	}
	out.Body.Storage = "OK"

	return out, nil
}
