package vod

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"neovideo/internal/domain/maccms"
	"neovideo/internal/model"
)

type Handler struct {
	service    maccms.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service maccms.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.homeOp(), h.home)
}

func (h *Handler) home(ctx context.Context, _ *struct{}) (*homeOutput, error) {
	items, err := h.service.Home(ctx)
	if err != nil {
		h.log.Error("vod home failed", "error", err)
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &homeOutput{
		Body: model.NewResult(items),
	}, nil
}
