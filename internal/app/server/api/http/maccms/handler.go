package maccms

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"neovideo/internal/domain/maccms"
	"neovideo/internal/model"
)

type Handler struct {
	service    maccms.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	secured    bool
}

// NewHandler; secured помечает операции схемой bearer в OpenAPI
func NewHandler(service maccms.Servicer, log *slog.Logger, mws huma.Middlewares, secured bool) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
		secured:    secured,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.batchImportOp(), h.batchImport)
	huma.Register(api, h.checkOp(), h.check)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	sources, err := h.service.List(ctx)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &listOutput{
		Body: model.NewResult(sources),
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	src, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &createOutput{
		Body: model.NewResult(*src).WithCode(http.StatusCreated),
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*countOutput, error) {
	id, err := h.service.Delete(ctx, input.ID)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &countOutput{
		Body: model.NewResult(id).WithMessage("deleted"),
	}, nil
}

func (h *Handler) batchImport(ctx context.Context, input *batchImportInput) (*countOutput, error) {
	n, err := h.service.BatchImport(ctx, input.Body.Data)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &countOutput{
		Body: model.NewResult(n).WithMessage(fmt.Sprintf("imported %d", n)),
	}, nil
}

func (h *Handler) check(ctx context.Context, input *checkInput) (*checkOutput, error) {
	home, err := h.service.Check(ctx, input.ID)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &checkOutput{
		Body: model.NewResult(*home),
	}, nil
}

func (h *Handler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, maccms.ErrInvalidData), errors.Is(err, maccms.ErrEmptyImport):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, maccms.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, maccms.ErrDuplicate):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, maccms.ErrUpstream):
		return huma.Error502BadGateway(err.Error())
	}

	if h.log != nil {
		h.log.Error("maccms request failed", "error", err)
	}
	return huma.Error500InternalServerError("internal error")
}
