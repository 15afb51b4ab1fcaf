package vod

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) homeOp() huma.Operation {
	return huma.Operation{
		OperationID: "vod-home",
		Method:      http.MethodGet,
		Path:        "/vod/home",
		Summary:     "Home pages of all MacCMS sources",
		Description: "Fetched concurrently and cached for a short time; a failed source carries `error` instead of `data`",
		Tags:        []string{"vod"},
		Middlewares: h.middleware,
	}
}
