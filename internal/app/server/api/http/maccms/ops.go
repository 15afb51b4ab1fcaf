package maccms

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "maccms-list",
		Method:      http.MethodGet,
		Path:        "/maccms",
		Summary:     "List MacCMS sources",
		Tags:        []string{"maccms"},
		Middlewares: h.middleware,
		Security:    h.security(),
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "maccms-create",
		Method:        http.MethodPost,
		Path:          "/maccms",
		Summary:       "Create a MacCMS source",
		Tags:          []string{"maccms"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
		Security:      h.security(),
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "maccms-delete",
		Method:      http.MethodDelete,
		Path:        "/maccms/{id}",
		Summary:     "Delete a MacCMS source",
		Description: "Returns the id of the deleted source",
		Tags:        []string{"maccms"},
		Middlewares: h.middleware,
		Security:    h.security(),
	}
}

func (h *Handler) batchImportOp() huma.Operation {
	return huma.Operation{
		OperationID: "maccms-batch-import",
		Method:      http.MethodPost,
		Path:        "/maccms/batch_import",
		Summary:     "Import MacCMS sources from a raw blob",
		Description: "Accepts a JSON array or one `name,api[,type]` per line and returns the number of new sources",
		Tags:        []string{"maccms"},
		Middlewares: h.middleware,
		Security:    h.security(),
	}
}

func (h *Handler) checkOp() huma.Operation {
	return huma.Operation{
		OperationID: "maccms-check",
		Method:      http.MethodGet,
		Path:        "/maccms/{id}/check",
		Summary:     "Fetch the home page of a MacCMS source",
		Description: "Requests the source API in its response type; an unreachable source yields 502",
		Tags:        []string{"maccms"},
		Middlewares: h.middleware,
		Security:    h.security(),
	}
}

func (h *Handler) security() []map[string][]string {
	if !h.secured {
		return nil
	}
	return []map[string][]string{{"bearer": {}}}
}
