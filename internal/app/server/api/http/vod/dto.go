package vod

import (
	"neovideo/internal/domain/maccms"
	"neovideo/internal/model"
)

type homeOutput struct {
	Body model.Result[[]maccms.HomeItem]
}
