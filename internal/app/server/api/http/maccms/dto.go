package maccms

import (
	"neovideo/internal/domain/maccms"
	"neovideo/internal/model"
)

type listOutput struct {
	Body model.Result[[]maccms.Source]
}

type createInput struct {
	Body maccms.CreateRequest
}

type createOutput struct {
	Body model.Result[maccms.Source]
}

type deleteInput struct {
	ID int `path:"id" minimum:"1" example:"42" doc:"ID источника"`
}

type batchImportInput struct {
	Body maccms.BatchImportRequest
}

type countOutput struct {
	Body model.Result[int]
}

type checkInput struct {
	ID int `path:"id" minimum:"1" example:"42" doc:"ID источника"`
}

type checkOutput struct {
	Body model.Result[maccms.Home]
}
