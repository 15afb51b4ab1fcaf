package model

import "net/http"

// Result - общий конверт ответа API, полезная нагрузка лежит в Data
type Result[T any] struct {
	Code    int    `json:"code" doc:"HTTP status code of the response"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// NewResult оборачивает успешный ответ
func NewResult[T any](data T) Result[T] {
	return Result[T]{
		Code:    http.StatusOK,
		Success: true,
		Data:    data,
	}
}

// WithMessage возвращает копию конверта с сообщением
func (r Result[T]) WithMessage(msg string) Result[T] {
	r.Message = msg
	return r
}

// WithCode возвращает копию конверта с кодом
func (r Result[T]) WithCode(code int) Result[T] {
	r.Code = code
	return r
}
