package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"neovideo/internal/app/client/config"
	"neovideo/internal/domain/maccms"
	"neovideo/internal/model"
)

const userAgent = "Neovideo-Admin/1.0"

// Client ресурсный клиент MacCMS: один запрос на вызов, без ретраев и кэша
type Client struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
}

// StatusError ответ сервера со статусом вне 2xx
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	var errResp struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(e.Body, &errResp); err == nil && (errResp.Detail != "" || errResp.Title != "") {
		msg := errResp.Detail
		if msg == "" {
			msg = errResp.Title
		}
		return fmt.Sprintf("ошибка сервера: статус %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.StatusCode)
}

func New(cfg *config.Config, log *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &http.Client{
		// 0 - без ограничения, остается только контекст
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &Client{
		client:  client,
		log:     log.With("component", "maccms_client"),
		baseURL: cfg.BaseURL(),
		token:   cfg.Token,
	}, nil
}

// BaseURL адрес API, к которому обращается клиент
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthCheck проверяет доступность сервера
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

// List GET /maccms
func (c *Client) List(ctx context.Context) ([]maccms.Source, error) {
	return call[[]maccms.Source](ctx, c, http.MethodGet, "/maccms", nil)
}

// Create POST /maccms, тело передается как есть
func (c *Client) Create(ctx context.Context, req maccms.CreateRequest) (maccms.Source, error) {
	return call[maccms.Source](ctx, c, http.MethodPost, "/maccms", req)
}

// Delete DELETE /maccms/{id}
func (c *Client) Delete(ctx context.Context, id int) (int, error) {
	return call[int](ctx, c, http.MethodDelete, fmt.Sprintf("/maccms/%d", id), nil)
}

// BatchImport POST /maccms/batch_import с {"data": raw}
func (c *Client) BatchImport(ctx context.Context, raw string) (int, error) {
	return call[int](ctx, c, http.MethodPost, "/maccms/batch_import", maccms.BatchImportRequest{Data: raw})
}

// Check GET /maccms/{id}/check
func (c *Client) Check(ctx context.Context, id int) (maccms.Home, error) {
	return call[maccms.Home](ctx, c, http.MethodGet, fmt.Sprintf("/maccms/%d/check", id), nil)
}

// Home GET /vod/home
func (c *Client) Home(ctx context.Context) ([]maccms.HomeItem, error) {
	return call[[]maccms.HomeItem](ctx, c, http.MethodGet, "/vod/home", nil)
}

// call выполняет запрос и возвращает поле data из конверта
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var result model.Result[T]

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return result.Data, err
	}
	if err := c.parseResponse(resp, &result); err != nil {
		var zero T
		return zero, err
	}

	return result.Data, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Добавляем заголовки
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	c.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}
