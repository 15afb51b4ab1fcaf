package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"neovideo/internal/app/client/config"
	"neovideo/internal/domain/maccms"
)

type recorded struct {
	method string
	path   string
	body   string
	header http.Header
}

func newTestClient(t *testing.T, status int, response string) (*Client, *recorded, *int32) {
	t.Helper()

	rec := &recorded{}
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		body, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.RequestURI()
		rec.body = string(body)
		rec.header = r.Header.Clone()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	c, err := New(&config.Config{ServerAddress: srv.URL, Token: "secret"}, slog.Default())
	require.NoError(t, err)

	return c, rec, &calls
}

func TestClient_List(t *testing.T) {
	c, rec, calls := newTestClient(t, http.StatusOK,
		`{"code":200,"success":true,"data":[{"id":1,"name":"one","api":"https://one.example/api.php","resp_type":"json"}]}`)

	sources, err := c.List(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/maccms", rec.path)
	assert.Empty(t, rec.body)
	assert.Equal(t, "Bearer secret", rec.header.Get("Authorization"))
	require.Len(t, sources, 1)
	assert.Equal(t, "one", sources[0].Name)
}

func TestClient_Create(t *testing.T) {
	c, rec, calls := newTestClient(t, http.StatusCreated,
		`{"code":201,"success":true,"data":{"id":7,"name":"n","api":"https://n.example","resp_type":"xml"}}`)

	src, err := c.Create(context.Background(), maccms.CreateRequest{Name: "n", Api: "https://n.example"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/maccms", rec.path)
	assert.JSONEq(t, `{"name":"n","api":"https://n.example"}`, rec.body)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
	assert.Equal(t, 7, src.ID)
	assert.Equal(t, maccms.RespTypeXML, src.RespType)
}

func TestClient_Delete(t *testing.T) {
	c, rec, calls := newTestClient(t, http.StatusOK, `{"code":200,"success":true,"data":42}`)

	id, err := c.Delete(context.Background(), 42)
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/maccms/42", rec.path)
	assert.Equal(t, 42, id)
}

func TestClient_BatchImport(t *testing.T) {
	c, rec, calls := newTestClient(t, http.StatusOK, `{"code":200,"success":true,"data":3}`)

	n, err := c.BatchImport(context.Background(), "a,b,c")
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/maccms/batch_import", rec.path)
	assert.JSONEq(t, `{"data":"a,b,c"}`, rec.body)
	assert.Equal(t, 3, n)
}

func TestClient_Check(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK,
		`{"code":200,"success":true,"data":{"page":1,"page_count":4,"total":80,"categories":[{"id":1,"name":"movies"}],"videos":[]}}`)

	home, err := c.Check(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/maccms/3/check", rec.path)
	assert.Equal(t, 80, home.Total)
	assert.Equal(t, []maccms.Category{{ID: 1, Name: "movies"}}, home.Categories)
}

func TestClient_Home(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK,
		`{"code":200,"success":true,"data":[{"id":1,"name":"a","api":"https://a.example","data":{"total":2}},{"id":2,"name":"b","api":"https://b.example","error":"status 500"}]}`)

	items, err := c.Home(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/vod/home", rec.path)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Data.Total)
	assert.Nil(t, items[1].Data)
	assert.Equal(t, "status 500", items[1].Error)
}

func TestClient_StatusError(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{name: "list", call: func(c *Client) error {
			_, err := c.List(context.Background())
			return err
		}},
		{name: "create", call: func(c *Client) error {
			_, err := c.Create(context.Background(), maccms.CreateRequest{Name: "n", Api: "https://n.example"})
			return err
		}},
		{name: "delete", call: func(c *Client) error {
			_, err := c.Delete(context.Background(), 1)
			return err
		}},
		{name: "batch import", call: func(c *Client) error {
			_, err := c.BatchImport(context.Background(), "a,https://a.example")
			return err
		}},
		{name: "check", call: func(c *Client) error {
			_, err := c.Check(context.Background(), 1)
			return err
		}},
		{name: "home", call: func(c *Client) error {
			_, err := c.Home(context.Background())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, calls := newTestClient(t, http.StatusInternalServerError,
				`{"title":"Internal Server Error","status":500,"detail":"internal error"}`)

			err := tt.call(c)
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
			assert.Contains(t, err.Error(), "internal error")
			// без повторов
			assert.EqualValues(t, 1, atomic.LoadInt32(calls))
		})
	}
}

func TestClient_DecodeError(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `not json`)

	_, err := c.Delete(context.Background(), 1)
	require.Error(t, err)

	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := New(&config.Config{ServerAddress: addr}, slog.Default())
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)

	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr))
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _, _ := newTestClient(t, http.StatusOK, `{"data":[]}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_RequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c, err := New(&config.Config{ServerAddress: srv.URL, RequestTimeout: 50 * time.Millisecond}, slog.Default())
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)

	var netErr net.Error
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout())
}

func TestClient_BasePath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c, err := New(&config.Config{ServerAddress: srv.URL, BasePath: "/api/"}, slog.Default())
	require.NoError(t, err)

	sources, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sources)
	assert.Equal(t, "/api/maccms", path)
}
