package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"neovideo/internal/domain/maccms"
	"neovideo/internal/infrastructure/storage/sqlite"
	"neovideo/internal/model"
	tokenutil "neovideo/internal/utils/token"
)

func newRepo(t *testing.T) maccms.Repository {
	t.Helper()

	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewMaccmsRepository(db.DB(), slog.Default())
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAPI_MaccmsFlow(t *testing.T) {
	mux := New(newRepo(t), maccms.NewFetcher(nil, slog.Default()), "", slog.Default())

	rec := do(t, mux, http.MethodGet, "/maccms", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty model.Result[[]maccms.Source]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)

	rec = do(t, mux, http.MethodPost, "/maccms", `{"name":"one","api":"https://one.example/api.php/provide/vod/at/xml"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Result[maccms.Source]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, maccms.RespTypeXML, created.Data.RespType)

	rec = do(t, mux, http.MethodPost, "/maccms/batch_import",
		`{"data":"two,https://two.example/api.php\nthree https://three.example/api.php"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var imported model.Result[int]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imported))
	assert.Equal(t, 2, imported.Data)

	rec = do(t, mux, http.MethodDelete, "/maccms/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/maccms", "", "")
	var list model.Result[[]maccms.Source]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
}

func TestAPI_Auth(t *testing.T) {
	hash, err := tokenutil.Hash("secret")
	require.NoError(t, err)

	mux := New(newRepo(t), maccms.NewFetcher(nil, slog.Default()), hash, slog.Default())

	assert.Equal(t, http.StatusUnauthorized, do(t, mux, http.MethodGet, "/maccms", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, mux, http.MethodGet, "/maccms", "", "wrong").Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/maccms", "", "secret").Code)

	assert.Equal(t, http.StatusUnauthorized, do(t, mux, http.MethodGet, "/maccms/1/check", "", "").Code)

	// health и vod/home остаются публичными
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/vod/home", "", "").Code)
}

func TestAPI_VodHome(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			_, _ = w.Write([]byte(`{"page":1,"pagecount":3,"total":60,"class":[{"type_id":1,"type_name":"movies"}],"list":[]}`))
		case "/xml":
			_, _ = w.Write([]byte(`<rss><list page="1" pagecount="2" recordcount="40"></list><class><ty id="5">anime</ty></class></rss>`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer upstream.Close()

	mux := New(newRepo(t), maccms.NewFetcher(upstream.Client(), slog.Default()), "", slog.Default())

	body := `{"data":"a,` + upstream.URL + `/json,json\nb,` + upstream.URL + `/xml,xml\nc,` + upstream.URL + `/down"}`
	rec := do(t, mux, http.MethodPost, "/maccms/batch_import", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, mux, http.MethodGet, "/vod/home", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var home model.Result[[]maccms.HomeItem]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	require.Len(t, home.Data, 3)

	require.NotNil(t, home.Data[0].Data)
	assert.Equal(t, 60, home.Data[0].Data.Total)
	require.NotNil(t, home.Data[1].Data)
	assert.Equal(t, "anime", home.Data[1].Data.Categories[0].Name)
	assert.Nil(t, home.Data[2].Data)
	assert.NotEmpty(t, home.Data[2].Error)

	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/maccms/2/check", "", "").Code)
	assert.Equal(t, http.StatusBadGateway, do(t, mux, http.MethodGet, "/maccms/3/check", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/maccms/99/check", "", "").Code)
}
