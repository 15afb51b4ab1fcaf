package maccms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const jsonHomeBody = `{
	"code": 1, "page": "1", "pagecount": 12, "total": 240,
	"class": [{"type_id": 1, "type_name": "电影"}, {"type_id": 2, "type_name": "连续剧"}],
	"list": [{"vod_id": 101, "type_id": 1, "vod_name": "Alpha", "vod_time": "2024-05-01 10:20:30"}]
}`

const xmlHomeBody = `<?xml version="1.0" encoding="utf-8"?>
<rss version="5.1">
	<list page="2" pagecount="30" pagesize="20" recordcount="600">
		<video><last>2024-05-02 08:00:00</last><id>7</id><tid>2</tid><name><![CDATA[Beta]]></name></video>
		<video><last>bad</last><id>8</id><tid>1</tid><name>Gamma</name></video>
	</list>
	<class><ty id="1">电影</ty><ty id="2">连续剧</ty></class>
</rss>`

func newUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_FetchHome_JSON(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, jsonHomeBody)
	f := NewFetcher(srv.Client(), slog.Default())

	home, err := f.FetchHome(context.Background(), Source{ID: 1, Api: srv.URL, RespType: RespTypeJSON})
	require.NoError(t, err)

	assert.Equal(t, 1, home.Page)
	assert.Equal(t, 12, home.PageCount)
	assert.Equal(t, 240, home.Total)
	assert.Equal(t, []Category{{ID: 1, Name: "电影"}, {ID: 2, Name: "连续剧"}}, home.Categories)
	require.Len(t, home.Videos, 1)
	assert.Equal(t, 101, home.Videos[0].ID)
	assert.Equal(t, "Alpha", home.Videos[0].Name)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC), home.Videos[0].UpdatedAt)
}

func TestFetcher_FetchHome_XML(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, xmlHomeBody)
	f := NewFetcher(srv.Client(), slog.Default())

	home, err := f.FetchHome(context.Background(), Source{ID: 2, Api: srv.URL, RespType: RespTypeXML})
	require.NoError(t, err)

	assert.Equal(t, 2, home.Page)
	assert.Equal(t, 30, home.PageCount)
	assert.Equal(t, 600, home.Total)
	assert.Equal(t, []Category{{ID: 1, Name: "电影"}, {ID: 2, Name: "连续剧"}}, home.Categories)
	require.Len(t, home.Videos, 2)
	assert.Equal(t, Video{ID: 7, CategoryID: 2, Name: "Beta", UpdatedAt: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)}, home.Videos[0])
	assert.True(t, home.Videos[1].UpdatedAt.IsZero())
}

func TestFetcher_FetchHome_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		respType RespType
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops", respType: RespTypeJSON},
		{name: "invalid json", status: http.StatusOK, body: "<html>", respType: RespTypeJSON},
		{name: "invalid xml", status: http.StatusOK, body: "{}", respType: RespTypeXML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newUpstream(t, tt.status, tt.body)
			f := NewFetcher(srv.Client(), slog.Default())

			_, err := f.FetchHome(context.Background(), Source{Api: srv.URL, RespType: tt.respType})
			assert.ErrorIs(t, err, ErrUpstream)
		})
	}
}

func TestFetcher_FetchHome_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewFetcher(nil, slog.Default()).FetchHome(context.Background(), Source{Api: addr})
	assert.ErrorIs(t, err, ErrUpstream)
}
