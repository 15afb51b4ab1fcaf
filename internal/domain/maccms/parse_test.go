package maccms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Lines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Parsed
	}{
		{
			name: "comma separated with type",
			raw:  "Alpha,https://alpha.example/api.php/provide/vod/,xml",
			want: []Parsed{{Name: "Alpha", Api: "https://alpha.example/api.php/provide/vod/", RespType: RespTypeXML}},
		},
		{
			name: "dollar separated",
			raw:  "Beta$https://beta.example/api.php/provide/vod/",
			want: []Parsed{{Name: "Beta", Api: "https://beta.example/api.php/provide/vod/", RespType: RespTypeJSON}},
		},
		{
			name: "name glued with colon",
			raw:  "资源站:https://gamma.example/api.php/provide/vod/at/xml/",
			want: []Parsed{{Name: "资源站", Api: "https://gamma.example/api.php/provide/vod/at/xml/", RespType: RespTypeXML}},
		},
		{
			name: "bare url gets host as name",
			raw:  "http://delta.example/api.php",
			want: []Parsed{{Name: "delta.example", Api: "http://delta.example/api.php", RespType: RespTypeJSON}},
		},
		{
			name: "comments and blanks ignored",
			raw:  "\n# header\n; note\n// old,https://old.example/api\n\nNew|https://new.example/api\n",
			want: []Parsed{{Name: "New", Api: "https://new.example/api", RespType: RespTypeJSON}},
		},
		{
			name: "multi word name with tab",
			raw:  "My Source\thttps://m.example/api.php\tJSON",
			want: []Parsed{{Name: "My Source", Api: "https://m.example/api.php", RespType: RespTypeJSON}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestParse_JSON(t *testing.T) {
	raw := `[
		{"name": "One", "api": "https://one.example/api.php"},
		{"title": "Two", "url": "https://two.example/api.php/provide/vod/at/xml", "type": "xml"},
		{"name": "NoApi"},
		"https://three.example/api.php",
		"not-a-url",
		42
	]`

	got := Parse(raw)
	require.Len(t, got, 3)
	assert.Equal(t, Parsed{Name: "One", Api: "https://one.example/api.php", RespType: RespTypeJSON}, got[0])
	assert.Equal(t, Parsed{Name: "Two", Api: "https://two.example/api.php/provide/vod/at/xml", RespType: RespTypeXML}, got[1])
	assert.Equal(t, Parsed{Name: "three.example", Api: "https://three.example/api.php", RespType: RespTypeJSON}, got[2])
}

func TestParse_DedupKeepsFirst(t *testing.T) {
	raw := "first,https://same.example/api\nsecond,https://same.example/api\nthird,https://other.example/api"

	got := Parse(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "third", got[1].Name)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.NotNil(t, Parse(""))
	assert.Empty(t, Parse("nothing useful"))
}

func TestInferRespType(t *testing.T) {
	assert.Equal(t, RespTypeXML, InferRespType("https://a.example/api.php/provide/vod/at/xml/"))
	assert.Equal(t, RespTypeXML, InferRespType("https://a.example/feed.XML"))
	assert.Equal(t, RespTypeJSON, InferRespType("https://a.example/api.php/provide/vod/"))
	assert.Equal(t, RespTypeJSON, InferRespType("https://xml.example/api.php/provide/vod/at/json"))
}

func TestCreateRequest_Normalize(t *testing.T) {
	req := CreateRequest{Name: " n ", Api: " https://a.example/api.php/provide/vod/at/xml ", RespType: ""}.Normalize()
	assert.Equal(t, "n", req.Name)
	assert.Equal(t, "https://a.example/api.php/provide/vod/at/xml", req.Api)
	assert.Equal(t, RespTypeXML, req.RespType)

	req = CreateRequest{Name: "n", Api: "https://a.example/", RespType: " JSON "}.Normalize()
	assert.Equal(t, RespTypeJSON, req.RespType)
	assert.NoError(t, req.Validate())
}
