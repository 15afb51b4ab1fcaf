package maccms

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/exp/slog"
)

const (
	defaultFetchTimeout = 15 * time.Second
	maxHomeBody         = 8 << 20
	userAgent           = "Neovideo/1.0"
)

// HomeFetcher загружает главную страницу источника
type HomeFetcher interface {
	FetchHome(ctx context.Context, src Source) (*Home, error)
}

// Fetcher читает API источника в формате, заданном RespType
type Fetcher struct {
	client *http.Client
	log    *slog.Logger
}

// NewFetcher; nil client заменяется клиентом с таймаутом 15s
func NewFetcher(client *http.Client, log *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{
		client: client,
		log:    log.With("component", "maccms_fetcher"),
	}
}

func (f *Fetcher) FetchHome(ctx context.Context, src Source) (*Home, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Api, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("source request failed", "id", src.ID, "api", src.Api, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHomeBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}

	if src.RespType == RespTypeXML {
		return parseXMLHome(body)
	}
	return parseJSONHome(body)
}

func parseJSONHome(body []byte) (*Home, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrUpstream)
	}
	result := gjson.ParseBytes(body)

	home := &Home{
		Page:       int(result.Get("page").Int()),
		PageCount:  int(result.Get("pagecount").Int()),
		Total:      int(result.Get("total").Int()),
		Categories: []Category{},
		Videos:     []Video{},
	}

	for _, item := range result.Get("class").Array() {
		home.Categories = append(home.Categories, Category{
			ID:   int(item.Get("type_id").Int()),
			Name: item.Get("type_name").String(),
		})
	}

	for _, item := range result.Get("list").Array() {
		id := item.Get("vod_id")
		if !id.Exists() {
			id = item.Get("id")
		}
		home.Videos = append(home.Videos, Video{
			ID:         int(id.Int()),
			CategoryID: int(item.Get("type_id").Int()),
			Name:       item.Get("vod_name").String(),
			UpdatedAt:  parseTime(item.Get("vod_time").String()),
		})
	}

	return home, nil
}

type xmlHome struct {
	XMLName xml.Name `xml:"rss"`
	List    struct {
		Page        int `xml:"page,attr"`
		PageCount   int `xml:"pagecount,attr"`
		RecordCount int `xml:"recordcount,attr"`
		Videos      []struct {
			Last string `xml:"last"`
			ID   int    `xml:"id"`
			TID  int    `xml:"tid"`
			Name string `xml:"name"`
		} `xml:"video"`
	} `xml:"list"`
	Class struct {
		Types []struct {
			ID   int    `xml:"id,attr"`
			Name string `xml:",chardata"`
		} `xml:"ty"`
	} `xml:"class"`
}

func parseXMLHome(body []byte) (*Home, error) {
	var doc xmlHome
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid xml: %v", ErrUpstream, err)
	}

	home := &Home{
		Page:       doc.List.Page,
		PageCount:  doc.List.PageCount,
		Total:      doc.List.RecordCount,
		Categories: make([]Category, 0, len(doc.Class.Types)),
		Videos:     make([]Video, 0, len(doc.List.Videos)),
	}
	for _, ty := range doc.Class.Types {
		home.Categories = append(home.Categories, Category{ID: ty.ID, Name: strings.TrimSpace(ty.Name)})
	}
	for _, v := range doc.List.Videos {
		home.Videos = append(home.Videos, Video{
			ID:         v.ID,
			CategoryID: v.TID,
			Name:       strings.TrimSpace(v.Name),
			UpdatedAt:  parseTime(v.Last),
		})
	}

	return home, nil
}

// parseTime разбирает "2006-01-02 15:04:05"; нераспознанное время остается нулевым
func parseTime(s string) time.Time {
	t, err := time.Parse(time.DateTime, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
