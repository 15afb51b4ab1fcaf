package maccms

import "time"

// Category is a video category advertised by a source.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is one entry of a source's latest list.
type Video struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Home is the first page a source returns without filters.
type Home struct {
	Page       int        `json:"page"`
	PageCount  int        `json:"page_count"`
	Total      int        `json:"total"`
	Categories []Category `json:"categories"`
	Videos     []Video    `json:"videos"`
}

// HomeItem pairs a registered source with its home data or the fetch error.
type HomeItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Api   string `json:"api"`
	Data  *Home  `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
