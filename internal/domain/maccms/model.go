package maccms

import (
	"time"
)

// RespType is the payload format a MacCMS source serves.
type RespType string

const (
	RespTypeJSON RespType = "json"
	RespTypeXML  RespType = "xml"
)

// Valid reports whether t is a known response type.
func (t RespType) Valid() bool {
	return t == RespTypeJSON || t == RespTypeXML
}

// Source is a MacCMS collection endpoint registered in the catalogue.
type Source struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Api       string    `json:"api" db:"api"`
	RespType  RespType  `json:"resp_type" db:"resp_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
