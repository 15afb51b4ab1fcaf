package maccms

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("maccms source not found")
	ErrInvalidData = errors.New("invalid maccms source data")
	ErrDuplicate   = errors.New("maccms source with this api already exists")
	ErrEmptyImport = errors.New("import data is empty")
	ErrUpstream    = errors.New("maccms source request failed")
)
