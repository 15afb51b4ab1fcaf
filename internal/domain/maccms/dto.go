package maccms

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const MaxNameLen = 128

// CreateRequest is a partial Source supplied by the caller. Unset fields are
// omitted from the wire so the payload is sent exactly as built.
type CreateRequest struct {
	Name     string   `json:"name,omitempty" doc:"Display name of the source" maxLength:"128"`
	Api      string   `json:"api,omitempty" doc:"MacCMS collection endpoint URL"`
	RespType RespType `json:"resp_type,omitempty" doc:"Response format, one of json, xml" enum:"json,xml"`
}

// Normalize trims the fields and fills in the response type when missing.
func (r CreateRequest) Normalize() CreateRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Api = strings.TrimSpace(r.Api)
	r.RespType = RespType(strings.ToLower(strings.TrimSpace(string(r.RespType))))
	if r.RespType == "" {
		r.RespType = InferRespType(r.Api)
	}
	return r
}

// Validate checks the request before it reaches the repository.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLen)),
		validation.Field(&r.Api, validation.Required, is.RequestURL, validation.By(httpURL)),
		validation.Field(&r.RespType, validation.In(RespTypeJSON, RespTypeXML)),
	)
}

// BatchImportRequest carries an opaque blob for server side parsing.
type BatchImportRequest struct {
	Data string `json:"data" doc:"Raw import blob: JSON array or one source per line"`
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https URL")
	}
	return nil
}
