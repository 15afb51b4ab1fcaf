package maccms

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// Parsed is one source recognised in an import blob.
type Parsed struct {
	Name     string   `json:"name"`
	Api      string   `json:"api"`
	RespType RespType `json:"resp_type"`
}

// Parse extracts sources from a batch import blob. A JSON array of objects
// (name|title, api|url, resp_type|type) or of URL strings is accepted;
// anything else is read line by line. Entries are deduplicated by api, the
// first occurrence wins and input order is kept.
func Parse(raw string) []Parsed {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Parsed{}
	}

	var items []Parsed
	if gjson.Valid(raw) && gjson.Parse(raw).IsArray() {
		items = parseJSON(raw)
	} else {
		items = parseLines(raw)
	}

	seen := make(map[string]struct{}, len(items))
	result := make([]Parsed, 0, len(items))
	for _, item := range items {
		p, ok := normalizeParsed(item)
		if !ok {
			continue
		}
		if _, dup := seen[p.Api]; dup {
			continue
		}
		seen[p.Api] = struct{}{}
		result = append(result, p)
	}
	return result
}

func parseJSON(raw string) []Parsed {
	var result []Parsed
	for _, item := range gjson.Parse(raw).Array() {
		switch {
		case item.IsObject():
			result = append(result, Parsed{
				Name:     firstString(item, "name", "title"),
				Api:      firstString(item, "api", "url"),
				RespType: RespType(firstString(item, "resp_type", "type")),
			})
		case item.Type == gjson.String:
			result = append(result, Parsed{Api: item.String()})
		}
	}
	return result
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(r.Get(k).String()); s != "" {
			return s
		}
	}
	return ""
}

func parseLines(raw string) []Parsed {
	var result []Parsed
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isComment(line) {
			continue
		}

		tokens := splitGlued(strings.FieldsFunc(line, isSeparator))
		apiIdx := -1
		for i, tok := range tokens {
			if isHTTPURL(tok) {
				apiIdx = i
				break
			}
		}
		if apiIdx < 0 {
			continue
		}

		p := Parsed{
			Name: strings.TrimRight(strings.Join(tokens[:apiIdx], " "), ":："),
			Api:  tokens[apiIdx],
		}
		for _, tok := range tokens[apiIdx+1:] {
			if t := RespType(strings.ToLower(tok)); t.Valid() {
				p.RespType = t
				break
			}
		}
		result = append(result, p)
	}
	return result
}

// splitGlued separates a name glued to its URL, e.g. "name:https://host/api".
func splitGlued(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		idx := strings.Index(tok, "http://")
		if i := strings.Index(tok, "https://"); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
		if idx > 0 && isHTTPURL(tok[idx:]) {
			out = append(out, tok[:idx], tok[idx:])
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";")
}

func isSeparator(r rune) bool {
	switch r {
	case ',', '$', '|', '，':
		return true
	}
	return unicode.IsSpace(r)
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func normalizeParsed(p Parsed) (Parsed, bool) {
	p.Api = strings.TrimSpace(p.Api)
	if !isHTTPURL(p.Api) {
		return Parsed{}, false
	}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		u, _ := url.Parse(p.Api)
		p.Name = u.Hostname()
	}
	if r := []rune(p.Name); len(r) > MaxNameLen {
		p.Name = string(r[:MaxNameLen])
	}

	p.RespType = RespType(strings.ToLower(string(p.RespType)))
	if !p.RespType.Valid() {
		p.RespType = InferRespType(p.Api)
	}
	return p, true
}

// InferRespType guesses the payload format from a MacCMS api URL.
func InferRespType(api string) RespType {
	lower := strings.ToLower(api)
	if u, err := url.Parse(lower); err == nil {
		lower = u.Path
	}
	if strings.Contains(lower, "/at/xml") || strings.HasSuffix(strings.TrimRight(lower, "/"), ".xml") {
		return RespTypeXML
	}
	return RespTypeJSON
}
