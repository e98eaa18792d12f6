// Package presenters formats typed form values for display. A registry
// maps a declared value type to a formatting function; every formatter is
// pure and total over its input domain.
package presenters

import (
	"strings"
)

// Presenter formats a raw value for display.
type Presenter func(value any) any

// UploadLink is the display form of an uploaded document reference.
type UploadLink struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Registry maps value types to their formatters.
type Registry struct {
	byType map[string]Presenter
}

// New returns a registry with the standard formatters registered:
// service_id, upload and boolean.
func New() *Registry {
	r := &Registry{byType: make(map[string]Presenter)}
	r.Register("service_id", formatServiceID)
	r.Register("upload", formatUpload)
	r.Register("boolean", formatBoolean)
	return r
}

// Register adds or replaces the formatter for a value type.
func (r *Registry) Register(valueType string, p Presenter) {
	r.byType[valueType] = p
}

// Present formats value according to its declared type. Unknown types
// pass the value through unchanged.
func (r *Registry) Present(value any, valueType string) any {
	if p, ok := r.byType[valueType]; ok {
		return p(value)
	}
	return value
}

// formatServiceID splits an all-digit service id into groups of four for
// display. Ids carrying any other character (older framework ids like
// "5.G5.12345") are shown whole.
func formatServiceID(value any) any {
	id, ok := value.(string)
	if !ok {
		return []string{}
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return []string{id}
		}
	}
	var chunks []string
	for len(id) > 4 {
		chunks = append(chunks, id[:4])
		id = id[4:]
	}
	if id != "" {
		chunks = append(chunks, id)
	}
	return chunks
}

// formatUpload turns a document URL into a link with the bare filename as
// its label.
func formatUpload(value any) any {
	rawURL, ok := value.(string)
	if !ok {
		return UploadLink{}
	}
	filename := rawURL
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		filename = rawURL[i+1:]
	}
	return UploadLink{URL: rawURL, Filename: filename}
}

// formatBoolean maps true to "Yes" and false to "No". Null and empty
// values, and anything that is not a boolean, format as the empty string
// rather than an error.
func formatBoolean(value any) any {
	if b, ok := value.(bool); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	return ""
}
