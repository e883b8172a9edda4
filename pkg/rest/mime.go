package rest

import (
	"strings"

	"github.com/umisama/go-regexpcache"
)

// Known MIME types, see IsKnownMime.
const (
	MimeAny                    = "*/*"
	MimeApplicationJSON        = "application/json"
	MimeApplicationXML         = "application/xml"
	MimeApplicationOctetStream = "application/octet-stream"
	MimeFormURLEncoded         = "application/x-www-form-urlencoded"
	MimeMultipartFormData      = "multipart/form-data"
	MimeTextPlain              = "text/plain"
	MimeTextHTML               = "text/html"
	MimeTextCSV                = "text/csv"
	MimeTextXML                = "text/xml"
)

// jsonMimePattern matches "application/json" and vendor variants, for example "application/vnd.api+json".
const jsonMimePattern = `^application/([a-zA-Z0-9\.\-]+\+)?json$`

var knownMimeTypes = map[string]struct{}{ //nolint:gochecknoglobals
	MimeAny:                    {},
	MimeApplicationJSON:        {},
	MimeApplicationXML:         {},
	MimeApplicationOctetStream: {},
	MimeFormURLEncoded:         {},
	MimeMultipartFormData:      {},
	MimeTextPlain:              {},
	MimeTextHTML:               {},
	MimeTextCSV:                {},
	MimeTextXML:                {},
}

// NormalizeMime strips any parameter suffix, for example "; charset=utf-8",
// by taking the substring before the first ";", and normalizes case and spacing.
func NormalizeMime(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// IsKnownMime reports whether the Content-Type value, after normalization,
// is a member of the known MIME table or the JSON family.
func IsKnownMime(contentType string) bool {
	v := NormalizeMime(contentType)
	if _, ok := knownMimeTypes[v]; ok {
		return true
	}
	return IsJSONMime(v)
}

// IsJSONMime reports whether the Content-Type value belongs to the JSON family.
func IsJSONMime(contentType string) bool {
	return regexpcache.MustCompile(jsonMimePattern).MatchString(NormalizeMime(contentType))
}
