package repository

import (
	"strings"
	"time"

	"groupmanagement/internal/domain"
)

// Accepted If-Modified-Since layouts, tried in order. The first three are the
// HTTP date formats (asctime, RFC 1036, RFC 1123).
var modifiedSinceLayouts = []string{
	time.ANSIC,
	time.RFC850,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseModifiedSince parses value in any accepted layout. Layouts without a
// zone are read as UTC and results are normalized to UTC.
func ParseModifiedSince(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.BadInputError("modified-since timestamp is required")
	}
	for _, layout := range modifiedSinceLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.BadInputError("unparseable modified-since timestamp %q", value)
}
