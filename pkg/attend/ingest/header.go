package ingest

import (
	"strings"

	"github.com/harborlight/attend/pkg/attend/internalerr"
)

// Canonical column keys for the attendance schema.
const (
	ColAttendanceID  = "attendance_id"
	ColGuestID       = "guest_id"
	ColCount         = "count"
	ColProgram       = "program"
	ColDateSubmitted = "date_submitted"
)

// RequiredColumns are the keys a header row must resolve for the import
// to proceed. guest_id is optional here but functionally required for
// every category except special meals.
var RequiredColumns = []string{ColAttendanceID, ColCount, ColProgram, ColDateSubmitted}

// HeaderMap maps canonical column keys to field indexes within a row.
// Keys absent from the header resolve to index -1 rather than raising.
type HeaderMap struct {
	index map[string]int
}

// ResolveHeader builds a HeaderMap from the first field row of a file.
// Each header token is normalized: a leading byte-order mark is
// stripped from the very first token only, the token is lower-cased,
// and internal whitespace runs become a single underscore.
func ResolveHeader(fields []string) HeaderMap {
	index := make(map[string]int, len(fields))
	for i, raw := range fields {
		if i == 0 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		key := normalizeHeaderToken(raw)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return HeaderMap{index: index}
}

func normalizeHeaderToken(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), "_")
}

// Index returns the field index for a canonical key, or -1.
func (h HeaderMap) Index(key string) int {
	if i, ok := h.index[key]; ok {
		return i
	}
	return -1
}

// Field returns the trimmed field value for a canonical key, or the
// empty string when the key is unmapped or the row is short.
func (h HeaderMap) Field(row []string, key string) string {
	i := h.Index(key)
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Validate checks that every required column resolved. A missing column
// aborts the entire import with a FileFormatError naming the absent
// columns; this is the only fatal, whole-file error in the pipeline.
func (h HeaderMap) Validate() error {
	var missing []string
	for _, key := range RequiredColumns {
		if h.Index(key) < 0 {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &internalerr.FileFormatError{MissingColumns: missing}
	}
	return nil
}
