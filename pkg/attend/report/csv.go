package report

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Builder renders a ledger as a downloadable delimited report. Each
// built report gets a ULID so artifacts sort by creation time.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a report builder.
func New() *Builder {
	return &Builder{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Artifact is a rendered error report ready to be written out.
type Artifact struct {
	ID       string
	Filename string
	Content  string
}

// Build renders the ledger entries as CSV and derives the artifact name
// from the source filename with an _errors_<timestamp> suffix.
func (b *Builder) Build(sourceFilename string, entries []ImportError, now time.Time) Artifact {
	return Artifact{
		ID:       ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		Filename: ArtifactName(sourceFilename, now),
		Content:  Render(entries),
	}
}

// ArtifactName derives the report filename from the source filename.
func ArtifactName(sourceFilename string, now time.Time) string {
	base := filepath.Base(sourceFilename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = "import"
	}
	return fmt.Sprintf("%s_errors_%s.csv", stem, now.Format("20060102_150405"))
}

// Render produces the report body: a fixed header plus one row per
// ledger entry, every field escaped.
func Render(entries []ImportError) string {
	var sb strings.Builder
	sb.WriteString("Row,Guest ID,Program,Message,Notes\n")
	for _, e := range entries {
		fields := []string{
			fmt.Sprintf("%d", e.RowNumber),
			e.GuestID,
			e.Program,
			e.Message,
			notes(e),
		}
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(Escape(f))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// notes composes the trailing field by joining the details string, an
// "affects N rows" phrase for batched failures, and the reference
// string, in that order.
func notes(e ImportError) string {
	var parts []string
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	if e.AffectedRows > 1 {
		parts = append(parts, fmt.Sprintf("affects %d rows", e.AffectedRows))
	}
	if e.Reference != "" {
		parts = append(parts, e.Reference)
	}
	return strings.Join(parts, " | ")
}

// Escape wraps a field in quotes when it contains the delimiter, a
// quote character, or a newline, doubling internal quotes. Reversing
// the escaping recovers the original string exactly.
func Escape(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
