package attend

import (
	"time"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/directory"
	"github.com/harborlight/attend/pkg/attend/report"
)

// ParsedRecord is one accepted data row with every validity flag the
// validator computed. It is created once per row, consumed once by the
// chunk processor, and never mutated afterward except to attach the
// resolved internal guest key during dispatch.
type ParsedRecord struct {
	RowNumber     int // 1-based, header-inclusive, over deduplicated lines
	AttendanceID  string
	GuestID       string // raw identifier as submitted, possibly empty
	Count         int    // always >= 1
	Program       string // original program text
	ProgramType   catalog.Category
	DateSubmitted time.Time // canonical UTC instant
	OriginalDate  string    // raw date literal, kept for audit

	IsSpecialID    bool
	SpecialMapping catalog.SpecialMapping

	GuestIDProvided bool
	ProgramValid    bool
	SpecialIDValid  bool
	GuestExists     bool

	// Attached during dispatch when a directory match resolved.
	InternalGuestID string
	Guest           directory.Guest
}

// Eligible reports whether the record's flags permit persistence. The
// processor, not the validator, makes this call, keeping validation and
// persistence-eligibility decisions separable.
func (r *ParsedRecord) Eligible() bool {
	return r.GuestIDProvided &&
		r.ProgramValid &&
		r.SpecialIDValid &&
		(r.IsSpecialID || r.GuestExists)
}

// DateRange is an optional caller-supplied filter. Rows whose canonical
// date falls outside [Start, end of End's service-local day] are marked
// filtered and excluded from all totals.
type DateRange struct {
	Start       time.Time
	End         time.Time
	Description string
}

// RunRequest describes one import run.
type RunRequest struct {
	Text     string // full file text
	Filename string // source filename, used for the report artifact name
	Filter   *DateRange
}

// Summary is the run-level accounting. For every processed data row
// exactly one of persisted, skipped, filtered, or failed holds, so
// SuccessCount + ErrorCount + SkippedCount + FilteredCount equals the
// deduplicated data-row count.
type Summary struct {
	TotalRows         int // deduplicated data rows
	SuccessCount      int
	ErrorCount        int
	SkippedCount      int
	FilteredCount     int
	SpecialMealCounts map[string]int
	Errors            []report.ImportError // capped inline preview
	Message           string
	Report            *report.Artifact // nil unless at least one error occurred
}

// ProgressUpdate is emitted after each chunk completes.
type ProgressUpdate struct {
	RangeStart        int // 1-based position of the first data row in the chunk
	RangeEnd          int // position of the last data row in the chunk
	Total             int // total data rows
	Percent           float64
	FilterDescription string
}

// ProgressSink receives fire-and-forget progress notifications. A sink
// must not block; the pipeline does not wait on it.
type ProgressSink interface {
	Notify(ProgressUpdate)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(ProgressUpdate)

// Notify implements ProgressSink.
func (f ProgressFunc) Notify(u ProgressUpdate) { f(u) }
