package attend

import (
	"strconv"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/directory"
	"github.com/harborlight/attend/pkg/attend/ingest"
)

// rowOutcome classifies what the validator did with one field row.
type rowOutcome int

const (
	rowAccepted rowOutcome = iota
	rowRejected            // unparseable date, excluded silently
	rowFiltered            // outside the active date-range filter
)

// validateRow consumes one tokenized row plus the catalogs and emits a
// fully-flagged ParsedRecord, or a rejected/filtered marker. It never
// decides persistence eligibility; that stays with the processor.
func (imp *Importer) validateRow(fields []string, header ingest.HeaderMap, rowNumber int, guests *directory.Snapshot, filter *DateRange) (*ParsedRecord, rowOutcome) {
	rec := &ParsedRecord{
		RowNumber:    rowNumber,
		AttendanceID: header.Field(fields, ingest.ColAttendanceID),
		GuestID:      header.Field(fields, ingest.ColGuestID),
		Program:      header.Field(fields, ingest.ColProgram),
		Count:        normalizeCount(header.Field(fields, ingest.ColCount)),
	}

	if program, ok := imp.programs.Normalize(rec.Program); ok {
		rec.ProgramValid = true
		rec.ProgramType = program.Category
	}

	rec.OriginalDate = header.Field(fields, ingest.ColDateSubmitted)
	date, ok := imp.dates.Normalize(rec.OriginalDate)
	if !ok {
		return nil, rowRejected
	}
	rec.DateSubmitted = date

	if filter != nil {
		end := imp.dates.EndOfDay(filter.End)
		if date.Before(filter.Start) || date.After(end) {
			return nil, rowFiltered
		}
	}

	rec.GuestIDProvided = rec.GuestID != ""

	if mapping, ok := imp.specialIDs.Find(rec.GuestID); ok {
		rec.IsSpecialID = true
		rec.SpecialMapping = mapping
	}

	// Special identifiers are only legal for the meal program.
	rec.SpecialIDValid = !rec.IsSpecialID || rec.ProgramType == catalog.CategoryMeals

	if rec.IsSpecialID {
		// Special identifiers never resolve to a guest profile.
		rec.GuestExists = true
	} else if rec.GuestIDProvided {
		if g, ok := guests.Find(rec.GuestID); ok {
			rec.GuestExists = true
			rec.Guest = g
		}
	}

	return rec, rowAccepted
}

// normalizeCount parses the count field. Non-numeric input defaults to
// 1; parseable input is clamped to a minimum of 1, so zero and negative
// counts never reach persistence.
func normalizeCount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}
