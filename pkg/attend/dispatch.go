package attend

import (
	"context"
	"fmt"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/report"
	"github.com/harborlight/attend/pkg/attend/store"
)

// BatchResult is the outcome of dispatching one chunk's eligible
// records, merged into the run-level accumulator by the processor.
type BatchResult struct {
	SuccessCount      int
	ErrorCount        int
	SpecialMealCounts map[string]int
}

// dispatchChunk groups eligible records into category buckets and
// issues one bulk write per non-special bucket, in fixed category
// order. Special-identifier records are persisted one at a time because
// each carries a distinct label used for per-label aggregation.
func (imp *Importer) dispatchChunk(ctx context.Context, records []*ParsedRecord, ledger *report.Ledger) BatchResult {
	result := BatchResult{SpecialMealCounts: make(map[string]int)}

	buckets := make(map[catalog.Category][]*ParsedRecord)
	var specials []*ParsedRecord
	for _, rec := range records {
		if rec.IsSpecialID {
			specials = append(specials, rec)
			continue
		}
		buckets[rec.ProgramType] = append(buckets[rec.ProgramType], rec)
	}

	for _, category := range catalog.Categories() {
		bucket := buckets[category]
		if len(bucket) == 0 {
			continue
		}
		imp.persistBucket(ctx, category, bucket, ledger, &result)
	}

	for _, rec := range specials {
		imp.persistSpecial(ctx, rec, ledger, &result)
	}

	return result
}

// persistBucket issues the single bulk insert for one category. The
// gateway is all-or-nothing per invocation: on failure every record in
// the bucket becomes one ImportError carrying the gateway's message,
// and none are counted as successes.
func (imp *Importer) persistBucket(ctx context.Context, category catalog.Category, bucket []*ParsedRecord, ledger *report.Ledger, result *BatchResult) {
	rows := make([]store.AttendanceRow, len(bucket))
	for i, rec := range bucket {
		rec.InternalGuestID = rec.Guest.ID
		rows[i] = store.AttendanceRow{
			AttendanceID:  rec.AttendanceID,
			GuestID:       rec.InternalGuestID,
			Count:         rec.Count,
			Program:       rec.Program,
			DateSubmitted: rec.DateSubmitted,
			OriginalDate:  rec.OriginalDate,
		}
	}

	inserted, err := imp.store.BulkInsertAttendance(ctx, category, rows)
	if err != nil {
		message := fmt.Sprintf("%s import failed: %v", category.ProgramName(), err)
		for _, rec := range bucket {
			ledger.Add(report.ImportError{
				RowNumber:    rec.RowNumber,
				GuestID:      rec.GuestID,
				Program:      rec.Program,
				Message:      message,
				AffectedRows: len(bucket),
			})
		}
		result.ErrorCount += len(bucket)
		return
	}
	result.SuccessCount += inserted
}

// persistSpecial writes one special-identifier record. A failure here
// produces one ImportError without aborting the remaining specials in
// the chunk.
func (imp *Importer) persistSpecial(ctx context.Context, rec *ParsedRecord, ledger *report.Ledger, result *BatchResult) {
	row := store.SpecialMealRow{
		AttendanceID:  rec.AttendanceID,
		SpecialID:     rec.GuestID,
		Label:         rec.SpecialMapping.Label,
		Count:         rec.Count,
		DateSubmitted: rec.DateSubmitted,
		OriginalDate:  rec.OriginalDate,
	}

	if err := imp.store.InsertSpecialMeal(ctx, row); err != nil {
		ledger.Add(report.ImportError{
			RowNumber: rec.RowNumber,
			GuestID:   rec.GuestID,
			Program:   rec.Program,
			Message:   fmt.Sprintf("%s import failed: %v", rec.SpecialMapping.Category.ProgramName(), err),
		})
		result.ErrorCount++
		return
	}
	result.SuccessCount++
	result.SpecialMealCounts[rec.SpecialMapping.Label] += rec.Count
}
