package store

import (
	"context"
	"time"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/directory"
)

// Store is the persistence gateway the import pipeline writes through.
// BulkInsertAttendance is all-or-nothing per call: on error none of the
// rows in that call were persisted, and the pipeline records every row
// of the bucket as failed rather than guessing at partial success.
type Store interface {
	Close() error

	// Guests
	ListGuests(ctx context.Context) ([]directory.Guest, error)
	UpsertGuest(ctx context.Context, g directory.Guest) error

	// Attendance
	BulkInsertAttendance(ctx context.Context, category catalog.Category, rows []AttendanceRow) (int, error)
	InsertSpecialMeal(ctx context.Context, row SpecialMealRow) error
	CountByCategoryOnDay(ctx context.Context, category catalog.Category, day time.Time) (int, error)
}

// AttendanceRow is one validated attendance record bound for a single
// persistence category.
type AttendanceRow struct {
	AttendanceID  string
	GuestID       string // internal guest key resolved during dispatch
	Count         int
	Program       string // original program text as submitted
	DateSubmitted time.Time
	OriginalDate  string // raw date literal, kept for audit
}

// SpecialMealRow is one special-identifier record. These are persisted
// one at a time because each carries a distinct label/category pairing
// used for per-label quantity aggregation.
type SpecialMealRow struct {
	AttendanceID  string
	SpecialID     string
	Label         string
	Count         int
	DateSubmitted time.Time
	OriginalDate  string
}
