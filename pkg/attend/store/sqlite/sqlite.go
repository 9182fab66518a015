package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/directory"
	"github.com/harborlight/attend/pkg/attend/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and the schema
// initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS guests (
	id TEXT PRIMARY KEY,
	legacy_id TEXT,
	name TEXT
);

CREATE INDEX IF NOT EXISTS idx_guests_legacy ON guests(legacy_id);

CREATE TABLE IF NOT EXISTS attendance (
	id TEXT PRIMARY KEY,
	attendance_id TEXT NOT NULL,
	guest_id TEXT,
	category TEXT NOT NULL,
	program TEXT,
	count INTEGER NOT NULL,
	date_submitted TEXT NOT NULL,
	original_date TEXT
);

CREATE INDEX IF NOT EXISTS idx_attendance_category_date ON attendance(category, date_submitted);

CREATE TABLE IF NOT EXISTS special_meals (
	id TEXT PRIMARY KEY,
	attendance_id TEXT NOT NULL,
	special_id TEXT NOT NULL,
	label TEXT NOT NULL,
	count INTEGER NOT NULL,
	date_submitted TEXT NOT NULL,
	original_date TEXT
);

CREATE INDEX IF NOT EXISTS idx_special_meals_date ON special_meals(date_submitted);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// ListGuests returns every guest in the directory.
func (s *sqliteStore) ListGuests(ctx context.Context) ([]directory.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, COALESCE(legacy_id, ''), COALESCE(name, '') FROM guests`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []directory.Guest
	for rows.Next() {
		var g directory.Guest
		if err := rows.Scan(&g.ID, &g.LegacyID, &g.Name); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// UpsertGuest inserts or updates a guest
func (s *sqliteStore) UpsertGuest(ctx context.Context, g directory.Guest) error {
	const stmt = `
INSERT INTO guests (id, legacy_id, name)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	legacy_id=excluded.legacy_id,
	name=excluded.name;
`
	_, err := s.db.ExecContext(ctx, stmt, g.ID, g.LegacyID, g.Name)
	return err
}

// BulkInsertAttendance persists one category bucket in a single
// transaction. The call is all-or-nothing: any failed row rolls back
// the whole bucket and reports zero inserted.
func (s *sqliteStore) BulkInsertAttendance(ctx context.Context, category catalog.Category, rows []store.AttendanceRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO attendance (id, attendance_id, guest_id, category, program, count, date_submitted, original_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			row.AttendanceID,
			row.GuestID,
			string(category),
			row.Program,
			row.Count,
			row.DateSubmitted.UTC().Format(time.RFC3339),
			row.OriginalDate,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// InsertSpecialMeal persists one special-identifier record.
func (s *sqliteStore) InsertSpecialMeal(ctx context.Context, row store.SpecialMealRow) error {
	const stmt = `
INSERT INTO special_meals (id, attendance_id, special_id, label, count, date_submitted, original_date)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		uuid.NewString(),
		row.AttendanceID,
		row.SpecialID,
		row.Label,
		row.Count,
		row.DateSubmitted.UTC().Format(time.RFC3339),
		row.OriginalDate,
	)
	return err
}

// CountByCategoryOnDay sums persisted counts for a category over one
// service-local calendar day. The day boundary comes from the zone the
// day argument carries.
func (s *sqliteStore) CountByCategoryOnDay(ctx context.Context, category catalog.Category, day time.Time) (int, error) {
	loc := day.Location()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	var query string
	var args []interface{}
	if category == catalog.CategorySpecialMeals {
		query = `SELECT COALESCE(SUM(count), 0) FROM special_meals WHERE date_submitted >= ? AND date_submitted < ?`
		args = []interface{}{start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)}
	} else {
		query = `SELECT COALESCE(SUM(count), 0) FROM attendance WHERE category = ? AND date_submitted >= ? AND date_submitted < ?`
		args = []interface{}{string(category), start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
