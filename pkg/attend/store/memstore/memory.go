package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/harborlight/attend/pkg/attend/catalog"
	"github.com/harborlight/attend/pkg/attend/directory"
	"github.com/harborlight/attend/pkg/attend/store"
)

// Store is an in-memory implementation of store.Store for tests. A
// category placed in FailCategory makes every bulk insert for it fail
// with the configured message, which is how persistence-failure
// isolation is exercised without a real database.
type Store struct {
	mu           sync.RWMutex
	guests       map[string]directory.Guest
	attendance   map[catalog.Category][]store.AttendanceRow
	specialMeals []store.SpecialMealRow

	failCategory map[catalog.Category]string
	failSpecial  string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		guests:       make(map[string]directory.Guest),
		attendance:   make(map[catalog.Category][]store.AttendanceRow),
		failCategory: make(map[catalog.Category]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// FailCategory makes subsequent bulk inserts for category fail with the
// given gateway message.
func (s *Store) FailCategory(category catalog.Category, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCategory[category] = message
}

// FailSpecialMeals makes subsequent special-meal inserts fail.
func (s *Store) FailSpecialMeals(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSpecial = message
}

// ListGuests returns the guest directory.
func (s *Store) ListGuests(ctx context.Context) ([]directory.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		out = append(out, g)
	}
	return out, nil
}

// UpsertGuest inserts or replaces a guest keyed by internal ID.
func (s *Store) UpsertGuest(ctx context.Context, g directory.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		return errors.New("guest ID is required")
	}
	s.guests[g.ID] = g
	return nil
}

// BulkInsertAttendance appends rows for a category, all or nothing.
func (s *Store) BulkInsertAttendance(ctx context.Context, category catalog.Category, rows []store.AttendanceRow) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := s.failCategory[category]; ok {
		return 0, errors.New(msg)
	}
	s.attendance[category] = append(s.attendance[category], rows...)
	return len(rows), nil
}

// InsertSpecialMeal appends one special-meal row.
func (s *Store) InsertSpecialMeal(ctx context.Context, row store.SpecialMealRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSpecial != "" {
		return errors.New(s.failSpecial)
	}
	s.specialMeals = append(s.specialMeals, row)
	return nil
}

// CountByCategoryOnDay counts persisted attendance (summed counts) for
// a category on one calendar day. Day comparison uses the zone the day
// argument carries.
func (s *Store) CountByCategoryOnDay(ctx context.Context, category catalog.Category, day time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc := day.Location()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	total := 0
	if category == catalog.CategorySpecialMeals {
		for _, row := range s.specialMeals {
			local := row.DateSubmitted.In(loc)
			if !local.Before(start) && local.Before(end) {
				total += row.Count
			}
		}
		return total, nil
	}
	for _, row := range s.attendance[category] {
		local := row.DateSubmitted.In(loc)
		if !local.Before(start) && local.Before(end) {
			total += row.Count
		}
	}
	return total, nil
}

// Attendance returns a copy of the rows stored for a category.
func (s *Store) Attendance(category catalog.Category) []store.AttendanceRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.AttendanceRow, len(s.attendance[category]))
	copy(out, s.attendance[category])
	return out
}

// SpecialMeals returns a copy of the stored special-meal rows.
func (s *Store) SpecialMeals() []store.SpecialMealRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.SpecialMealRow, len(s.specialMeals))
	copy(out, s.specialMeals)
	return out
}
