package directory

import "strings"

// Guest is one entry of the guest directory.
type Guest struct {
	ID       string // internal key
	LegacyID string // external/legacy identifier, may be empty
	Name     string
}

// Snapshot is an immutable view of the guest directory taken at run
// start. The pipeline never reads ambient directory state mid-run; a
// guest added after the snapshot was taken will not be found even if
// referenced by a later row in the same file.
type Snapshot struct {
	byID     map[string]Guest
	byLegacy map[string]Guest
}

// FromGuests builds a snapshot. Lookup matches either the internal key
// or the legacy identifier.
func FromGuests(guests []Guest) *Snapshot {
	s := &Snapshot{
		byID:     make(map[string]Guest, len(guests)),
		byLegacy: make(map[string]Guest, len(guests)),
	}
	for _, g := range guests {
		if g.ID != "" {
			s.byID[g.ID] = g
		}
		if g.LegacyID != "" {
			s.byLegacy[g.LegacyID] = g
		}
	}
	return s
}

// Find resolves an identifier against the snapshot.
func (s *Snapshot) Find(id string) (Guest, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Guest{}, false
	}
	if g, ok := s.byID[id]; ok {
		return g, true
	}
	if g, ok := s.byLegacy[id]; ok {
		return g, true
	}
	return Guest{}, false
}

// Len returns the number of distinct guests in the snapshot.
func (s *Snapshot) Len() int { return len(s.byID) }
