package report

// ImportError is one entry of the run-scoped error ledger. Entries are
// created when a persistence call fails; the pipeline never loses a
// row's provenance, so every entry carries the 1-based, header-inclusive
// row number it originated from.
type ImportError struct {
	RowNumber    int
	GuestID      string
	Program      string
	Message      string
	Details      string
	Reference    string
	AffectedRows int // > 1 when one failure covers a whole bucket
}

// Ledger is the capped, run-scoped collection of import errors. The cap
// bounds memory on pathological inputs; entries past the cap are
// dropped from the ledger but still counted, so numeric totals stay
// accurate even when detail is truncated.
type Ledger struct {
	cap     int
	entries []ImportError
	total   int
}

// DefaultLedgerCap bounds the full ledger; DefaultPreviewCap bounds the
// inline on-screen preview.
const (
	DefaultLedgerCap  = 500
	DefaultPreviewCap = 5
)

// NewLedger creates a ledger with the given cap. A non-positive cap
// falls back to DefaultLedgerCap.
func NewLedger(cap int) *Ledger {
	if cap <= 0 {
		cap = DefaultLedgerCap
	}
	return &Ledger{cap: cap}
}

// Add records an error. Past the cap the entry is counted but its
// detail is discarded.
func (l *Ledger) Add(e ImportError) {
	l.total++
	if len(l.entries) < l.cap {
		l.entries = append(l.entries, e)
	}
}

// Total returns the number of errors recorded, including any whose
// detail fell past the cap.
func (l *Ledger) Total() int { return l.total }

// Entries returns the retained entries in insertion order.
func (l *Ledger) Entries() []ImportError {
	out := make([]ImportError, len(l.entries))
	copy(out, l.entries)
	return out
}

// Preview returns up to n leading entries for inline review.
func (l *Ledger) Preview(n int) []ImportError {
	if n <= 0 {
		n = DefaultPreviewCap
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]ImportError, n)
	copy(out, l.entries[:n])
	return out
}
