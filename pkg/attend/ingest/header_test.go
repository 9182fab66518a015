package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/harborlight/attend/pkg/attend/internalerr"
)

func TestResolveHeaderNormalization(t *testing.T) {
	header := ResolveHeader([]string{"\ufeffAttendance_ID", "Guest ID", "COUNT", "Program", "Date   Submitted"})

	tests := []struct {
		key  string
		want int
	}{
		{ColAttendanceID, 0},
		{ColGuestID, 1},
		{ColCount, 2},
		{ColProgram, 3},
		{ColDateSubmitted, 4},
		{"nonexistent", -1},
	}
	for _, tt := range tests {
		if got := header.Index(tt.key); got != tt.want {
			t.Errorf("Index(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestResolveHeaderBOMOnlyFirstToken(t *testing.T) {
	// A BOM is stripped from the first token only; anywhere else it is
	// part of the header text and the column will not resolve.
	header := ResolveHeader([]string{"attendance_id", "\ufeffcount"})
	if header.Index(ColCount) != -1 {
		t.Error("BOM in a non-first token should not be stripped")
	}
}

func TestHeaderField(t *testing.T) {
	header := ResolveHeader([]string{"attendance_id", "count"})
	row := []string{" ATT1 ", "5"}

	if got := header.Field(row, ColAttendanceID); got != "ATT1" {
		t.Errorf("Field(attendance_id) = %q, want ATT1", got)
	}
	// Unmapped columns and short rows both yield the empty string.
	if got := header.Field(row, ColProgram); got != "" {
		t.Errorf("Field(program) = %q, want empty", got)
	}
	if got := header.Field([]string{"only"}, ColCount); got != "" {
		t.Errorf("Field on short row = %q, want empty", got)
	}
}

func TestValidateMissingColumns(t *testing.T) {
	header := ResolveHeader([]string{"attendance_id", "guest_id"})

	err := header.Validate()
	if err == nil {
		t.Fatal("expected FileFormatError for missing columns")
	}

	var ffe *internalerr.FileFormatError
	if !errors.As(err, &ffe) {
		t.Fatalf("expected FileFormatError, got %T", err)
	}
	// Underscores become spaces in the human-readable message.
	if !strings.Contains(err.Error(), "date submitted") {
		t.Errorf("message should name missing columns: %q", err.Error())
	}
	if len(ffe.MissingColumns) != 3 {
		t.Errorf("expected 3 missing columns, got %v", ffe.MissingColumns)
	}
}

func TestValidateComplete(t *testing.T) {
	header := ResolveHeader([]string{"Attendance_ID", "Guest_ID", "Count", "Program", "Date_Submitted"})
	if err := header.Validate(); err != nil {
		t.Errorf("complete header should validate, got %v", err)
	}
}
