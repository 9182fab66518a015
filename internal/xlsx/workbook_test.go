package xlsx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestToDelimitedText(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Attendance_ID", "Guest_ID", "Count", "Program", "Date_Submitted"},
		{"ATT001", "123", "1", "Meal", "2025-01-15"},
	})

	text, err := ToDelimitedText(data)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), text)
	}
	if lines[1] != "ATT001,123,1,Meal,2025-01-15" {
		t.Errorf("data line = %q", lines[1])
	}
}

func TestToDelimitedTextEscapesCells(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Program", "Note"},
		{"Meal", `lunch, "extra"`},
	})

	text, err := ToDelimitedText(data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, `"lunch, ""extra"""`) {
		t.Errorf("cell not escaped: %q", text)
	}
}

func TestToDelimitedTextRejectsGarbage(t *testing.T) {
	if _, err := ToDelimitedText([]byte("not a workbook")); err == nil {
		t.Error("expected an error for non-xlsx input")
	}
}
