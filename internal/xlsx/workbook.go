// Package xlsx bridges Excel attendance exports into the delimited-text
// form the import pipeline consumes.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harborlight/attend/pkg/attend/report"
)

// ToDelimitedText renders the first sheet of a workbook as
// comma-delimited text with double-quote quoting, so .xlsx exports flow
// through the same pipeline as plain text files.
func ToDelimitedText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(report.Escape(strings.TrimSpace(cell)))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
