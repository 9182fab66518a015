package internalerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// FileFormatError is the only fatal, whole-file error in the import
// pipeline. It is raised before any data row is processed, when the
// header row is missing required columns or the file cannot be read.
type FileFormatError struct {
	MissingColumns []string
	Reason         string
}

func (e *FileFormatError) Error() string {
	if len(e.MissingColumns) > 0 {
		names := make([]string, len(e.MissingColumns))
		for i, col := range e.MissingColumns {
			names[i] = strings.ReplaceAll(col, "_", " ")
		}
		return fmt.Sprintf("file is missing required columns: %s", strings.Join(names, ", "))
	}
	return e.Reason
}

// IsFileFormat reports whether err is (or wraps) a FileFormatError.
func IsFileFormat(err error) bool {
	var ffe *FileFormatError
	return errors.As(err, &ffe)
}
