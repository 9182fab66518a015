package ingest

import "strings"

// Tokenizer splits raw attendance-file text into deduplicated lines and
// lines into fields, honoring double-quote quoting. Malformed quoting
// degrades gracefully rather than raising an error, to keep batch
// imports resilient to messy exports.
type Tokenizer struct {
	delimiter rune
}

// NewTokenizer creates a tokenizer for the given field delimiter.
func NewTokenizer(delimiter rune) *Tokenizer {
	return &Tokenizer{delimiter: delimiter}
}

// Lines normalizes line endings, splits the text on line feeds, drops
// blank lines, and collapses exact-duplicate lines into one, preserving
// the order of first occurrence. Deduplication guards against an
// operator re-exporting the same source twice into one file.
func (t *Tokenizer) Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	seen := make(map[string]struct{})
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

// Fields tokenizes one line character by character. A double quote
// toggles quoted state; inside quoted state a doubled quote collapses
// to one literal quote, and the delimiter is just another character.
// An unterminated quote consumes to end of line. Each field is trimmed
// of surrounding whitespace.
func (t *Tokenizer) Fields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == t.delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// Rows runs Lines then Fields over the whole file text.
func (t *Tokenizer) Rows(text string) [][]string {
	lines := t.Lines(text)
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = t.Fields(line)
	}
	return rows
}
