package ingest

import (
	"reflect"
	"testing"
)

func TestLinesDedup(t *testing.T) {
	tok := NewTokenizer(',')

	text := "a,b\nc,d\na,b\n\n   \nc,d\ne,f"
	lines := tok.Lines(text)

	want := []string{"a,b", "c,d", "e,f"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() = %v, want %v", lines, want)
	}
}

func TestLinesDedupIdempotent(t *testing.T) {
	tok := NewTokenizer(',')

	text := "one\ntwo\none\nthree\ntwo"
	first := tok.Lines(text)

	// Re-deduplicating the deduplicated output changes nothing.
	second := tok.Lines(joinLines(first))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("dedup not idempotent: %v vs %v", first, second)
	}
	if len(first) > 5 {
		t.Errorf("dedup grew the input: %d lines", len(first))
	}
}

func TestLinesNormalizesLineEndings(t *testing.T) {
	tok := NewTokenizer(',')

	lines := tok.Lines("a\r\nb\rc\nd")
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() = %v, want %v", lines, want)
	}
}

func TestFieldsQuoting(t *testing.T) {
	tok := NewTokenizer(',')

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trimmed", "  a , b ,c  ", []string{"a", "b", "c"}},
		{"quoted delimiter", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty fields", "a,,c", []string{"a", "", "c"}},
		{"trailing empty", "a,b,", []string{"a", "b", ""}},
		{"unterminated quote consumes to end", `a,"b,c`, []string{"a", "b,c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Fields(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fields(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRows(t *testing.T) {
	tok := NewTokenizer(',')

	rows := tok.Rows("h1,h2\nv1,v2\nv1,v2\nv3,v4")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows after dedup, got %d", len(rows))
	}
	if rows[2][1] != "v4" {
		t.Errorf("rows[2][1] = %q, want v4", rows[2][1])
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
