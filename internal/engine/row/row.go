// Package row provides the display line type used by the editor.
package row

import "unicode/utf8"

// Row is a single line of text. Its byte length is cached alongside the text.
type Row struct {
	text string
	len  int
}

// New creates a row from s.
func New(s string) Row {
	r := Row{text: s}
	r.updateLen()
	return r
}

// FromLines creates one row per line.
func FromLines(lines []string) []Row {
	rows := make([]Row, len(lines))
	for i, line := range lines {
		rows[i] = New(line)
	}
	return rows
}

// Render returns the text between byte offsets start and end.
// end is capped to the row length and start is capped to end; negative
// offsets count as 0. A range that splits a multi-byte character renders
// as the empty string.
func (r Row) Render(start, end int) string {
	end = min(max(end, 0), r.len)
	start = min(max(start, 0), end)
	if !r.isBoundary(start) || !r.isBoundary(end) {
		return ""
	}
	return r.text[start:end]
}

// Len returns the length of the row in bytes.
func (r Row) Len() int {
	return r.len
}

// IsEmpty reports whether the row has no text.
func (r Row) IsEmpty() bool {
	return r.len == 0
}

// String returns the row text.
func (r Row) String() string {
	return r.text
}

func (r Row) isBoundary(i int) bool {
	return i == r.len || utf8.RuneStart(r.text[i])
}

// updateLen must run after every change to text.
func (r *Row) updateLen() {
	r.len = len(r.text)
}
