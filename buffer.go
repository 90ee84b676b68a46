package jfmt

import "strings"

// outputBuffer is the single mutable sink a formatter call writes to. It
// owns line-length bookkeeping so the layout engine never has to reason
// about trailing whitespace itself (spec §8 property 6): every line's
// trailing spaces/tabs are stripped immediately before its EOL is written.
type outputBuffer struct {
	sb        strings.Builder
	eol       string
	lineStart int // byte offset into sb.String() where the current line began
	lineWidth int // measured width of the current line's content so far
	width     WidthFunc
}

func newOutputBuffer(eol string, width WidthFunc) *outputBuffer {
	return &outputBuffer{eol: eol, width: width}
}

// writeString appends s to the current line.
func (b *outputBuffer) writeString(s string) {
	if s == "" {
		return
	}

	b.sb.WriteString(s)
	b.lineWidth += b.width(s)
}

// newline strips trailing whitespace from the current line, writes the
// configured EOL, and starts a new line.
func (b *outputBuffer) newline() {
	b.trimTrailingSpace()
	b.sb.WriteString(b.eol)
	b.lineStart = b.sb.Len()
	b.lineWidth = 0
}

// trimTrailingSpace removes trailing ' '/'\t' bytes from the buffer's
// current (not-yet-terminated) line.
func (b *outputBuffer) trimTrailingSpace() {
	s := b.sb.String()
	end := len(s)

	for end > b.lineStart && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}

	if end == len(s) {
		return
	}

	trimmed := s[:end]
	b.sb.Reset()
	b.sb.WriteString(trimmed)
}

// currentLineWidth returns the measured width of the content written so far
// on the current line, including any trailing whitespace that a later
// newline() call would strip.
func (b *outputBuffer) currentLineWidth() int {
	return b.lineWidth
}

// String finalizes the buffer: trims trailing whitespace from the final
// (un-terminated) line and returns the full result.
func (b *outputBuffer) String() string {
	b.trimTrailingSpace()

	return b.sb.String()
}
