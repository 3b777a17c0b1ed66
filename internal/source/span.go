// Package source provides byte-level source positions and spans.
//
// A Span is a half-open byte range [Start, End) into the original source
// text. Every syntax node and every diagnostic label carries one so that
// errors can be anchored precisely, independent of line/column rendering.
package source

import "fmt"

// Span is a half-open byte range in the source text.
type Span struct {
	Start int
	End   int
}

// NewSpan constructs a span from a start and end byte offset.
func NewSpan(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Cover returns the smallest span enclosing both s and o.
// Composite nodes use it to maintain the parent-encloses-children invariant.
func (s Span) Cover(o Span) Span {
	if o == (Span{}) {
		return s
	}
	if s == (Span{}) {
		return o
	}
	start := s.Start
	if o.Start < start {
		start = o.Start
	}
	end := s.End
	if o.End > end {
		end = o.End
	}
	return Span{Start: start, End: end}
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// IsZero reports whether the span is the zero span (no position information).
func (s Span) IsZero() bool { return s == Span{} }

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Position is a human-oriented location derived from a byte offset.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
}

// Locate translates a byte offset into a line/column position within input.
// Offsets past the end of input locate at the end.
func Locate(input string, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	pos := Position{Line: 1, Column: 1}
	for _, b := range []byte(input[:offset]) {
		if b == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// LineAt returns the full text of the line containing offset, without the
// trailing newline. Diagnostic renderers use it for source excerpts.
func LineAt(input string, offset int) string {
	if offset > len(input) {
		offset = len(input)
	}
	start := offset
	for start > 0 && input[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(input) && input[end] != '\n' {
		end++
	}
	return input[start:end]
}
