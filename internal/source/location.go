package source

import "fmt"

// Position is a point in a source file. Line and Column are 1-based,
// Offset is the 0-based codepoint index into the file content.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a half-open span [Start, End) in a source file.
type Location struct {
	Start *Position
	End   *Position
}

// NewLocation creates a location spanning start to end.
func NewLocation(start, end *Position) *Location {
	return &Location{Start: start, End: end}
}

// Point creates a zero-width location at the given line and column.
func Point(line, column, offset int) *Location {
	p := &Position{Line: line, Column: column, Offset: offset}
	return &Location{Start: p, End: p}
}

// Span creates a single-line location covering length codepoints.
func Span(line, column, offset, length int) *Location {
	return &Location{
		Start: &Position{Line: line, Column: column, Offset: offset},
		End:   &Position{Line: line, Column: column + length, Offset: offset + length},
	}
}

func (l *Location) String() string {
	if l == nil || l.Start == nil {
		return "<unknown>"
	}
	return l.Start.String()
}
