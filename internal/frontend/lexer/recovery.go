package lexer

import (
	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/source"
)

// recoverBlockComment reports a block comment that never closes. The rest
// of the input is the recovery span.
func (st *scanState) recoverBlockComment() {
	end, depth := scanBlockComment(st.src, st.pos)
	loc := st.span(end)
	st.report(diagnostics.UnterminatedBlockComment(st.filePath, loc, st.text(end), depth), end)
}

// recoverLiteral re-scans a string or character literal the string
// automaton declined and reports exactly one diagnostic for it. When several
// faults apply the priority is: invalid escape, then invalid codepoint, then
// missing terminator. The attempted lexeme is skipped.
func (st *scanState) recoverLiteral() {
	pos := st.pos

	if isRawOpener(st.src, pos) {
		end, _ := scanRaw(st.src, pos)
		loc := st.span(end)
		st.report(diagnostics.UnterminatedRawString(st.filePath, loc, st.text(end)), end)
		return
	}

	isChar := st.src[pos] == '\''
	s := scanQuoted(st.src, pos, st.src[pos], !isChar)
	end := s.end
	loc := st.span(end)
	lexeme := st.text(end)

	var d *diagnostics.Diagnostic
	switch {
	case s.badEscape >= 0:
		escEnd := min(s.badEscape+2, end)
		escLoc := st.subSpan(s.badEscape, escEnd)
		d = diagnostics.InvalidEscape(st.filePath, loc, escLoc, lexeme, string(st.src[s.badEscape:escEnd]))
	case s.badChar >= 0:
		d = diagnostics.InvalidCodepoint(st.filePath, loc, st.subSpan(s.badChar, s.badChar+1), lexeme, s.badRune)
	case !s.closed && isChar:
		d = diagnostics.UnterminatedChar(st.filePath, loc, lexeme)
	case !s.closed:
		d = diagnostics.UnterminatedString(st.filePath, loc, lexeme)
	case isChar:
		d = diagnostics.MalformedChar(st.filePath, loc, lexeme)
	default:
		d = diagnostics.UnrecognizedCharacter(st.filePath, loc, lexeme)
	}
	st.report(d, end)
}

// subSpan locates src[start:end] ahead of the current position.
func (st *scanState) subSpan(start, end int) *source.Location {
	return source.NewLocation(st.positionOf(start), st.positionOf(end))
}
