package lexer

import (
	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/source"
)

// BracketKind is the shape of a bracket pair.
type BracketKind int

const (
	Paren BracketKind = iota
	Brace
	Bracket
)

var bracketSpellings = [...]struct{ open, close string }{
	Paren:   {"(", ")"},
	Brace:   {"{", "}"},
	Bracket: {"[", "]"},
}

var unmatchedKinds = [...]diagnostics.Kind{
	Paren:   diagnostics.UnmatchedOpenParen,
	Brace:   diagnostics.UnmatchedOpenBrace,
	Bracket: diagnostics.UnmatchedOpenBracket,
}

// Open returns the opening spelling of the bracket.
func (b BracketKind) Open() string { return bracketSpellings[b].open }

// Close returns the closing spelling of the bracket.
func (b BracketKind) Close() string { return bracketSpellings[b].close }

// bracketOf reports whether kind is a bracket and, if so, its shape and
// whether it opens.
func bracketOf(kind TokenKind) (b BracketKind, opening bool, ok bool) {
	switch kind {
	case LPAREN:
		return Paren, true, true
	case RPAREN:
		return Paren, false, true
	case LBRACE:
		return Brace, true, true
	case RBRACE:
		return Brace, false, true
	case LBRACKET:
		return Bracket, true, true
	case RBRACKET:
		return Bracket, false, true
	}
	return 0, false, false
}

// delimiterEntry is one still-open bracket.
type delimiterEntry struct {
	opening Token
	bracket BracketKind
}

// delimiterStack tracks open brackets during a single scan.
type delimiterStack struct {
	filePath string
	entries  []delimiterEntry
}

func (s *delimiterStack) push(tok Token, b BracketKind) {
	s.entries = append(s.entries, delimiterEntry{opening: tok, bracket: b})
}

func (s *delimiterStack) pop() (delimiterEntry, bool) {
	if len(s.entries) == 0 {
		return delimiterEntry{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// track feeds one accepted token through the balance check and returns the
// diagnostic it causes, if any. A mismatched closer still pops the opener.
func (s *delimiterStack) track(tok Token) *diagnostics.Diagnostic {
	b, opening, ok := bracketOf(tok.Kind)
	if !ok {
		return nil
	}
	if opening {
		s.push(tok, b)
		return nil
	}

	loc := tokenLocation(tok)
	top, ok := s.pop()
	if !ok {
		return diagnostics.UnexpectedCloser(s.filePath, loc, tok.Lexeme)
	}
	if top.bracket == b {
		return nil
	}
	return diagnostics.MismatchedDelimiter(s.filePath, loc, tokenLocation(top.opening), top.bracket.Close(), tok.Lexeme)
}

// flush reports every bracket still open, most recently opened first, and
// empties the stack.
func (s *delimiterStack) flush() []*diagnostics.Diagnostic {
	var out []*diagnostics.Diagnostic
	for {
		top, ok := s.pop()
		if !ok {
			return out
		}
		out = append(out, diagnostics.UnclosedDelimiter(
			s.filePath,
			tokenLocation(top.opening),
			unmatchedKinds[top.bracket],
			top.bracket.Open(),
			top.bracket.Close(),
		))
	}
}

func tokenLocation(tok Token) *source.Location {
	return source.Span(tok.Line, tok.Column, tok.Offset, tok.Length)
}
