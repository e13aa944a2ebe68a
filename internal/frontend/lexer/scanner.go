// Package lexer turns Kotlin source text into tokens and lexical
// diagnostics.
//
// A Scanner drives a fixed set of deterministic automata over the input,
// one position at a time, in this priority order:
//
//	comment (on '/') > string (on a quote) > number > operator > identifier > delimiter
//
// When no automaton accepts, the scanner attributes a diagnostic and skips
// a bounded span, so every codepoint ends up in exactly one token, one
// diagnostic recovery span or elided whitespace. The scan always runs to the
// end of input and always appends a single EOF token.
package lexer

import (
	"time"

	"github.com/sirupsen/logrus"

	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/logging"
	"kotlinlex/internal/logging/logfields"
	"kotlinlex/internal/source"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "lexer")

// AnalysisResult is everything one scan produces.
type AnalysisResult struct {
	Tokens      []Token                   `json:"tokens" yaml:"tokens"`
	Diagnostics []*diagnostics.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Success     bool                      `json:"success" yaml:"success"`
	Elapsed     time.Duration             `json:"elapsed" yaml:"elapsed"`
	Statistics  Statistics                `json:"statistics" yaml:"statistics"`
}

// Scanner coordinates the automata. It holds only immutable configuration
// and may be shared by concurrent analyses.
type Scanner struct {
	filePath string

	comment    Recognizer
	literal    Recognizer
	number     Recognizer
	operator   Recognizer
	identifier IdentifierAutomaton
	delimiter  Recognizer

	log *logrus.Entry
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFilePath names the file diagnostics are attributed to.
func WithFilePath(path string) Option {
	return func(s *Scanner) {
		s.filePath = path
		s.log = s.log.WithField(logfields.File, path)
	}
}

// New creates a scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		comment:    CommentAutomaton{},
		literal:    StringAutomaton{},
		number:     NumberAutomaton{},
		operator:   OperatorAutomaton{},
		identifier: IdentifierAutomaton{MaxLength: MaxIdentifierLength},
		delimiter:  DelimiterAutomaton{},
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScanner = New()

// Analyze scans src with a scanner that attributes no file path.
func Analyze(src string) *AnalysisResult {
	return defaultScanner.Analyze(src)
}

// FilePath returns the path diagnostics are attributed to.
func (s *Scanner) FilePath() string {
	return s.filePath
}

// Analyze performs one complete pass over src.
func (s *Scanner) Analyze(src string) *AnalysisResult {
	start := time.Now()

	st := &scanState{
		Scanner: s,
		src:     []rune(src),
		line:    1,
		col:     1,
		stack:   delimiterStack{filePath: s.filePath},
	}
	st.run()

	result := &AnalysisResult{
		Tokens:      st.tokens,
		Diagnostics: st.diags,
		Success:     len(st.diags) == 0,
		Statistics:  computeStatistics(st.src, st.tokens, st.diags),
	}
	result.Elapsed = time.Since(start)

	s.log.WithFields(logrus.Fields{
		logfields.Characters:  len(st.src),
		logfields.Tokens:      len(result.Tokens),
		logfields.Diagnostics: len(result.Diagnostics),
		logfields.Duration:    result.Elapsed,
	}).Debug("Lexical analysis complete")

	return result
}

// scanState is the mutable state of a single Analyze call.
type scanState struct {
	*Scanner

	src  []rune
	pos  int
	line int
	col  int

	tokens []Token
	diags  []*diagnostics.Diagnostic
	stack  delimiterStack
}

func (st *scanState) run() {
	for st.pos < len(st.src) {
		r := st.src[st.pos]
		switch {
		case r == '\n' || r == '\r':
			st.pos++
			if r == '\r' && at(st.src, st.pos) == '\n' {
				st.pos++
			}
			st.line++
			st.col = 1
		case IsWhitespace(r):
			st.pos++
			st.col++
		default:
			st.scanToken()
		}
	}

	st.diags = append(st.diags, st.stack.flush()...)
	st.tokens = append(st.tokens, Token{
		Kind:   EOF,
		Line:   st.line,
		Column: st.col,
		Offset: st.pos,
	})
}

// scanToken dispatches the current position to the automata in priority
// order and falls back to a diagnostic when none accepts.
func (st *scanState) scanToken() {
	r := st.src[st.pos]

	if r == '/' {
		if st.try(st.comment) {
			return
		}
		if at(st.src, st.pos+1) == '*' {
			st.recoverBlockComment()
			return
		}
	}

	if r == '"' || r == '\'' {
		if st.try(st.literal) {
			return
		}
		st.recoverLiteral()
		return
	}

	if st.try(st.number) || st.try(st.operator) || st.try(st.identifier) || st.try(st.delimiter) {
		return
	}

	if end, over := st.identifier.Overlong(st.src, st.pos); over {
		st.report(diagnostics.LongIdentifier(st.filePath, st.span(end), st.text(end), st.identifier.limit()), end)
		return
	}

	st.report(diagnostics.UnrecognizedCharacter(st.filePath, st.span(st.pos+1), st.text(st.pos+1)), st.pos+1)
}

// try runs one automaton at the current position and emits its token.
func (st *scanState) try(rec Recognizer) bool {
	tok, next, ok := rec.Recognize(st.src, st.pos)
	if !ok || next <= st.pos {
		return false
	}
	tok.Line = st.line
	tok.Column = st.col
	st.tokens = append(st.tokens, tok)
	if d := st.stack.track(tok); d != nil {
		st.diags = append(st.diags, d)
	}
	st.advance(next)
	return true
}

// report records a diagnostic that consumes src[pos:end] and skips it.
func (st *scanState) report(d *diagnostics.Diagnostic, end int) {
	st.diags = append(st.diags, d.Consumes(end-st.pos))
	st.advance(end)
}

// advance moves to end, keeping line and column in step with every line
// break inside the skipped span.
func (st *scanState) advance(end int) {
	for st.pos < end {
		switch st.src[st.pos] {
		case '\n':
			st.line++
			st.col = 1
		case '\r':
			if at(st.src, st.pos+1) != '\n' {
				st.line++
				st.col = 1
			}
		default:
			st.col++
		}
		st.pos++
	}
}

// text returns the source from the current position to end.
func (st *scanState) text(end int) string {
	return string(st.src[st.pos:end])
}

// positionOf computes the line and column of offset, which must not be
// before the current position.
func (st *scanState) positionOf(offset int) *source.Position {
	line, col := st.line, st.col
	for i := st.pos; i < offset && i < len(st.src); i++ {
		switch st.src[i] {
		case '\n':
			line++
			col = 1
		case '\r':
			if at(st.src, i+1) != '\n' {
				line++
				col = 1
			}
		default:
			col++
		}
	}
	return &source.Position{Line: line, Column: col, Offset: offset}
}

// span returns the location from the current position to end.
func (st *scanState) span(end int) *source.Location {
	return source.NewLocation(st.positionOf(st.pos), st.positionOf(end))
}
