package lexer

import "kotlinlex/internal/diagnostics"

// Statistics summarizes one analysis. It is derived from the final token
// and diagnostic lists and never updated afterwards.
type Statistics struct {
	TotalTokens     int                      `json:"totalTokens" yaml:"totalTokens"`
	ByKind          map[TokenKind]int        `json:"byKind" yaml:"byKind"`
	ByCategory      map[Category]int         `json:"byCategory" yaml:"byCategory"`
	DiagnosticKinds map[diagnostics.Kind]int `json:"diagnosticKinds" yaml:"diagnosticKinds"`
	TotalLines      int                      `json:"totalLines" yaml:"totalLines"`
	TotalCharacters int                      `json:"totalCharacters" yaml:"totalCharacters"`
}

// computeStatistics builds the summary. The EOF sentinel is not counted.
func computeStatistics(src []rune, tokens []Token, diags []*diagnostics.Diagnostic) Statistics {
	stats := Statistics{
		ByKind:          make(map[TokenKind]int),
		ByCategory:      make(map[Category]int),
		DiagnosticKinds: make(map[diagnostics.Kind]int),
		TotalCharacters: len(src),
		TotalLines:      countLines(src),
	}

	for _, tok := range tokens {
		if tok.Kind == EOF {
			continue
		}
		stats.TotalTokens++
		stats.ByKind[tok.Kind]++
		stats.ByCategory[tok.Kind.Category()]++
	}

	for _, d := range diags {
		stats.DiagnosticKinds[d.Kind]++
	}

	return stats
}

// countLines counts lines the way the scanner does: `\n`, `\r` and `\r\n`
// each end a line, and a trailing partial line counts. Empty input has no
// lines.
func countLines(src []rune) int {
	if len(src) == 0 {
		return 0
	}
	lines := 1
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if at(src, i+1) == '\n' {
				i++
			}
			lines++
		case '\n':
			lines++
		}
	}
	// a terminator at the very end does not open a new line
	if IsNewline(src[len(src)-1]) {
		lines--
	}
	return lines
}
