package lexer

var delimiters = map[rune]TokenKind{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	';': SEMICOLON,
	',': COMMA,
	'.': DOT,
	':': COLON,
}

// DelimiterAutomaton recognizes single-character punctuation.
type DelimiterAutomaton struct{}

func (DelimiterAutomaton) Recognize(src []rune, pos int) (Token, int, bool) {
	kind, ok := delimiters[at(src, pos)]
	if !ok {
		return decline()
	}
	return accept(src, pos, pos+1, kind, nil)
}
