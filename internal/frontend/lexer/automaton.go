package lexer

// Recognizer is a deterministic automaton for one token family.
//
// Recognize starts at src[pos] and either accepts, returning the token and
// the position just past it, or declines with ok == false. The returned
// token carries Kind, Lexeme, Offset, Length and Value; the scanner stamps
// Line and Column. Implementations keep all scan state on the stack, so a
// single value may serve any number of concurrent scans.
type Recognizer interface {
	Recognize(src []rune, pos int) (tok Token, next int, ok bool)
}

// accept builds the token covering src[start:end].
func accept(src []rune, start, end int, kind TokenKind, value interface{}) (Token, int, bool) {
	return Token{
		Kind:   kind,
		Lexeme: string(src[start:end]),
		Offset: start,
		Length: end - start,
		Value:  value,
	}, end, true
}

func decline() (Token, int, bool) {
	return Token{}, 0, false
}

// at returns src[i], or -1 past the end of input.
func at(src []rune, i int) rune {
	if i < 0 || i >= len(src) {
		return -1
	}
	return src[i]
}
