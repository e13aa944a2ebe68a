package lexer

// MaxIdentifierLength is the longest identifier the lexer accepts.
const MaxIdentifierLength = 15

// IdentifierAutomaton recognizes identifiers and classifies keywords and
// literal words through the reserved word table. Runs longer than
// MaxLength are consumed and declined; the scanner reports them.
type IdentifierAutomaton struct {
	MaxLength int
}

func (a IdentifierAutomaton) Recognize(src []rune, pos int) (Token, int, bool) {
	end, length := a.scan(src, pos)
	if length == 0 || length > a.limit() {
		return decline()
	}

	lexeme := string(src[pos:end])
	kind := LookupWord(lexeme)
	var value interface{}
	if kind == BOOLEAN {
		value = lexeme == "true"
	}
	return Token{
		Kind:   kind,
		Lexeme: lexeme,
		Offset: pos,
		Length: end - pos,
		Value:  value,
	}, end, true
}

// Overlong reports the end of the identifier run at pos when that run is
// longer than the limit, i.e. when Recognize declined only for its length.
func (a IdentifierAutomaton) Overlong(src []rune, pos int) (int, bool) {
	end, length := a.scan(src, pos)
	return end, length > a.limit()
}

// scan performs the maximal munch over identifier characters, counting the
// run as it goes.
func (a IdentifierAutomaton) scan(src []rune, pos int) (end, length int) {
	if !IsIdentStart(at(src, pos)) {
		return pos, 0
	}
	end = pos + 1
	length = 1
	for IsIdentPart(at(src, end)) {
		end++
		length++
	}
	return end, length
}

func (a IdentifierAutomaton) limit() int {
	if a.MaxLength <= 0 {
		return MaxIdentifierLength
	}
	return a.MaxLength
}
