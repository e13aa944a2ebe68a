package lexer

// ASCII classification tables, built once at init and read-only afterwards.
var (
	digitTable      [128]bool
	letterTable     [128]bool
	identStartTable [128]bool
	identPartTable  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := rune(i)
		digitTable[i] = '0' <= ch && ch <= '9'
		letterTable[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		identStartTable[i] = letterTable[i] || ch == '_'
		identPartTable[i] = identStartTable[i] || digitTable[i]
	}
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= 0 && r < 128 && digitTable[r]
}

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return r >= 0 && r < 128 && letterTable[r]
}

// IsIdentStart reports whether r may begin an identifier.
func IsIdentStart(r rune) bool {
	return r >= 0 && r < 128 && identStartTable[r]
}

// IsIdentPart reports whether r may continue an identifier.
func IsIdentPart(r rune) bool {
	return r >= 0 && r < 128 && identPartTable[r]
}

// IsWhitespace reports whether r is blank space that does not end a line.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsNewline reports whether r is a line terminator.
func IsNewline(r rune) bool {
	return r == '\n' || r == '\r'
}

// IsValidCodepoint reports whether r may appear inside a string or char
// literal. It rejects the replacement character (what invalid UTF-8 decodes
// to), surrogates, noncharacters and control characters other than tab, CR
// and LF.
func IsValidCodepoint(r rune) bool {
	switch {
	case r == 0xFFFD:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r >= 0xFDD0 && r <= 0xFDEF:
		return false
	case r&0xFFFE == 0xFFFE:
		return false
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20 || r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	case r > 0x10FFFF || r < 0:
		return false
	}
	return true
}
