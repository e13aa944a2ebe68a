package lexer

// reservedWords maps every Kotlin keyword to the token kind it lexes as.
// Hard, soft and modifier keywords all classify as KEYWORD; the literal
// words have their own kinds.
var reservedWords = func() map[string]TokenKind {
	words := []string{
		// hard keywords
		"as", "break", "class", "continue", "do", "else", "for", "fun",
		"if", "in", "interface", "is", "object", "package", "return",
		"super", "this", "throw", "try", "typealias", "typeof", "val",
		"var", "when", "while",
		// soft keywords
		"by", "catch", "constructor", "delegate", "dynamic", "field",
		"file", "finally", "get", "import", "init", "param", "property",
		"receiver", "set", "setparam", "value", "where",
		// modifier keywords
		"abstract", "actual", "annotation", "companion", "const",
		"crossinline", "data", "enum", "expect", "external", "final",
		"infix", "inline", "inner", "internal", "lateinit", "noinline",
		"open", "operator", "out", "override", "private", "protected",
		"public", "reified", "sealed", "suspend", "tailrec", "vararg",
	}

	m := make(map[string]TokenKind, len(words)+3)
	for _, w := range words {
		m[w] = KEYWORD
	}
	m["true"] = BOOLEAN
	m["false"] = BOOLEAN
	m["null"] = NULL
	return m
}()

// LookupWord classifies an identifier-shaped lexeme. Matching is
// case-sensitive; anything not reserved is an IDENTIFIER.
func LookupWord(lexeme string) TokenKind {
	if kind, ok := reservedWords[lexeme]; ok {
		return kind
	}
	return IDENTIFIER
}

// IsKeyword reports whether lexeme is a reserved word, literal words included.
func IsKeyword(lexeme string) bool {
	_, ok := reservedWords[lexeme]
	return ok
}
