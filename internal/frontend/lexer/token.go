package lexer

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	EOF TokenKind = iota

	// Words
	KEYWORD
	IDENTIFIER

	// Literals
	INTEGER
	DECIMAL
	STRING
	STRING_TEMPLATE
	RAW_STRING
	CHAR
	BOOLEAN
	NULL

	// Comments
	LINE_COMMENT
	BLOCK_COMMENT
	DOC_COMMENT

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %

	// Comparison operators
	EQUALS              // ==
	NOT_EQUALS          // !=
	IDENTITY_EQUALS     // ===
	NOT_IDENTITY_EQUALS // !==
	LESS                // <
	GREATER             // >
	LESS_EQUALS         // <=
	GREATER_EQUALS      // >=

	// Logical operators
	AND // &&
	OR  // ||
	NOT // !

	// Bitwise operators
	BIT_AND     // &
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_NOT     // ~
	SHIFT_LEFT  // <<
	SHIFT_RIGHT // >>

	// Assignment operators
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=

	// Increment / decrement
	INCREMENT // ++
	DECREMENT // --

	// Kotlin specific operators
	SAFE_CALL          // ?.
	NOT_NULL_ASSERTION // !!
	ELVIS              // ?:
	RANGE              // ..
	RANGE_UNTIL        // ..<
	ARROW              // ->
	DOUBLE_COLON       // ::
	AS                 // as
	AS_SAFE            // as?
	QUESTION           // ?
	AT                 // @

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	COLON     // :

	numTokenKinds
)

var tokenKindNames = [numTokenKinds]string{
	EOF:                 "EOF",
	KEYWORD:             "KEYWORD",
	IDENTIFIER:          "IDENTIFIER",
	INTEGER:             "INTEGER",
	DECIMAL:             "DECIMAL",
	STRING:              "STRING",
	STRING_TEMPLATE:     "STRING_TEMPLATE",
	RAW_STRING:          "RAW_STRING",
	CHAR:                "CHAR",
	BOOLEAN:             "BOOLEAN",
	NULL:                "NULL",
	LINE_COMMENT:        "LINE_COMMENT",
	BLOCK_COMMENT:       "BLOCK_COMMENT",
	DOC_COMMENT:         "DOC_COMMENT",
	PLUS:                "PLUS",
	MINUS:               "MINUS",
	STAR:                "STAR",
	SLASH:               "SLASH",
	PERCENT:             "PERCENT",
	EQUALS:              "EQUALS",
	NOT_EQUALS:          "NOT_EQUALS",
	IDENTITY_EQUALS:     "IDENTITY_EQUALS",
	NOT_IDENTITY_EQUALS: "NOT_IDENTITY_EQUALS",
	LESS:                "LESS",
	GREATER:             "GREATER",
	LESS_EQUALS:         "LESS_EQUALS",
	GREATER_EQUALS:      "GREATER_EQUALS",
	AND:                 "AND",
	OR:                  "OR",
	NOT:                 "NOT",
	BIT_AND:             "BIT_AND",
	BIT_OR:              "BIT_OR",
	BIT_XOR:             "BIT_XOR",
	BIT_NOT:             "BIT_NOT",
	SHIFT_LEFT:          "SHIFT_LEFT",
	SHIFT_RIGHT:         "SHIFT_RIGHT",
	ASSIGN:              "ASSIGN",
	PLUS_ASSIGN:         "PLUS_ASSIGN",
	MINUS_ASSIGN:        "MINUS_ASSIGN",
	STAR_ASSIGN:         "STAR_ASSIGN",
	SLASH_ASSIGN:        "SLASH_ASSIGN",
	PERCENT_ASSIGN:      "PERCENT_ASSIGN",
	INCREMENT:           "INCREMENT",
	DECREMENT:           "DECREMENT",
	SAFE_CALL:           "SAFE_CALL",
	NOT_NULL_ASSERTION:  "NOT_NULL_ASSERTION",
	ELVIS:               "ELVIS",
	RANGE:               "RANGE",
	RANGE_UNTIL:         "RANGE_UNTIL",
	ARROW:               "ARROW",
	DOUBLE_COLON:        "DOUBLE_COLON",
	AS:                  "AS",
	AS_SAFE:             "AS_SAFE",
	QUESTION:            "QUESTION",
	AT:                  "AT",
	LPAREN:              "LPAREN",
	RPAREN:              "RPAREN",
	LBRACE:              "LBRACE",
	RBRACE:              "RBRACE",
	LBRACKET:            "LBRACKET",
	RBRACKET:            "RBRACKET",
	SEMICOLON:           "SEMICOLON",
	COMMA:               "COMMA",
	DOT:                 "DOT",
	COLON:               "COLON",
}

func (k TokenKind) String() string {
	if k < 0 || k >= numTokenKinds {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// MarshalText renders the kind by name in JSON and YAML reports.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Category groups token kinds for statistics and presentation.
type Category int

const (
	CategoryEnd Category = iota
	CategoryKeyword
	CategoryIdentifier
	CategoryLiteral
	CategoryComment
	CategoryOperator
	CategoryDelimiter
)

func (c Category) String() string {
	switch c {
	case CategoryEnd:
		return "end"
	case CategoryKeyword:
		return "keyword"
	case CategoryIdentifier:
		return "identifier"
	case CategoryLiteral:
		return "literal"
	case CategoryComment:
		return "comment"
	case CategoryOperator:
		return "operator"
	case CategoryDelimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// MarshalText renders the category by name in JSON and YAML reports.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Category returns the group the kind belongs to.
func (k TokenKind) Category() Category {
	switch {
	case k == EOF:
		return CategoryEnd
	case k == KEYWORD:
		return CategoryKeyword
	case k == IDENTIFIER:
		return CategoryIdentifier
	case k >= INTEGER && k <= NULL:
		return CategoryLiteral
	case k >= LINE_COMMENT && k <= DOC_COMMENT:
		return CategoryComment
	case k >= PLUS && k <= AT:
		return CategoryOperator
	case k >= LPAREN && k <= COLON:
		return CategoryDelimiter
	default:
		return CategoryEnd
	}
}

// Token is one lexeme recognized in the source. Offset and Length count
// codepoints; Value holds the decoded payload of literals.
type Token struct {
	Kind   TokenKind   `json:"kind" yaml:"kind"`
	Lexeme string      `json:"lexeme" yaml:"lexeme"`
	Line   int         `json:"line" yaml:"line"`
	Column int         `json:"column" yaml:"column"`
	Offset int         `json:"offset" yaml:"offset"`
	Length int         `json:"length" yaml:"length"`
	Value  interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + t.Length
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("%d:%d EOF", t.Line, t.Column)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Lexeme)
}
