package lexer

// operators maps every operator spelling to its kind. Read-only after
// package initialization.
var operators = map[string]TokenKind{
	"+": PLUS,
	"-": MINUS,
	"*": STAR,
	"/": SLASH,
	"%": PERCENT,

	"==":  EQUALS,
	"!=":  NOT_EQUALS,
	"===": IDENTITY_EQUALS,
	"!==": NOT_IDENTITY_EQUALS,
	"<":   LESS,
	">":   GREATER,
	"<=":  LESS_EQUALS,
	">=":  GREATER_EQUALS,

	"&&": AND,
	"||": OR,
	"!":  NOT,

	"&":  BIT_AND,
	"|":  BIT_OR,
	"^":  BIT_XOR,
	"~":  BIT_NOT,
	"<<": SHIFT_LEFT,
	">>": SHIFT_RIGHT,

	"=":  ASSIGN,
	"+=": PLUS_ASSIGN,
	"-=": MINUS_ASSIGN,
	"*=": STAR_ASSIGN,
	"/=": SLASH_ASSIGN,
	"%=": PERCENT_ASSIGN,

	"++": INCREMENT,
	"--": DECREMENT,

	"?.":  SAFE_CALL,
	"!!":  NOT_NULL_ASSERTION,
	"?:":  ELVIS,
	"..":  RANGE,
	"..<": RANGE_UNTIL,
	"->":  ARROW,
	"::":  DOUBLE_COLON,
	"as":  AS,
	"as?": AS_SAFE,
	"?":   QUESTION,
	"@":   AT,
}

const maxOperatorLength = 3

// OperatorAutomaton recognizes operators by trying the 3-, 2- and then
// 1-character prefix at the current position, so the longest spelling wins.
type OperatorAutomaton struct{}

func (OperatorAutomaton) Recognize(src []rune, pos int) (Token, int, bool) {
	for n := maxOperatorLength; n >= 1; n-- {
		end := pos + n
		if end > len(src) {
			continue
		}
		kind, ok := operators[string(src[pos:end])]
		if !ok {
			continue
		}
		// A word operator must not be the prefix of an identifier: `ask`
		// is an identifier, not `as` followed by `k`.
		if IsIdentPart(src[end-1]) && IsIdentPart(at(src, end)) {
			continue
		}
		return accept(src, pos, end, kind, nil)
	}
	return decline()
}
