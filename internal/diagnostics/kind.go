package diagnostics

// Kind classifies a lexical diagnostic.
type Kind int

const (
	UnrecognizedToken Kind = iota
	UnclosedString
	UnclosedBlockComment
	UnclosedRawString
	InvalidEscapeSequence
	InvalidUnicodeChar
	IdentifierTooLong
	UnmatchedOpenParen
	UnmatchedOpenBrace
	UnmatchedOpenBracket
	UnexpectedClosingDelimiter
	MalformedCharLiteral

	numKinds
)

var kindNames = [numKinds]string{
	UnrecognizedToken:          "UnrecognizedToken",
	UnclosedString:             "UnclosedString",
	UnclosedBlockComment:       "UnclosedBlockComment",
	UnclosedRawString:          "UnclosedRawString",
	InvalidEscapeSequence:      "InvalidEscapeSequence",
	InvalidUnicodeChar:         "InvalidUnicodeChar",
	IdentifierTooLong:          "IdentifierTooLong",
	UnmatchedOpenParen:         "UnmatchedOpenParen",
	UnmatchedOpenBrace:         "UnmatchedOpenBrace",
	UnmatchedOpenBracket:       "UnmatchedOpenBracket",
	UnexpectedClosingDelimiter: "UnexpectedClosingDelimiter",
	MalformedCharLiteral:       "MalformedCharLiteral",
}

// Error codes, one per kind. L0xx are token-level problems, L1xx are
// delimiter-balance problems.
var kindCodes = [numKinds]string{
	UnrecognizedToken:          "L001",
	UnclosedString:             "L002",
	UnclosedBlockComment:       "L003",
	UnclosedRawString:          "L004",
	InvalidEscapeSequence:      "L005",
	InvalidUnicodeChar:         "L006",
	IdentifierTooLong:          "L007",
	MalformedCharLiteral:       "L008",
	UnmatchedOpenParen:         "L101",
	UnmatchedOpenBrace:         "L102",
	UnmatchedOpenBracket:       "L103",
	UnexpectedClosingDelimiter: "L104",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// Code returns the stable error code for the kind.
func (k Kind) Code() string {
	if k < 0 || k >= numKinds {
		return ""
	}
	return kindCodes[k]
}

// MarshalText renders the kind by name in JSON and YAML reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds returns every diagnostic kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
