package diagnostics

import (
	"fmt"
	"strconv"

	"kotlinlex/internal/source"
)

// Common diagnostic builders for the lexer

// UnrecognizedCharacter creates a diagnostic for a character no automaton accepts
func UnrecognizedCharacter(filepath string, loc *source.Location, lexeme string) *Diagnostic {
	return NewError("unrecognized token "+strconv.Quote(lexeme)).
		WithKind(UnrecognizedToken).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "unexpected character").
		WithHelp("remove this character or check if it's a typo")
}

// UnterminatedString creates a diagnostic for a string literal missing its closing quote
func UnterminatedString(filepath string, loc *source.Location, lexeme string) *Diagnostic {
	return NewError("unterminated string literal").
		WithKind(UnclosedString).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "string starts here").
		WithNote("string literals cannot span lines, use a raw string (\"\"\"...\"\"\") instead").
		WithHelp("add a closing quote (\") to terminate the string")
}

// UnterminatedChar creates a diagnostic for a character literal missing its closing quote
func UnterminatedChar(filepath string, loc *source.Location, lexeme string) *Diagnostic {
	return NewError("unterminated character literal").
		WithKind(UnclosedString).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "character literal starts here").
		WithHelp("add a closing quote (') to terminate the character literal")
}

// UnterminatedRawString creates a diagnostic for a raw string missing its closing triple quote
func UnterminatedRawString(filepath string, loc *source.Location, lexeme string) *Diagnostic {
	return NewError("unterminated raw string literal").
		WithKind(UnclosedRawString).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "raw string runs to end of file").
		WithHelp("add a closing triple quote (\"\"\") to terminate the raw string")
}

// UnterminatedBlockComment creates a diagnostic for a block comment that never closes
func UnterminatedBlockComment(filepath string, loc *source.Location, lexeme string, depth int) *Diagnostic {
	d := NewError("unterminated block comment").
		WithKind(UnclosedBlockComment).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "comment runs to end of file").
		WithHelp("add a closing */ to terminate the comment")
	if depth > 1 {
		d.WithNote(fmt.Sprintf("block comments nest, %d comments are still open at end of file", depth))
	}
	return d
}

// InvalidEscape creates a diagnostic for an invalid escape sequence
func InvalidEscape(filepath string, loc, escapeLoc *source.Location, lexeme, sequence string) *Diagnostic {
	return NewError("invalid escape sequence "+sequence).
		WithKind(InvalidEscapeSequence).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, escapeLoc, "unknown escape sequence").
		WithNote("valid escape sequences are: \\n, \\t, \\r, \\b, \\f, \\\\, \\\", \\', \\$, \\0").
		WithHelp("use a valid escape sequence or remove the backslash")
}

// InvalidCodepoint creates a diagnostic for a malformed or disallowed codepoint in a literal
func InvalidCodepoint(filepath string, loc, charLoc *source.Location, lexeme string, r rune) *Diagnostic {
	return NewError(fmt.Sprintf("invalid character U+%04X in literal", r)).
		WithKind(InvalidUnicodeChar).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, charLoc, "literal contains an invalid character").
		WithNote("the file may not be valid UTF-8 or may contain control characters").
		WithHelp("re-save the file as UTF-8 or remove the character")
}

// MalformedChar creates a diagnostic for a character literal holding zero or several characters
func MalformedChar(filepath string, loc *source.Location, lexeme string) *Diagnostic {
	return NewError("character literal must contain exactly one character").
		WithKind(MalformedCharLiteral).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "malformed character literal").
		WithHelp("use a string literal (\"...\") for text")
}

// LongIdentifier creates a diagnostic for an identifier exceeding the length limit
func LongIdentifier(filepath string, loc *source.Location, lexeme string, max int) *Diagnostic {
	return NewError(fmt.Sprintf("identifier is %d characters long, maximum is %d", len([]rune(lexeme)), max)).
		WithKind(IdentifierTooLong).
		At(loc, lexeme).
		WithPrimaryLabel(filepath, loc, "identifier too long").
		WithHelp(fmt.Sprintf("shorten the name to at most %d characters", max))
}

// Common diagnostic builders for delimiter balance

// MismatchedDelimiter creates a diagnostic for a closing delimiter that does not match the innermost opener
func MismatchedDelimiter(filepath string, loc, openLoc *source.Location, expected, found string) *Diagnostic {
	return NewError(fmt.Sprintf("expected %s but found %s", strconv.Quote(expected), strconv.Quote(found))).
		WithKind(UnexpectedClosingDelimiter).
		At(loc, found).
		WithPrimaryLabel(filepath, loc, "mismatched closing delimiter").
		WithSecondaryLabel(filepath, openLoc, "unclosed delimiter opened here").
		WithNote("opened at " + openLoc.String()).
		WithHelp("close the inner delimiter with " + strconv.Quote(expected) + " first")
}

// UnexpectedCloser creates a diagnostic for a closing delimiter with no open delimiter
func UnexpectedCloser(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("closing delimiter "+strconv.Quote(found)+" without matching opener").
		WithKind(UnexpectedClosingDelimiter).
		At(loc, found).
		WithPrimaryLabel(filepath, loc, "unexpected closing delimiter").
		WithHelp("remove this delimiter or add the matching opener")
}

// UnclosedDelimiter creates a diagnostic for an opening delimiter left open at end of file
func UnclosedDelimiter(filepath string, loc *source.Location, kind Kind, open, close string) *Diagnostic {
	return NewError("unclosed delimiter "+strconv.Quote(open)).
		WithKind(kind).
		At(loc, open).
		WithPrimaryLabel(filepath, loc, "unclosed delimiter").
		WithHelp("add a matching " + strconv.Quote(close))
}
