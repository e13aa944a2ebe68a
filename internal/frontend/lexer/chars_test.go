package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharacterClasses(t *testing.T) {
	for _, r := range "0123456789" {
		assert.True(t, IsDigit(r), "%q", r)
		assert.True(t, IsIdentPart(r), "%q", r)
		assert.False(t, IsIdentStart(r), "%q", r)
	}
	for _, r := range "azAZ_" {
		assert.True(t, IsIdentStart(r), "%q", r)
		assert.True(t, IsIdentPart(r), "%q", r)
	}
	assert.False(t, IsLetter('_'))
	assert.False(t, IsLetter('é'))
	assert.False(t, IsIdentStart('é'))
	assert.False(t, IsDigit(-1))

	assert.True(t, IsWhitespace(' '))
	assert.True(t, IsWhitespace('\t'))
	assert.False(t, IsWhitespace('\n'))
	assert.True(t, IsNewline('\n'))
	assert.True(t, IsNewline('\r'))
	assert.False(t, IsNewline(' '))
}

func TestIsValidCodepoint(t *testing.T) {
	valid := []rune{'a', ' ', '\t', '\n', '\r', 'é', '世', 0x1F600, 0xFFFC}
	for _, r := range valid {
		assert.True(t, IsValidCodepoint(r), "U+%04X", r)
	}

	invalid := []rune{0xFFFD, 0xD800, 0xDFFF, 0xFDD0, 0xFDEF, 0xFFFE, 0xFFFF, 0x1FFFF, 0x00, 0x01, 0x1B, 0x7F, 0x85}
	for _, r := range invalid {
		assert.False(t, IsValidCodepoint(r), "U+%04X", r)
	}
}

func TestLookupWord(t *testing.T) {
	assert.Equal(t, KEYWORD, LookupWord("fun"))
	assert.Equal(t, KEYWORD, LookupWord("val"))
	assert.Equal(t, KEYWORD, LookupWord("suspend"))
	assert.Equal(t, BOOLEAN, LookupWord("true"))
	assert.Equal(t, BOOLEAN, LookupWord("false"))
	assert.Equal(t, NULL, LookupWord("null"))
	assert.Equal(t, IDENTIFIER, LookupWord("Fun"))
	assert.Equal(t, IDENTIFIER, LookupWord("main"))
	assert.True(t, IsKeyword("null"))
	assert.False(t, IsKeyword("String"))
}

func TestTokenKindCategory(t *testing.T) {
	assert.Equal(t, CategoryEnd, EOF.Category())
	assert.Equal(t, CategoryKeyword, KEYWORD.Category())
	assert.Equal(t, CategoryIdentifier, IDENTIFIER.Category())
	assert.Equal(t, CategoryLiteral, STRING_TEMPLATE.Category())
	assert.Equal(t, CategoryLiteral, NULL.Category())
	assert.Equal(t, CategoryComment, DOC_COMMENT.Category())
	assert.Equal(t, CategoryOperator, ELVIS.Category())
	assert.Equal(t, CategoryOperator, AT.Category())
	assert.Equal(t, CategoryDelimiter, COLON.Category())

	for k := TokenKind(0); k < numTokenKinds; k++ {
		assert.NotEmpty(t, tokenKindNames[k], "kind %d has no name", int(k))
	}
}
