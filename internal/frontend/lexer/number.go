package lexer

import (
	"math/big"
	"strconv"
)

type numberState int

const (
	numStart numberState = iota
	numIntegerDigits
	numDotSeen
	numDecimalDigits
)

// NumberAutomaton recognizes unsigned decimal integers and decimals
// (digits '.' digits). A dot is only taken when a digit follows it, which
// leaves `3..5` and `1.inc()` to the operator and delimiter tables.
type NumberAutomaton struct{}

func (NumberAutomaton) Recognize(src []rune, pos int) (Token, int, bool) {
	state := numStart
	i := pos

loop:
	for {
		r := at(src, i)
		switch state {
		case numStart:
			if !IsDigit(r) {
				return decline()
			}
			state = numIntegerDigits
			i++
		case numIntegerDigits:
			switch {
			case IsDigit(r):
				i++
			case r == '.' && IsDigit(at(src, i+1)):
				state = numDotSeen
				i++
			default:
				break loop
			}
		case numDotSeen:
			// guaranteed by the lookahead above
			state = numDecimalDigits
			i++
		case numDecimalDigits:
			if !IsDigit(r) {
				break loop
			}
			i++
		}
	}

	lexeme := string(src[pos:i])
	if state == numDecimalDigits {
		f, _ := strconv.ParseFloat(lexeme, 64)
		return accept(src, pos, i, DECIMAL, f)
	}
	return accept(src, pos, i, INTEGER, parseInteger(lexeme))
}

// parseInteger decodes a digit run, falling back to a big.Int when the value
// does not fit in an int64.
func parseInteger(digits string) interface{} {
	if v, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return v
	}
	b, _ := new(big.Int).SetString(digits, 10)
	return b
}
