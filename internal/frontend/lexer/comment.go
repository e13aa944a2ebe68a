package lexer

// CommentAutomaton recognizes line comments, block comments and KDoc
// comments. Block comments nest; an unbalanced one is declined.
type CommentAutomaton struct{}

func (CommentAutomaton) Recognize(src []rune, pos int) (Token, int, bool) {
	if at(src, pos) != '/' {
		return decline()
	}

	switch at(src, pos+1) {
	case '/':
		end := pos + 2
		for end < len(src) && !IsNewline(src[end]) {
			end++
		}
		return accept(src, pos, end, LINE_COMMENT, nil)

	case '*':
		end, depth := scanBlockComment(src, pos)
		if depth > 0 {
			return decline()
		}
		kind := BLOCK_COMMENT
		// `/**/` is an empty block comment, not documentation
		if at(src, pos+2) == '*' && at(src, pos+3) != '/' {
			kind = DOC_COMMENT
		}
		return accept(src, pos, end, kind, nil)

	default:
		return decline()
	}
}

// scanBlockComment walks a block comment opened at pos and returns where it
// stopped together with the nesting depth left open (0 when closed).
func scanBlockComment(src []rune, pos int) (int, int) {
	depth := 1
	i := pos + 2
	for i < len(src) {
		switch {
		case src[i] == '/' && at(src, i+1) == '*':
			depth++
			i += 2
		case src[i] == '*' && at(src, i+1) == '/':
			depth--
			i += 2
			if depth == 0 {
				return i, 0
			}
		default:
			i++
		}
	}
	return len(src), depth
}
