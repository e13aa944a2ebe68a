package lexer

// escapes maps the character after a backslash to the character it denotes.
var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'$':  '$',
	'0':  0,
}

// StringAutomaton recognizes character literals, strings, string templates
// and raw strings. On any reject it only declines; the scanner re-scans the
// span to attribute a cause.
type StringAutomaton struct{}

func (StringAutomaton) Recognize(src []rune, pos int) (Token, int, bool) {
	switch at(src, pos) {
	case '\'':
		s := scanQuoted(src, pos, '\'', false)
		if !s.valid() || s.units != 1 {
			return decline()
		}
		return accept(src, pos, s.end, CHAR, string(s.value))
	case '"':
		if isRawOpener(src, pos) {
			end, closed := scanRaw(src, pos)
			if !closed {
				return decline()
			}
			return accept(src, pos, end, RAW_STRING, string(src[pos+3:end-3]))
		}
		s := scanQuoted(src, pos, '"', true)
		if !s.valid() {
			return decline()
		}
		kind := STRING
		if s.template {
			kind = STRING_TEMPLATE
		}
		return accept(src, pos, s.end, kind, string(s.value))
	default:
		return decline()
	}
}

// quotedScan is the outcome of walking a single-line quoted literal.
type quotedScan struct {
	// end is just past the closing quote when closed, otherwise the position
	// where the walk stopped (a line break or end of input).
	end      int
	closed   bool
	template bool
	// units counts logical characters: plain codepoints, escapes and
	// template fragments.
	units int

	badEscape int // offset of the first invalid escape, -1 if none
	badChar   int // offset of the first invalid codepoint, -1 if none
	badRune   rune

	value []rune
}

func (s *quotedScan) valid() bool {
	return s.closed && s.badEscape < 0 && s.badChar < 0
}

func (s *quotedScan) markBadChar(i int, r rune) {
	if s.badChar < 0 {
		s.badChar = i
		s.badRune = r
	}
}

// scanQuoted walks the literal opened by src[pos] up to its closing quote,
// the end of the line or the end of input, whichever comes first. It does
// not stop at the first fault so the caller sees the full attempted span.
func scanQuoted(src []rune, pos int, quote rune, templates bool) quotedScan {
	s := quotedScan{badEscape: -1, badChar: -1}
	i := pos + 1

	for {
		r := at(src, i)
		switch {
		case r < 0 || IsNewline(r):
			s.end = i
			return s

		case r == quote:
			s.end = i + 1
			s.closed = true
			return s

		case r == '\\':
			code := at(src, i+1)
			if code < 0 || IsNewline(code) {
				// A trailing backslash has no escape code; the literal is
				// simply unterminated.
				s.end = i + 1
				return s
			}
			if decoded, ok := escapes[code]; ok {
				s.value = append(s.value, decoded)
			} else if s.badEscape < 0 {
				s.badEscape = i
			}
			s.units++
			i += 2

		case r == '$' && templates && at(src, i+1) == '{':
			end, ok := s.scanTemplateBlock(src, i)
			if !ok {
				s.end = end
				return s
			}
			s.template = true
			s.value = append(s.value, src[i:end]...)
			s.units++
			i = end

		case r == '$' && templates && IsIdentStart(at(src, i+1)):
			end := i + 2
			for IsIdentPart(at(src, end)) {
				end++
			}
			s.template = true
			s.value = append(s.value, src[i:end]...)
			s.units++
			i = end

		default:
			if !IsValidCodepoint(r) {
				s.markBadChar(i, r)
			}
			s.value = append(s.value, r)
			s.units++
			i++
		}
	}
}

// scanTemplateBlock consumes a `${...}` fragment starting at the dollar
// sign. Braces are counted, nothing inside is lexed. It fails on a line
// break or end of input before the braces balance.
func (s *quotedScan) scanTemplateBlock(src []rune, pos int) (int, bool) {
	depth := 1
	i := pos + 2
	for {
		r := at(src, i)
		switch {
		case r < 0 || IsNewline(r):
			return i, false
		case r == '{':
			depth++
		case r == '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case !IsValidCodepoint(r):
			s.markBadChar(i, r)
		}
		i++
	}
}

func isRawOpener(src []rune, pos int) bool {
	return at(src, pos) == '"' && at(src, pos+1) == '"' && at(src, pos+2) == '"'
}

// scanRaw walks a raw string. Every character is literal; one or two quotes
// are content, the first run of three closes the literal.
func scanRaw(src []rune, pos int) (int, bool) {
	i := pos + 3
	for i < len(src) {
		if isRawOpener(src, i) {
			return i + 3, true
		}
		i++
	}
	return len(src), false
}
