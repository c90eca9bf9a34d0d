package extract

import "strings"

// Literal is the display form of an annotation argument.
type Literal struct {
	// Value has the outer delimiters removed and every quote doubled,
	// so it can be embedded in a quoted CSV field as is.
	Value string

	// Blank reports whether Value is empty or whitespace only.
	Blank bool
}

// Normalize collapses the raw source text of an annotation argument into a
// display string.
//
// Text blocks ("""...""") are first reduced to their content: the opening
// line is dropped, incidental indentation and trailing spaces are stripped,
// and the line break before the closing delimiter is removed.
// Adjacent string literals joined by + are fused ("foo" + "bar" -> foobar).
// A + between a literal and any other expression becomes a single space
// ("foo" + baz -> foo baz). Inside literals \" and \\ are reduced to " and \;
// other escapes are kept as written. The outer quotes are then stripped and
// every quote is doubled.
//
// This is a textual reduction over literal and + shapes only. It is not an
// expression evaluator: constants, method calls and arrays are kept as text.
func Normalize(raw string) Literal {
	text := fuseConcatenation(rewriteTextBlocks(raw))
	text = strings.TrimPrefix(text, `"`)
	text = strings.TrimSuffix(text, `"`)
	text = strings.ReplaceAll(text, `"`, `""`)

	return Literal{
		Value: text,
		Blank: strings.TrimSpace(text) == "",
	}
}

// Unescape reverses the quote doubling applied by Normalize.
func Unescape(value string) string {
	return strings.ReplaceAll(value, `""`, `"`)
}

// fuseConcatenation removes + boundaries between literal fragments and
// reduces quote and backslash escapes inside literals. Quotes preceded by a
// backslash inside a literal never close it.
func fuseConcatenation(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inLiteral := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inLiteral {
			switch c {
			case '\\':
				if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
					i++
					b.WriteByte(s[i])
					continue
				}
				b.WriteByte(c)
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case '"':
				next, ok := plusBoundary(s, i+1)
				switch {
				case !ok:
					b.WriteByte(c)
					inLiteral = false
				case next < len(s) && s[next] == '"':
					// "a" + "b": drop the boundary and stay in the literal
					i = next
				default:
					// "a" + expr
					b.WriteByte(' ')
					i = next - 1
					inLiteral = false
				}
			default:
				b.WriteByte(c)
			}
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inLiteral = true
			continue
		}

		if (c == '+' || isSpace(c)) && b.Len() > 0 {
			// expr + "b"
			if next, ok := plusBoundary(s, i); ok && next < len(s) && s[next] == '"' {
				b.WriteByte(' ')
				i = next
				inLiteral = true
				continue
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

// plusBoundary checks for optional whitespace, a '+', and optional whitespace
// starting at i. It returns the index of the first byte after the boundary.
func plusBoundary(s string, i int) (int, bool) {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != '+' {
		return 0, false
	}
	i++
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// rewriteTextBlocks replaces every text block with an ordinary literal holding
// its content. An unterminated text block is left as written.
func rewriteTextBlocks(s string) string {
	if !strings.Contains(s, `"""`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	inLiteral := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inLiteral {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case '"':
				inLiteral = false
			}
			continue
		}

		if c != '"' {
			b.WriteByte(c)
			continue
		}

		if strings.HasPrefix(s[i:], `"""`) {
			if end := textBlockEnd(s, i+3); end >= 0 {
				b.WriteByte('"')
				b.WriteString(escapeQuotes(textBlockContent(s[i+3 : end])))
				b.WriteByte('"')
				i = end + 2
				continue
			}
		}

		b.WriteByte(c)
		inLiteral = true
	}

	return b.String()
}

// textBlockEnd returns the index of the closing """ at or after i, or -1.
func textBlockEnd(s string, i int) int {
	for ; i < len(s); i++ {
		switch {
		case s[i] == '\\':
			i++
		case strings.HasPrefix(s[i:], `"""`):
			return i
		}
	}
	return -1
}

// textBlockContent strips the opening line, incidental indentation, trailing
// spaces and the line holding only the closing delimiter.
func textBlockContent(content string) string {
	if nl := strings.IndexByte(content, '\n'); nl >= 0 && strings.TrimSpace(content[:nl]) == "" {
		content = content[nl+1:]
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	closingOwnLine := strings.TrimSpace(lines[len(lines)-1]) == ""

	indent := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" && !(closingOwnLine && i == len(lines)-1) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		indent = 0
	}

	if closingOwnLine {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if len(line) >= indent {
			line = line[indent:]
		} else {
			line = ""
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// escapeQuotes escapes bare quotes so text can sit inside an ordinary literal.
func escapeQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteByte(s[i])
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
