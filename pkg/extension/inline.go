package extension

import "strings"

// substitutions selects the inline rewrites applied to block text.
type substitutions struct {
	math      bool
	shortcode bool
}

func (s substitutions) any() bool { return s.math || s.shortcode }

// rewrite applies math and shortcode substitution in one left-to-right
// pass. Code spans are copied untouched and a backslash-escaped dollar
// never opens a math span.
func (s substitutions) rewrite(text string) string {
	if !s.any() {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '`':
			end := codeSpanEnd(text, i)
			b.WriteString(text[i:end])
			i = end

		case c == '\\' && i+1 < len(text) && text[i+1] == '$':
			b.WriteString(`\$`)
			i += 2

		case c == '$' && s.math:
			inner, end, ok := mathSpanAt(text, i)
			if !ok {
				// An unmatched $$ must not be retried as two inline openers.
				n := 1
				if strings.HasPrefix(text[i:], "$$") {
					n = 2
				}
				b.WriteString(text[i : i+n])
				i += n
				continue
			}
			if out, recognized := RenderMath(inner); recognized {
				b.WriteString(out)
			} else {
				b.WriteString(text[i:end])
			}
			i = end

		case c == ':' && s.shortcode:
			if name, end, ok := shortcodeAt(text, i); ok {
				if glyph, found := LookupShortcode(name); found {
					b.WriteString(glyph)
					i = end
					continue
				}
			}
			b.WriteByte(':')
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// codeSpanEnd returns the end of the code span opened by the backtick run
// at text[i], or the end of the run when no closing run of equal length
// exists.
func codeSpanEnd(text string, i int) int {
	n := backtickRun(text, i)
	for j := i + n; j < len(text); {
		if text[j] != '`' {
			j++
			continue
		}
		m := backtickRun(text, j)
		if m == n {
			return j + m
		}
		j += m
	}
	return i + n
}

func backtickRun(text string, i int) int {
	n := 0
	for i+n < len(text) && text[i+n] == '`' {
		n++
	}
	return n
}

// hasShortcode reports whether text holds a :name: candidate outside code
// spans.
func hasShortcode(text string) bool {
	for i := 0; i < len(text); {
		switch text[i] {
		case '`':
			i = codeSpanEnd(text, i)
		case ':':
			if _, _, ok := shortcodeAt(text, i); ok {
				return true
			}
			i++
		default:
			i++
		}
	}
	return false
}
