package extension

import (
	"strings"
	"unicode/utf8"
)

var mathSymbols = map[string]string{
	// Greek.
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "upsilon": "υ", "phi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Operators.
	"sum": "Σ", "prod": "Π", "int": "∫", "oint": "∮", "partial": "∂",
	"nabla": "∇", "sqrt": "√", "infty": "∞", "pm": "±", "mp": "∓",
	"times": "×", "div": "÷", "cdot": "·",

	// Relations.
	"leq": "≤", "geq": "≥", "neq": "≠", "approx": "≈", "equiv": "≡",

	// Sets and logic.
	"in": "∈", "notin": "∉", "subset": "⊂", "supset": "⊃", "cup": "∪",
	"cap": "∩", "emptyset": "∅", "forall": "∀", "exists": "∃", "neg": "¬",
	"land": "∧", "lor": "∨",

	// Arrows.
	"to": "→", "gets": "←", "leftrightarrow": "↔", "Rightarrow": "⇒",
	"Leftarrow": "⇐", "Leftrightarrow": "⇔",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'i': 'ᵢ', 'n': 'ₙ', 'o': 'ₒ', 'x': 'ₓ',
}

// RenderMath approximates a LaTeX math expression in Unicode. Known
// commands become symbols, single-character and braced scripts become
// super- or subscript runes where a rune exists, and grouping braces are
// dropped. Unknown commands are kept as written.
//
// The boolean reports whether anything was substituted; when it is false
// the caller shows the expression as written.
func RenderMath(latex string) (string, bool) {
	var b strings.Builder
	b.Grow(len(latex))
	recognized := false

	for i := 0; i < len(latex); {
		c := latex[i]
		switch c {
		case '\\':
			j := i + 1
			for j < len(latex) && isASCIILetter(latex[j]) {
				j++
			}
			if j == i+1 {
				// Escaped punctuation such as \{ or \,.
				end := min(i+2, len(latex))
				b.WriteString(latex[i:end])
				i = end
				continue
			}
			if sym, ok := mathSymbols[latex[i+1:j]]; ok {
				b.WriteString(sym)
				recognized = true
			} else {
				b.WriteString(latex[i:j])
			}
			i = j

		case '^', '_':
			table := superscripts
			if c == '_' {
				table = subscripts
			}
			n, ok := writeScript(&b, latex[i+1:], c, table)
			recognized = recognized || ok
			i += 1 + n

		case '{', '}':
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), recognized
}

// writeScript writes the script that follows a ^ or _ marker and returns
// the number of bytes consumed after the marker.
func writeScript(b *strings.Builder, rest string, marker byte, table map[rune]rune) (int, bool) {
	if rest == "" {
		b.WriteByte(marker)
		return 0, false
	}

	if rest[0] == '{' {
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteByte(marker)
			return 0, false
		}
		mapped := false
		for _, r := range rest[1:end] {
			if s, ok := table[r]; ok {
				b.WriteRune(s)
				mapped = true
			} else {
				b.WriteRune(r)
			}
		}
		return end + 1, mapped
	}

	r, size := utf8.DecodeRuneInString(rest)
	if s, ok := table[r]; ok {
		b.WriteRune(s)
		return size, true
	}
	b.WriteByte(marker)
	b.WriteRune(r)
	return size, false
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// mathSpanAt reports the math span starting at text[i], which must be '$'.
// Display spans are $$...$$ and may cross lines. Inline spans are $...$ on
// one line, with no space after the opening or before the closing dollar,
// and a closing dollar not followed by a digit so prices are left alone.
func mathSpanAt(text string, i int) (inner string, end int, ok bool) {
	if strings.HasPrefix(text[i:], "$$") {
		stop := strings.Index(text[i+2:], "$$")
		if stop <= 0 {
			return "", 0, false
		}
		start := i + 2
		return text[start : start+stop], start + stop + 2, true
	}

	if i+1 >= len(text) {
		return "", 0, false
	}
	switch text[i+1] {
	case ' ', '\t', '\n', '$':
		return "", 0, false
	}

	for k := i + 1; k < len(text); k++ {
		switch text[k] {
		case '\n':
			return "", 0, false
		case '\\':
			k++
		case '$':
			if isSpace(text[k-1]) {
				continue
			}
			if k+1 < len(text) && '0' <= text[k+1] && text[k+1] <= '9' {
				continue
			}
			return text[i+1 : k], k + 1, true
		}
	}
	return "", 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// isDisplayMath reports whether text is exactly one $$...$$ span.
func isDisplayMath(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < 5 || !strings.HasPrefix(text, "$$") || !strings.HasSuffix(text, "$$") {
		return false
	}
	return strings.Count(text, "$$") == 2
}
