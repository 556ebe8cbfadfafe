// Package langdetect guesses the language of an untagged fenced code block
// so the preview can label and style it.
//
// Detection runs in three passes: a shebang line, a table of cheap textual
// signatures, then the go-enry classifier restricted to common languages.
// Anything the classifier is unsure about is reported as "text".
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is the fallback tag for content no pass recognised.
const Text = "text"

// candidates bounds the classifier to languages that show up in prose
// documents; an unrestricted classifier is slow and noisy on short snippets.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "TOML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// snippet carries the forms of the content the signatures inspect.
type snippet struct {
	raw     []byte
	trimmed []byte
	text    string
}

// signature reports a language tag, or "" when it does not match.
type signature struct {
	lang  string
	match func(s snippet) bool
}

// signatures are tried in order; earlier entries are more specific.
var signatures = []signature{
	{"go", func(s snippet) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{"mermaid", func(s snippet) bool {
		first, _, _ := strings.Cut(strings.TrimSpace(s.text), "\n")
		for _, kw := range []string{"graph ", "flowchart ", "sequenceDiagram", "stateDiagram", "pie", "classDiagram", "gantt"} {
			if strings.HasPrefix(first, kw) {
				return true
			}
		}
		return false
	}},
	{"python", func(s snippet) bool {
		switch {
		case strings.Contains(s.text, "def ") && strings.Contains(s.text, "):"):
			return true
		case strings.Contains(s.text, "__name__"), strings.Contains(s.text, "__main__"):
			return true
		case strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import ("):
			return strings.Contains(s.text, "from ") || strings.HasPrefix(strings.TrimSpace(s.text), "import ")
		}
		return false
	}},
	{"html", func(s snippet) bool {
		lower := bytes.ToLower(s.trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{"json", func(s snippet) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{"dockerfile", func(s snippet) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
			(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")))
	}},
	{"sql", func(s snippet) bool {
		upper := strings.ToUpper(strings.TrimSpace(s.text))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s snippet) bool {
		return strings.Contains(s.text, "fn main()") ||
			strings.Contains(s.text, "println!") ||
			strings.Contains(s.text, "let mut ")
	}},
	{"javascript", func(s snippet) bool {
		return strings.Contains(s.text, "=>") ||
			strings.Contains(s.text, "const ") ||
			strings.Contains(s.text, "let ") ||
			strings.Contains(s.text, "console.log")
	}},
	{"toml", func(s snippet) bool {
		return countLines(s.raw, isTOMLLine) >= 2 && bytes.Contains(s.raw, []byte("["))
	}},
	{"yaml", func(s snippet) bool {
		return countLines(s.raw, isYAMLLine) >= 2
	}},
}

// Detect returns a lowercase fence tag for content, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := snippet{raw: content, trimmed: bytes.TrimSpace(content), text: string(content)}
	for _, sig := range signatures {
		if sig.match(s) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

func countLines(content []byte, pred func(line []byte) bool) int {
	n := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if pred(line) {
			n++
		}
	}
	return n
}

// isYAMLLine matches "key: value" pairs and root list items, skipping lines
// that look like code.
func isYAMLLine(line []byte) bool {
	if bytes.HasPrefix(line, []byte("- ")) {
		return true
	}
	return bytes.Contains(line, []byte(": ")) &&
		!bytes.Contains(line, []byte("(")) &&
		!bytes.Contains(line, []byte("{")) &&
		!bytes.HasPrefix(line, []byte(`"`))
}

// isTOMLLine matches table headers and "key = value" pairs.
func isTOMLLine(line []byte) bool {
	if line[0] == '[' && line[len(line)-1] == ']' {
		return true
	}
	key, _, ok := bytes.Cut(line, []byte(" = "))
	return ok && len(key) > 0 && !bytes.ContainsAny(key, " (\"")
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
