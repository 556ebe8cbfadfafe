package extension

import (
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark-emoji/definition"
)

// shortcodeAliases take precedence over the GitHub set. Several of them
// (check, x, thumbsup) are names writers use that GitHub spells differently
// or maps to another glyph.
var shortcodeAliases = map[string]string{
	// Smileys.
	"smile": "😊", "grin": "😁", "joy": "😂", "rofl": "🤣", "wink": "😉",
	"heart_eyes": "😍", "thinking": "🤔", "sunglasses": "😎",

	// Gestures.
	"+1": "👍", "thumbsup": "👍", "-1": "👎", "thumbsdown": "👎",
	"wave": "👋", "clap": "👏", "pray": "🙏", "muscle": "💪",

	// Hearts.
	"heart": "❤️", "sparkling_heart": "💖", "broken_heart": "💔",

	// Objects.
	"rocket": "🚀", "star": "⭐", "fire": "🔥", "100": "💯", "bulb": "💡",
	"books": "📚", "memo": "📝", "computer": "💻", "phone": "📱",

	// Nature.
	"sun": "☀️", "moon": "🌙", "cloud": "☁️", "rainbow": "🌈", "tree": "🌳",
	"flower": "🌸",

	// Symbols.
	"check": "✅", "x": "❌", "warning": "⚠️", "question": "❓",
	"exclamation": "❗", "heavy_check_mark": "✔️", "heavy_multiplication_x": "✖️",
	"arrow_right": "➡️", "arrow_left": "⬅️", "arrow_up": "⬆️", "arrow_down": "⬇️",

	// Tooling.
	"bug": "🐛", "gear": "⚙️", "wrench": "🔧", "hammer": "🔨", "package": "📦",
	"link": "🔗", "lock": "🔒", "key": "🔑", "sparkles": "✨", "zap": "⚡",
	"tada": "🎉", "construction": "🚧", "white_check_mark": "✅",
	"round_pushpin": "📍", "pushpin": "📌",
}

var githubEmoji = sync.OnceValue(func() definition.Emojis {
	return definition.Github()
})

// LookupShortcode returns the glyph for a shortcode name without colons.
func LookupShortcode(name string) (string, bool) {
	if glyph, ok := shortcodeAliases[name]; ok {
		return glyph, true
	}
	if e, ok := githubEmoji().Get(name); ok && len(e.Unicode) > 0 {
		return string(e.Unicode), true
	}
	return "", false
}

// SearchShortcodes lists the alias names starting with prefix, sorted.
func SearchShortcodes(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var names []string
	for name := range shortcodeAliases {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// shortcodeAt reports the :name: candidate starting at text[i], which must
// be ':'.
func shortcodeAt(text string, i int) (name string, end int, ok bool) {
	j := i + 1
	for j < len(text) && isShortcodeByte(text[j]) {
		j++
	}
	if j == i+1 || j >= len(text) || text[j] != ':' {
		return "", 0, false
	}
	return text[i+1 : j], j + 1, true
}

func isShortcodeByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '+', c == '-':
		return true
	}
	return false
}
