// matchers.go holds the character classes and name matchers shared by the tokenizer.
package markup

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// isWordByte reports whether c is an ASCII word character [A-Za-z0-9_].
func isWordByte(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' || c == '_'
}

// isWordRune reports whether r is a word character. Only ASCII letters,
// digits and underscore count; every other rune is a word boundary.
func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && isWordByte(byte(r))
}

// isSpaceRune reports whether r is whitespace for the purpose of
// separating tokens. This is the ECMAScript whitespace and line terminator
// set, which differs from unicode.IsSpace around U+0085 and U+FEFF.
func isSpaceRune(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return 0x2000 <= r && r <= 0x200a
}

// isEmojiNameByte reports whether c may appear in a :shortcode: name.
func isEmojiNameByte(c byte) bool {
	return isWordByte(c) || c == '+' || c == '-'
}

// isSchemeByte reports whether c is an ASCII letter.
func isSchemeByte(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// equalFoldRune reports whether a and b are equal ignoring case. Runes
// are compared by their upper-case form, except that a non-ASCII rune
// never folds onto an ASCII one: the long s and the Kelvin sign do not
// match s and k.
func equalFoldRune(a, b rune) bool {
	return a == b || canonicalRune(a) == canonicalRune(b)
}

func canonicalRune(r rune) rune {
	u := unicode.ToUpper(r)
	if r >= utf8.RuneSelf && u < utf8.RuneSelf {
		return r
	}
	return u
}

// hasFoldPrefix reports whether s begins with prefix ignoring case, and
// if so how many bytes of s the prefix covers.
func hasFoldPrefix(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !equalFoldRune(sr, pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// mentionMatcher finds configured mentionable names at the start of a string.
type mentionMatcher struct {
	names []string // longest first
}

func newMentionMatcher(names []string) *mentionMatcher {
	sorted := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			sorted = append(sorted, name)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	return &mentionMatcher{names: sorted}
}

// match returns the number of bytes of s taken by the longest configured
// name that matches case-insensitively and ends on a word boundary.
// It returns 0 when no name matches.
func (m *mentionMatcher) match(s string) int {
	for _, name := range m.names {
		n, ok := hasFoldPrefix(s, name)
		if ok && endsOnBoundary(s, n) {
			return n
		}
	}
	return 0
}

// endsOnBoundary reports whether a match of s[:n] may end at n: either the
// input ends there, or the next rune is not a word character, or the match
// itself ends in a non-word character.
func endsOnBoundary(s string, n int) bool {
	if n >= len(s) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(s[n:])
	if !isWordRune(next) {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(s[:n])
	return !isWordRune(last)
}

// emojiIndex resolves shortcode names against an optional whitelist.
type emojiIndex struct {
	restricted bool
	canonical  map[string]string // lower-cased name -> configured name
	lower      cases.Caser
}

func newEmojiIndex(names []string, lower cases.Caser) *emojiIndex {
	idx := &emojiIndex{restricted: names != nil, lower: lower}
	if !idx.restricted {
		return idx
	}
	idx.canonical = make(map[string]string, len(names))
	for _, name := range names {
		key := lower.String(name)
		if _, dup := idx.canonical[key]; !dup {
			idx.canonical[key] = name
		}
	}
	return idx
}

// resolve returns the canonical emoji name for a typed shortcode name.
func (idx *emojiIndex) resolve(name string) (string, bool) {
	if !idx.restricted {
		return name, true
	}
	canonical, ok := idx.canonical[idx.lower.String(name)]
	return canonical, ok
}

// newLowerCaser returns a caser for locale-independent lower-casing.
// Casers are stateful, so each parse gets its own.
func newLowerCaser() cases.Caser {
	return cases.Lower(language.Und)
}

// httpify prefixes "http://" to a URL that has no leading "letters:"
// scheme. The scheme may be in either case.
func httpify(text string) string {
	i := 0
	for i < len(text) && isSchemeByte(text[i]) {
		i++
	}
	if i > 0 && i < len(text) && text[i] == ':' {
		return text
	}
	return "http://" + text
}
