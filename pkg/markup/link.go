// link.go implements recognition of URL-shaped text.
package markup

import "regexp"

// LinkMatcher recognizes a URL anchored at the start of a string.
// MatchLink returns the byte length of the URL at the start of s, or 0
// if s does not start with a URL.
type LinkMatcher interface {
	MatchLink(s string) int
}

// LinkMatcherFunc adapts an ordinary function to a LinkMatcher.
type LinkMatcherFunc func(s string) int

// MatchLink calls f(s).
func (f LinkMatcherFunc) MatchLink(s string) int {
	return f(s)
}

// URL grammar, adapted from kevva/url-regex. Whitespace classes are spelled
// out because RE2's \s only covers ASCII.
const (
	urlSpace    = `\t\n\x0b\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`
	urlNonSpace = `[^` + urlSpace + `]`
	urlLabel    = `[a-z\x{a1}-\x{10ffff}0-9]`

	urlProtocol = `(?:(?:[a-z]+:)?//)`
	urlAuth     = `(?:` + urlNonSpace + `+(?::` + urlNonSpace + `*)?@)?`
	urlHost     = `(?:(?:` + urlLabel + `-*)*` + urlLabel + `+)`
	urlDomain   = `(?:\.(?:` + urlLabel + `-*)*` + urlLabel + `+)*`
	urlTLD      = `(?:\.(?:[a-z\x{a1}-\x{10ffff}]{2,}))\.?`
	urlPort     = `(?::\d{2,5})?`
	urlPath     = `(?:[/?#][^` + urlSpace + `"]*)?`
)

var linkRx = regexp.MustCompile(`(?i)^(?:` + urlProtocol + `|www\.)` + urlAuth +
	`(?:localhost|` + urlHost + urlDomain + urlTLD + `)` + urlPort + urlPath)

// DefaultLinkMatcher recognizes scheme URLs (any letter scheme followed by
// "//") and bare "www." hosts, with optional userinfo, port, path, query and
// fragment. Hosts need a TLD of two or more letters unless they are localhost.
var DefaultLinkMatcher LinkMatcher = LinkMatcherFunc(matchLink)

func matchLink(s string) int {
	loc := linkRx.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1]
}
