// Package markup parses chat-style inline markup into a tree of nodes.
//
// The recognized constructs are _italic_, *bold*, ~strike~ and `code`
// spans, :emoji: shortcodes, @mentions of configured names, and URLs.
// Anything else is kept as literal text, so parsing never fails on
// malformed markup and Format(Parse(s)) == s for every s.
package markup

import (
	"golang.org/x/text/cases"
)

// Options configures a parse. The zero value recognizes no mentions and
// every well-formed emoji shortcode, and uses DefaultLinkMatcher.
type Options struct {
	// Mentions lists the names that may be mentioned with @name.
	// Matching is case-insensitive and prefers the longest name.
	Mentions []string

	// EmojiNames, when non-nil, restricts which shortcodes become emoji.
	// Matching is case-insensitive and the node carries the listed casing.
	EmojiNames []string

	// Links recognizes URLs. Nil selects DefaultLinkMatcher.
	Links LinkMatcher
}

// parser holds the options compiled for one top-level parse, shared by
// every nested re-parse of span content.
type parser struct {
	mentions *mentionMatcher
	emoji    *emojiIndex
	links    LinkMatcher
	lower    cases.Caser
}

func newParser(opts *Options) *parser {
	if opts == nil {
		opts = &Options{}
	}
	lower := newLowerCaser()
	p := &parser{
		mentions: newMentionMatcher(opts.Mentions),
		emoji:    newEmojiIndex(opts.EmojiNames, lower),
		links:    opts.Links,
		lower:    lower,
	}
	if p.links == nil {
		p.links = DefaultLinkMatcher
	}
	return p
}

// Parse converts message into a markup tree. It never returns nil.
// A nil opts is equivalent to a zero Options. Parse is safe for
// concurrent use as long as opts is not modified during the call.
func Parse(message string, opts *Options) []Node {
	return newParser(opts).parse(message)
}

// ParseValue is Parse for callers holding a dynamically typed message,
// such as one decoded from JSON. It returns an *InvalidInputError if v
// is not a string.
func ParseValue(v any, opts *Options) ([]Node, error) {
	message, ok := v.(string)
	if !ok {
		return nil, &InvalidInputError{Value: v}
	}
	return Parse(message, opts), nil
}

func (p *parser) parse(message string) []Node {
	tokens := p.tokenize(message)
	nodes := make([]Node, 0, len(tokens))
	for _, tok := range tokens {
		nodes = append(nodes, p.node(tok))
	}
	return nodes
}

func (p *parser) node(tok Token) Node {
	switch tok.Type {
	case TokenItalic:
		return &Italic{Content: p.parse(tok.Text)}
	case TokenBold:
		return &Bold{Content: p.parse(tok.Text)}
	case TokenStrike:
		return &Strike{Content: p.parse(tok.Text)}
	case TokenCode:
		return &Code{Content: tok.Text}
	case TokenEmoji:
		return &Emoji{Name: tok.Text, Raw: tok.Raw}
	case TokenMention:
		return &Mention{Mention: p.lower.String(tok.Text), Raw: tok.Raw}
	case TokenLink:
		return &Link{Text: tok.Text, Href: httpify(tok.Text)}
	default:
		return Text(tok.Raw)
	}
}
