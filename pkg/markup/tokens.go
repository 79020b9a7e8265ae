// tokens.go defines the token types produced by the chat markup tokenizer.
package markup

// TokenType identifies the lexical construct a Token was recognized as.
type TokenType int

const (
	TokenText    TokenType = iota // plain text run, including whitespace
	TokenItalic                   // _italic_
	TokenBold                     // *bold*
	TokenCode                     // `code`
	TokenStrike                   // ~strike~
	TokenEmoji                    // :shortcode:
	TokenMention                  // @name
	TokenLink                     // http://example.com or www.example.com
)

var tokenTypeNames = [...]string{
	TokenText:    "text",
	TokenItalic:  "italic",
	TokenBold:    "bold",
	TokenCode:    "code",
	TokenStrike:  "strike",
	TokenEmoji:   "emoji",
	TokenMention: "mention",
	TokenLink:    "link",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "unknown"
	}
	return tokenTypeNames[t]
}

// Token is a single lexical unit of a chat message.
type Token struct {
	Type TokenType
	Text string // payload: span content, emoji name, mention slice, link URL or literal text
	Raw  string // exact input consumed, including delimiters and sigils
}

func newToken(typ TokenType, text, raw string) Token {
	return Token{Type: typ, Text: text, Raw: raw}
}
