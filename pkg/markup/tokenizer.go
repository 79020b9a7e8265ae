// tokenizer.go implements the single-pass scanner that splits a chat message into tokens.
package markup

import "unicode/utf8"

// A recognizer tries to read one token from the start of chunk. It returns
// the token, the number of bytes consumed, and whether it matched.
type recognizer func(p *parser, chunk string) (tok Token, n int, ok bool)

// recognizers are tried in order at every position; the first match wins.
var recognizers = []recognizer{
	recognizeEmoji,
	delimited(TokenItalic, '_'),
	delimited(TokenBold, '*'),
	delimited(TokenCode, '`'),
	delimited(TokenStrike, '~'),
	recognizeMention,
	recognizeLink,
}

// Tokenize scans text into a sequence of tokens. The Raw fields of the
// returned tokens concatenate to exactly text. A nil opts is equivalent
// to a zero Options.
func Tokenize(text string, opts *Options) []Token {
	return newParser(opts).tokenize(text)
}

func (p *parser) tokenize(text string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(text) {
		chunk := text[pos:]
		tok, n, ok := p.recognize(chunk)
		if ok {
			tokens = append(tokens, tok)
		} else {
			n = wordRunLength(chunk)
			tokens = appendText(tokens, chunk[:n])
		}
		pos += n

		// Whitespace after a token is always a token of its own.
		if ws := leadingSpace(text[pos:]); ws > 0 {
			tokens = append(tokens, newToken(TokenText, text[pos:pos+ws], text[pos:pos+ws]))
			pos += ws
		}
	}
	return tokens
}

func (p *parser) recognize(chunk string) (Token, int, bool) {
	for _, r := range recognizers {
		if tok, n, ok := r(p, chunk); ok {
			return tok, n, true
		}
	}
	return Token{}, 0, false
}

// appendText appends s as text, extending the previous token if it is text.
func appendText(tokens []Token, s string) []Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == TokenText {
		last := &tokens[len(tokens)-1]
		last.Text += s
		last.Raw += s
		return tokens
	}
	return append(tokens, newToken(TokenText, s, s))
}

// wordRunLength returns the length of the fallback run at the start of
// chunk: everything up to and including the next space after the first
// byte, or all of chunk if there is none.
func wordRunLength(chunk string) int {
	for i := 1; i < len(chunk); i++ {
		if chunk[i] == ' ' {
			return i + 1
		}
	}
	return len(chunk)
}

// leadingSpace returns the byte length of the whitespace run starting s.
func leadingSpace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isSpaceRune(r) {
			break
		}
		n += size
	}
	return n
}

// recognizeEmoji reads a :shortcode: whose name is allowed by the emoji index.
func recognizeEmoji(p *parser, chunk string) (Token, int, bool) {
	if chunk[0] != ':' {
		return Token{}, 0, false
	}
	end := 1
	for end < len(chunk) && isEmojiNameByte(chunk[end]) {
		end++
	}
	if end == 1 || end >= len(chunk) || chunk[end] != ':' {
		return Token{}, 0, false
	}
	name, ok := p.emoji.resolve(chunk[1:end])
	if !ok {
		return Token{}, 0, false
	}
	end++
	return newToken(TokenEmoji, name, chunk[:end]), end, true
}

// delimited returns a recognizer for a span enclosed in a pair of delim
// bytes. The opening delimiter must not be doubled, and the closing one
// must be followed by a non-word character or the end of input.
func delimited(typ TokenType, delim byte) recognizer {
	return func(_ *parser, chunk string) (Token, int, bool) {
		if len(chunk) < 2 || chunk[0] != delim || chunk[1] == delim {
			return Token{}, 0, false
		}
		for i := 1; i < len(chunk); i++ {
			if chunk[i] != delim {
				continue
			}
			if i+1 == len(chunk) || !isWordByte(chunk[i+1]) {
				return newToken(typ, chunk[1:i], chunk[:i+1]), i + 1, true
			}
		}
		return Token{}, 0, false
	}
}

// recognizeMention reads an @name for one of the configured mentionable names.
func recognizeMention(p *parser, chunk string) (Token, int, bool) {
	if chunk[0] != '@' {
		return Token{}, 0, false
	}
	n := p.mentions.match(chunk[1:])
	if n == 0 {
		return Token{}, 0, false
	}
	return newToken(TokenMention, chunk[1:1+n], chunk[:1+n]), 1 + n, true
}

// recognizeLink reads a URL using the configured link matcher.
func recognizeLink(p *parser, chunk string) (Token, int, bool) {
	n := p.links.MatchLink(chunk)
	if n <= 0 {
		return Token{}, 0, false
	}
	if n > len(chunk) {
		n = len(chunk)
	}
	return newToken(TokenLink, chunk[:n], chunk[:n]), n, true
}
