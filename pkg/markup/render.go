// render.go renders markup trees back to chat markup, plain text, HTML and ANSI.
package markup

import (
	"strings"

	"github.com/fatih/color"
	"github.com/yuin/goldmark/util"
)

// Format serializes nodes back to chat markup. For any string s,
// Format(Parse(s, opts)) == s.
func Format(nodes []Node) string {
	var sb strings.Builder
	formatNodes(&sb, nodes)
	return sb.String()
}

func formatNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			sb.WriteString(string(n))
		case *Italic:
			formatSpan(sb, "_", n.Content)
		case *Bold:
			formatSpan(sb, "*", n.Content)
		case *Strike:
			formatSpan(sb, "~", n.Content)
		case *Code:
			sb.WriteString("`" + n.Content + "`")
		case *Emoji:
			sb.WriteString(emojiRaw(n))
		case *Mention:
			sb.WriteString(mentionRaw(n))
		case *Link:
			sb.WriteString(n.Text)
		}
	}
}

func formatSpan(sb *strings.Builder, delim string, content []Node) {
	sb.WriteString(delim)
	formatNodes(sb, content)
	sb.WriteString(delim)
}

// emojiRaw returns the shortcode as typed, or a shortcode built from the
// name for nodes that were not produced by Parse.
func emojiRaw(n *Emoji) string {
	if n.Raw != "" {
		return n.Raw
	}
	return ":" + n.Name + ":"
}

func mentionRaw(n *Mention) string {
	if n.Raw != "" {
		return n.Raw
	}
	return "@" + n.Mention
}

// PlainText returns the text of nodes with span delimiters removed.
// Emoji render as :name: using the canonical name.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	Walk(nodes, func(n Node, _ int) bool {
		switch n := n.(type) {
		case Text:
			sb.WriteString(string(n))
		case *Code:
			sb.WriteString(n.Content)
		case *Emoji:
			sb.WriteString(":" + n.Name + ":")
		case *Mention:
			sb.WriteString(mentionRaw(n))
		case *Link:
			sb.WriteString(n.Text)
		}
		return true
	})
	return sb.String()
}

// ToHTML renders nodes as an HTML fragment. Text is escaped; no other
// sanitization is applied.
func ToHTML(nodes []Node) string {
	var sb strings.Builder
	htmlNodes(&sb, nodes)
	return sb.String()
}

func htmlNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			sb.Write(util.EscapeHTML([]byte(n)))
		case *Italic:
			htmlSpan(sb, "em", n.Content)
		case *Bold:
			htmlSpan(sb, "strong", n.Content)
		case *Strike:
			htmlSpan(sb, "s", n.Content)
		case *Code:
			sb.WriteString("<code>")
			sb.Write(util.EscapeHTML([]byte(n.Content)))
			sb.WriteString("</code>")
		case *Emoji:
			name := util.EscapeHTML([]byte(n.Name))
			sb.WriteString(`<span class="emoji" data-name="`)
			sb.Write(name)
			sb.WriteString(`">:`)
			sb.Write(name)
			sb.WriteString(`:</span>`)
		case *Mention:
			sb.WriteString(`<span class="mention" data-mention="`)
			sb.Write(util.EscapeHTML([]byte(n.Mention)))
			sb.WriteString(`">`)
			sb.Write(util.EscapeHTML([]byte(mentionRaw(n))))
			sb.WriteString(`</span>`)
		case *Link:
			sb.WriteString(`<a href="`)
			sb.Write(util.EscapeHTML(util.URLEscape([]byte(n.Href), false)))
			sb.WriteString(`">`)
			sb.Write(util.EscapeHTML([]byte(n.Text)))
			sb.WriteString(`</a>`)
		}
	}
}

func htmlSpan(sb *strings.Builder, tag string, content []Node) {
	sb.WriteString("<" + tag + ">")
	htmlNodes(sb, content)
	sb.WriteString("</" + tag + ">")
}

// ToANSI renders nodes with terminal styling. It honours color.NoColor,
// in which case the result equals PlainText(nodes).
func ToANSI(nodes []Node) string {
	var sb strings.Builder
	ansiNodes(&sb, nodes, nil)
	return sb.String()
}

func ansiNodes(sb *strings.Builder, nodes []Node, attrs []color.Attribute) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			ansiWrite(sb, attrs, string(n))
		case *Italic:
			ansiNodes(sb, n.Content, withAttr(attrs, color.Italic))
		case *Bold:
			ansiNodes(sb, n.Content, withAttr(attrs, color.Bold))
		case *Strike:
			ansiNodes(sb, n.Content, withAttr(attrs, color.CrossedOut))
		case *Code:
			ansiWrite(sb, withAttr(attrs, color.FgCyan), n.Content)
		case *Emoji:
			ansiWrite(sb, withAttr(attrs, color.FgYellow), ":"+n.Name+":")
		case *Mention:
			ansiWrite(sb, withAttr(attrs, color.FgBlue), mentionRaw(n))
		case *Link:
			ansiWrite(sb, withAttr(attrs, color.Underline), n.Text)
		}
	}
}

func ansiWrite(sb *strings.Builder, attrs []color.Attribute, s string) {
	if len(attrs) == 0 || s == "" {
		sb.WriteString(s)
		return
	}
	sb.WriteString(color.New(attrs...).Sprint(s))
}

// withAttr returns a copy of attrs with a appended.
func withAttr(attrs []color.Attribute, a color.Attribute) []color.Attribute {
	out := make([]color.Attribute, len(attrs), len(attrs)+1)
	copy(out, attrs)
	return append(out, a)
}
