// from_markdown.go converts CommonMark documents to chat markup.
package markup

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// mdParser is a goldmark instance with the GFM inline extensions that
// have a chat markup equivalent.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
)

// FromMarkdown converts CommonMark to chat markup. Emphasis becomes
// _italic_, strong emphasis *bold*, ~~strike~~ ~strike~, and links their
// URL or "label: url". Blocks are separated by newlines.
func FromMarkdown(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	doc := mdParser.Parser().Parse(text.NewReader(markdown))
	c := &mdConverter{source: markdown}
	return strings.Join(c.convertBlocks(doc), "\n"), nil
}

// mdConverter holds state during AST conversion.
type mdConverter struct {
	source []byte
}

// convertBlocks converts the block children of n into lines of chat markup.
func (c *mdConverter) convertBlocks(n ast.Node) []string {
	var lines []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		lines = append(lines, c.convertBlock(child)...)
	}
	return lines
}

func (c *mdConverter) convertBlock(n ast.Node) []string {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return nonEmpty(c.inline(node))
	case *ast.Heading:
		if s := c.inline(node); s != "" {
			return []string{"*" + s + "*"}
		}
		return nil
	case *ast.List:
		return c.convertList(node)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return c.convertCodeBlock(node)
	case *ast.Blockquote:
		lines := c.convertBlocks(node)
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return lines
	case *ast.ThematicBreak:
		return []string{"---"}
	case *ast.HTMLBlock:
		return nil
	default:
		return c.convertBlocks(n)
	}
}

func (c *mdConverter) convertList(n *ast.List) []string {
	var lines []string
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		indent := strings.Repeat(" ", len(marker))
		for i, line := range c.convertBlocks(item) {
			if i == 0 {
				lines = append(lines, marker+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}

// convertCodeBlock renders each non-blank line of a code block as a code span.
func (c *mdConverter) convertCodeBlock(n ast.Node) []string {
	var lines []string
	segments := n.Lines()
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		line := strings.TrimRight(string(seg.Value(c.source)), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, "`"+line+"`")
	}
	return lines
}

// inline converts the inline children of n to a single chat markup string.
func (c *mdConverter) inline(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.convertInline(&sb, child)
	}
	return strings.TrimSpace(sb.String())
}

func (c *mdConverter) convertInline(sb *strings.Builder, n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		sb.Write(node.Segment.Value(c.source))
		if node.SoftLineBreak() || node.HardLineBreak() {
			sb.WriteString("\n")
		}

	case *ast.String:
		sb.Write(node.Value)

	case *ast.Emphasis:
		delim := "_"
		if node.Level == 2 {
			delim = "*"
		}
		c.wrapChildren(sb, node, delim)

	case *extast.Strikethrough:
		c.wrapChildren(sb, node, "~")

	case *ast.CodeSpan:
		sb.WriteString("`")
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				sb.Write(t.Segment.Value(c.source))
			case *ast.String:
				sb.Write(t.Value)
			}
		}
		sb.WriteString("`")

	case *ast.Link:
		c.writeLink(sb, node, string(node.Destination))

	case *ast.Image:
		c.writeLink(sb, node, string(node.Destination))

	case *ast.AutoLink:
		sb.Write(node.Label(c.source))

	case *ast.RawHTML:
		// Dropped: chat markup has no HTML.

	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			c.convertInline(sb, child)
		}
	}
}

func (c *mdConverter) wrapChildren(sb *strings.Builder, n ast.Node, delim string) {
	sb.WriteString(delim)
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.convertInline(sb, child)
	}
	sb.WriteString(delim)
}

// writeLink writes a link as its bare URL when the label is the URL
// itself, and as "label: url" otherwise, which the tokenizer
// still recognizes as a link.
func (c *mdConverter) writeLink(sb *strings.Builder, n ast.Node, dest string) {
	var label strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.convertInline(&label, child)
	}
	switch l := label.String(); {
	case l == "" || l == dest:
		sb.WriteString(dest)
	case dest == "":
		sb.WriteString(l)
	default:
		sb.WriteString(l + ": " + dest)
	}
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
