package markup

import (
	"encoding/json"
	"strings"
)

// ADFDocument represents an Atlassian Document Format document.
type ADFDocument struct {
	Type    string     `json:"type"`
	Version int        `json:"version"`
	Content []*ADFNode `json:"content"`
}

// ADFNode represents a node in an ADF document.
type ADFNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*ADFNode     `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []*ADFMark     `json:"marks,omitempty"`
}

// ADFMark represents a text mark (formatting) in ADF.
type ADFMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// ToADF converts a markup tree to a JSON-encoded ADF document holding a
// single paragraph. Newlines become hard breaks.
func ToADF(nodes []Node) (string, error) {
	doc := BuildADF(nodes)
	result, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// BuildADF converts a markup tree to an ADF document.
func BuildADF(nodes []Node) *ADFDocument {
	doc := &ADFDocument{
		Type:    "doc",
		Version: 1,
		Content: []*ADFNode{},
	}
	var c adfConverter
	content := c.convertNodes(nodes, nil)
	if len(content) > 0 {
		doc.Content = append(doc.Content, &ADFNode{Type: "paragraph", Content: content})
	}
	return doc
}

// adfConverter holds state during tree conversion.
type adfConverter struct{}

func (c *adfConverter) convertNodes(nodes []Node, marks []*ADFMark) []*ADFNode {
	var out []*ADFNode
	for _, n := range nodes {
		out = append(out, c.convertNode(n, marks)...)
	}
	return out
}

func (c *adfConverter) convertNode(n Node, marks []*ADFMark) []*ADFNode {
	switch node := n.(type) {
	case Text:
		return c.textNodes(string(node), marks)

	case *Italic:
		return c.convertNodes(node.Content, append(copyMarks(marks), &ADFMark{Type: "em"}))

	case *Bold:
		return c.convertNodes(node.Content, append(copyMarks(marks), &ADFMark{Type: "strong"}))

	case *Strike:
		return c.convertNodes(node.Content, append(copyMarks(marks), &ADFMark{Type: "strike"}))

	case *Code:
		// ADF only allows the code mark alongside a link mark.
		var codeMarks []*ADFMark
		for _, m := range marks {
			if m.Type == "link" {
				codeMarks = append(codeMarks, m)
			}
		}
		return c.textNodes(node.Content, append(codeMarks, &ADFMark{Type: "code"}))

	case *Emoji:
		return []*ADFNode{{
			Type:  "emoji",
			Attrs: map[string]any{"shortName": ":" + node.Name + ":"},
		}}

	case *Mention:
		return []*ADFNode{{
			Type:  "mention",
			Attrs: map[string]any{"id": node.Mention, "text": mentionRaw(node)},
		}}

	case *Link:
		linkMark := &ADFMark{
			Type:  "link",
			Attrs: map[string]any{"href": node.Href},
		}
		return c.textNodes(node.Text, append(copyMarks(marks), linkMark))

	default:
		return nil
	}
}

// textNodes splits s on newlines into text nodes separated by hard breaks.
func (c *adfConverter) textNodes(s string, marks []*ADFMark) []*ADFNode {
	var out []*ADFNode
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out = append(out, &ADFNode{Type: "hardBreak"})
		}
		if line == "" {
			continue
		}
		node := &ADFNode{Type: "text", Text: line}
		if len(marks) > 0 {
			node.Marks = marks
		}
		out = append(out, node)
	}
	return out
}

// copyMarks creates a copy of the marks slice.
func copyMarks(marks []*ADFMark) []*ADFMark {
	if marks == nil {
		return nil
	}
	result := make([]*ADFMark, len(marks))
	copy(result, marks)
	return result
}
