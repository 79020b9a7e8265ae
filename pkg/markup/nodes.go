// nodes.go defines the markup tree produced by Parse and its JSON form.
package markup

import "encoding/json"

// Node is an element of a parsed markup tree. The set of node types is
// closed: Text, *Italic, *Bold, *Strike, *Code, *Emoji, *Mention and *Link.
type Node interface {
	markupNode()
}

// Text is a run of literal text.
type Text string

// Italic is an _italic_ span.
type Italic struct {
	Content []Node
}

// Bold is a *bold* span.
type Bold struct {
	Content []Node
}

// Strike is a ~strikethrough~ span.
type Strike struct {
	Content []Node
}

// Code is a `code` span. Its content is never parsed for markup.
type Code struct {
	Content string
}

// Emoji is a :shortcode: emoji reference.
type Emoji struct {
	Name string // canonical name, in the configured casing when a whitelist applies
	Raw  string // shortcode as typed, including colons
}

// Mention is an @name reference to a mentionable user or group.
type Mention struct {
	Mention string // lower-cased match key
	Raw     string // text as typed, including the @
}

// Link is a URL found in the text.
type Link struct {
	Text string // matched text
	Href string // Text with a scheme added when it had none
}

func (Text) markupNode()     {}
func (*Italic) markupNode()  {}
func (*Bold) markupNode()    {}
func (*Strike) markupNode()  {}
func (*Code) markupNode()    {}
func (*Emoji) markupNode()   {}
func (*Mention) markupNode() {}
func (*Link) markupNode()    {}

// Children returns the child nodes of a span node, or nil for leaves.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Italic:
		return n.Content
	case *Bold:
		return n.Content
	case *Strike:
		return n.Content
	}
	return nil
}

// Walk visits nodes depth-first in document order. If fn returns false
// for a node, its children are skipped.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(Children(n), depth+1, fn)
		}
	}
}

// spanJSON is the wire form shared by italic, bold and strike.
type spanJSON struct {
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

func nonNil(nodes []Node) []Node {
	if nodes == nil {
		return []Node{}
	}
	return nodes
}

func (n *Italic) MarshalJSON() ([]byte, error) {
	return json.Marshal(spanJSON{Type: "italic", Content: nonNil(n.Content)})
}

func (n *Bold) MarshalJSON() ([]byte, error) {
	return json.Marshal(spanJSON{Type: "bold", Content: nonNil(n.Content)})
}

func (n *Strike) MarshalJSON() ([]byte, error) {
	return json.Marshal(spanJSON{Type: "strike", Content: nonNil(n.Content)})
}

func (n *Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Content []string `json:"content"`
	}{Type: "code", Content: []string{n.Content}})
}

func (n *Emoji) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{Type: "emoji", Name: n.Name})
}

func (n *Mention) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Mention string `json:"mention"`
		Raw     string `json:"raw"`
	}{Type: "mention", Mention: n.Mention, Raw: n.Raw})
}

func (n *Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
		Href string `json:"href"`
	}{Type: "link", Text: n.Text, Href: n.Href})
}
