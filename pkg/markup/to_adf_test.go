package markup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseADF(t *testing.T, nodes []Node) ADFDocument {
	t.Helper()
	result, err := ToADF(nodes)
	require.NoError(t, err)

	var doc ADFDocument
	require.NoError(t, json.Unmarshal([]byte(result), &doc))
	return doc
}

func TestToADF_Empty(t *testing.T) {
	result, err := ToADF(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","version":1,"content":[]}`, result)
}

func TestToADF_Marks(t *testing.T) {
	doc := parseADF(t, Parse("plain *bold _both_* ~gone~", nil))
	require.Len(t, doc.Content, 1)
	para := doc.Content[0]
	assert.Equal(t, "paragraph", para.Type)

	require.Len(t, para.Content, 5)
	assert.Equal(t, "plain ", para.Content[0].Text)
	assert.Empty(t, para.Content[0].Marks)

	assert.Equal(t, "bold ", para.Content[1].Text)
	require.Len(t, para.Content[1].Marks, 1)
	assert.Equal(t, "strong", para.Content[1].Marks[0].Type)

	assert.Equal(t, "both", para.Content[2].Text)
	require.Len(t, para.Content[2].Marks, 2)
	assert.Equal(t, "strong", para.Content[2].Marks[0].Type)
	assert.Equal(t, "em", para.Content[2].Marks[1].Type)

	assert.Equal(t, " ", para.Content[3].Text)

	assert.Equal(t, "gone", para.Content[4].Text)
	require.Len(t, para.Content[4].Marks, 1)
	assert.Equal(t, "strike", para.Content[4].Marks[0].Type)
}

func TestToADF_CodeDropsOtherMarks(t *testing.T) {
	doc := parseADF(t, Parse("*`x`*", nil))
	require.Len(t, doc.Content, 1)
	require.Len(t, doc.Content[0].Content, 1)

	node := doc.Content[0].Content[0]
	assert.Equal(t, "x", node.Text)
	require.Len(t, node.Marks, 1)
	assert.Equal(t, "code", node.Marks[0].Type)
}

func TestToADF_InlineNodes(t *testing.T) {
	nodes := Parse("hi :wave: @Bob\nwww.x.io", &Options{Mentions: []string{"bob"}})
	doc := parseADF(t, nodes)
	require.Len(t, doc.Content, 1)
	content := doc.Content[0].Content

	var types []string
	for _, n := range content {
		types = append(types, n.Type)
	}
	assert.Equal(t, []string{"text", "emoji", "text", "mention", "hardBreak", "text"}, types)

	assert.Equal(t, ":wave:", content[1].Attrs["shortName"])
	assert.Equal(t, "bob", content[3].Attrs["id"])
	assert.Equal(t, "@Bob", content[3].Attrs["text"])

	link := content[5]
	assert.Equal(t, "www.x.io", link.Text)
	require.Len(t, link.Marks, 1)
	assert.Equal(t, "link", link.Marks[0].Type)
	assert.Equal(t, "http://www.x.io", link.Marks[0].Attrs["href"])
}
