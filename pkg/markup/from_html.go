package markup

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
)

// htmlConverter turns HTML into CommonMark with ~~strikethrough~~.
var htmlConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		strikethrough.NewStrikethroughPlugin(),
	),
)

// FromHTML converts an HTML fragment to chat markup by way of CommonMark.
func FromHTML(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := htmlConverter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML: %w", err)
	}

	return FromMarkdown([]byte(strings.TrimSpace(markdown)))
}
