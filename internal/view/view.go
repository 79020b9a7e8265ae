// Package view provides output formatting for chatmd commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/open-cli-collective/chatmd/pkg/markup"
)

// Format represents an output format.
type Format string

const (
	FormatTree  Format = "tree"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []string {
	return []string{string(FormatTree), string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an output format name. The empty string selects
// the command's default.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders data in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// RenderTable renders data as a table.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	if r.format == FormatJSON {
		r.renderTableAsJSON(headers, rows)
		return
	}

	if r.format == FormatPlain {
		r.renderTableAsPlain(rows)
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	bold := color.New(color.Bold)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(r.writer, "  ")
		}
		_, _ = bold.Fprint(r.writer, pad(h, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(r.writer)

	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			last := i == len(row)-1 || i >= len(widths)-1
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			fmt.Fprint(r.writer, pad(val, w, last))
		}
		fmt.Fprintln(r.writer)
	}
}

func pad(s string, width int, last bool) string {
	if last || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as indented JSON.
func (r *Renderer) RenderJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{key: value})
		fmt.Fprintln(r.writer, string(data))
		return
	}
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// RenderNodes renders a markup tree in the renderer's format: an
// indented outline for tree and table, the JSON wire form for json, and
// the text without markup for plain.
func (r *Renderer) RenderNodes(nodes []markup.Node) error {
	switch r.format {
	case FormatJSON:
		return r.RenderJSON(nodes)
	case FormatPlain:
		r.RenderText(markup.PlainText(nodes))
		return nil
	default:
		r.renderTree(nodes)
		return nil
	}
}

func (r *Renderer) renderTree(nodes []markup.Node) {
	kind := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	markup.Walk(nodes, func(n markup.Node, depth int) bool {
		fmt.Fprint(r.writer, strings.Repeat("  ", depth))
		switch n := n.(type) {
		case markup.Text:
			fmt.Fprintln(r.writer, strconv.Quote(string(n)))
		case *markup.Italic:
			_, _ = kind.Fprintln(r.writer, "italic")
		case *markup.Bold:
			_, _ = kind.Fprintln(r.writer, "bold")
		case *markup.Strike:
			_, _ = kind.Fprintln(r.writer, "strike")
		case *markup.Code:
			_, _ = kind.Fprint(r.writer, "code ")
			fmt.Fprintln(r.writer, strconv.Quote(n.Content))
		case *markup.Emoji:
			_, _ = kind.Fprint(r.writer, "emoji ")
			fmt.Fprintln(r.writer, n.Name)
		case *markup.Mention:
			_, _ = kind.Fprint(r.writer, "mention ")
			fmt.Fprint(r.writer, n.Raw)
			_, _ = dim.Fprintf(r.writer, " (%s)\n", n.Mention)
		case *markup.Link:
			_, _ = kind.Fprint(r.writer, "link ")
			fmt.Fprint(r.writer, n.Text)
			_, _ = dim.Fprintf(r.writer, " -> %s\n", n.Href)
		}
		return true
	})
}

// RenderTokens renders a token stream as a TYPE/TEXT/RAW table.
func (r *Renderer) RenderTokens(tokens []markup.Token) {
	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, []string{
			tok.Type.String(),
			Truncate(strconv.Quote(tok.Text), 40),
			Truncate(strconv.Quote(tok.Raw), 40),
		})
	}
	r.RenderTable([]string{"TYPE", "TEXT", "RAW"}, rows)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}

// Truncate shortens s to at most maxLen runes, ending in "..." when
// there is room for it.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
