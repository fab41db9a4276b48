// Package formatter writes the visible columns of a table in the output
// formats supported by the print mode.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/csvx/internal/table"
)

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
)

// Formats lists every supported format in flag help order.
var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name. "md" and "yml" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatTable, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case FormatTable, FormatCSV, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output %q (expected one of %v)", name, Formats)
}

// Document is the structured form of the visible columns. Rows keep their
// own length; ragged rows are not padded.
type Document struct {
	Headers []string   `json:"headers" yaml:"headers" toml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows" toml:"rows"`
}

// Write renders the visible columns of tbl to w. width limits the line width
// of the table format only; 0 means unlimited.
func Write(w io.Writer, tbl *table.Table, f Format, width int) error {
	if f == FormatTable {
		for _, line := range tbl.Render(width) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	headers, rows := tbl.Project()
	doc := Document{Headers: headers, Rows: rows}
	switch f {
	case FormatCSV:
		return writeCSV(w, doc)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(doc))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(doc))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("unsupported output %q", f)
}

func writeCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(doc.Rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Markdown renders doc as a GitHub-flavored markdown table. Short rows are
// padded with empty cells; extra cells are dropped. No columns renders "".
func Markdown(doc Document) string {
	n := len(doc.Headers)
	if n == 0 {
		return ""
	}
	var b strings.Builder
	writeMarkdownRow(&b, doc.Headers, n)
	b.WriteString("|")
	b.WriteString(strings.Repeat(" --- |", n))
	b.WriteString("\n")
	for _, row := range doc.Rows {
		writeMarkdownRow(&b, row, n)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string, n int) {
	b.WriteString("|")
	for i := range n {
		v := ""
		if i < len(cells) {
			v = escapeMarkdownCell(cells[i])
		}
		b.WriteString(" ")
		b.WriteString(v)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

var markdownCellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func escapeMarkdownCell(s string) string {
	return markdownCellReplacer.Replace(s)
}

// HTML renders doc as an HTML table fragment via its markdown form.
func HTML(doc Document) []byte {
	md := Markdown(doc)
	if md == "" {
		return nil
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(p.Parse([]byte(md)), renderer)
}
