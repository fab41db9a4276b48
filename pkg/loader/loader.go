// Package loader reads CSV input into header and row text for the viewer.
package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls how CSV records are parsed.
type Options struct {
	Delimiter        rune // Field delimiter (default ',')
	Comment          rune // Lines starting with this rune are skipped (0 = disabled)
	LazyQuotes       bool
	TrimLeadingSpace bool
}

// DefaultOptions returns comma separated parsing with strict quoting.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Data is a fully materialized CSV table. Rows are passed through as parsed;
// their lengths are not reconciled with the header.
type Data struct {
	Headers []string
	Rows    [][]string
}

// LoadFile reads a CSV file. A path of "-" reads standard input.
func LoadFile(path string, opts Options) (*Data, error) {
	if path == "-" {
		return LoadReader(os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := LoadReader(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads every record from r. The first record is the header.
// Empty input yields an empty table rather than an error.
func LoadReader(r io.Reader, opts Options) (*Data, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = opts.LazyQuotes
	reader.TrimLeadingSpace = opts.TrimLeadingSpace
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return &Data{Headers: []string{}, Rows: [][]string{}}, nil
	}
	return &Data{Headers: records[0], Rows: records[1:]}, nil
}

// ParseDelimiter converts a flag or config value into a delimiter rune.
// Accepts a single character or one of the names "tab", "comma", "semicolon", "pipe".
func ParseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "", "comma":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: expected a single character", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if !validDelim(r) {
		return 0, fmt.Errorf("invalid delimiter %q", value)
	}
	return r, nil
}

// ParseComment converts a comment flag value into a rune; empty disables comments.
func ParseComment(value string) (rune, error) {
	if value == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("invalid comment character %q: expected a single character", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if !validDelim(r) {
		return 0, fmt.Errorf("invalid comment character %q", value)
	}
	return r, nil
}

// ErrEmptyHeader is returned by Validate when the input has no header row.
var ErrEmptyHeader = errors.New("CSV input has no header row")

// Validate reports inputs the viewer cannot display.
func (d *Data) Validate() error {
	if len(d.Headers) == 0 {
		return ErrEmptyHeader
	}
	return nil
}

// validDelim mirrors the checks encoding/csv applies to Comma and Comment.
func validDelim(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
