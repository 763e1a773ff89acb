// =============================================================================
// Warehouse Ops Labels - CSV Parser Module
// =============================================================================
//
// This module reads bulk label uploads. The first record is the header; every
// later record is a data row keyed by column name:
//
//   item_no,quantity,location,date_received,checked_by,mode
//   607529,24,A-10-1,,,bulk
//
// FEATURES:
//   - Columns are matched by name, in any order; unknown columns are ignored
//   - Header names are normalized (case, surrounding space, inner spaces)
//   - A UTF-8 byte order mark before the header is tolerated
//   - Configurable delimiter (comma, pipe, tab, semicolon)
//   - Completely blank rows are skipped
//   - Streaming: one row in memory at a time
//
// Each row carries its 1-based data-row index and the physical line it
// started on, so a failure can be reported either way.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/types"
)

// ErrNoHeader is returned when the input holds no header record.
var ErrNoHeader = errors.New("CSV has no header row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser yields data rows one at a time.
//
// USAGE:
//
//	parser, err := csvparser.NewStreamingParser(r, settings)
//	if err != nil {
//	    return err
//	}
//	for parser.Next() {
//	    row := parser.Row()
//	    // ...
//	}
//	if err := parser.Err(); err != nil {
//	    return err
//	}
type StreamingParser struct {
	reader  *csv.Reader
	headers []string
	current types.Row
	index   int
	err     error
}

// NewStreamingParser reads the header from r and prepares to stream rows.
//
// PARAMETERS:
//   - r: The CSV input. It is not closed.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The parser positioned before the first data row.
//   - ErrNoHeader when r is empty, or a wrapped read error.
func NewStreamingParser(r io.Reader, settings config.CSVSettings) (*StreamingParser, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	reader := csv.NewReader(br)
	configureReader(reader, settings)

	p := &StreamingParser{reader: reader}
	if err := p.readHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
	}
	return err
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Short rows are allowed: missing trailing columns read as empty.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

func (p *StreamingParser) readHeader() error {
	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return ErrNoHeader
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV header: %w", err)
		}
		if isRowEmpty(record) {
			continue
		}
		p.headers = NormalizeHeaders(record)
		return nil
	}
}

// NormalizeHeaders maps raw header cells to column names: trimmed,
// lowercased, with inner runs of spaces or hyphens collapsed to "_".
func NormalizeHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = normalizeHeader(h)
	}
	return cleaned
}

func normalizeHeader(h string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(h)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// Next advances to the next non-blank data row. It returns false at the end
// of input or on a read error; check Err afterwards.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			p.err = fmt.Errorf("failed to read CSV row %d: %w", p.index+1, err)
			return false
		}
		if isRowEmpty(record) {
			continue
		}

		line, _ := p.reader.FieldPos(0)
		p.index++
		p.current = types.Row{
			Index:  p.index,
			Line:   line,
			Fields: ZipRow(p.headers, record),
		}
		return true
	}
}

// ZipRow pairs header names with trimmed cell values. Blank header cells are
// dropped; the first occurrence of a repeated name wins.
func ZipRow(headers, record []string) map[string]string {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if _, dup := fields[h]; dup {
			continue
		}
		if i < len(record) {
			fields[h] = strings.TrimSpace(record[i])
		} else {
			fields[h] = ""
		}
	}
	return fields
}

// Row returns the current row.
func (p *StreamingParser) Row() types.Row {
	return p.current
}

// Headers returns the normalized header names.
func (p *StreamingParser) Headers() []string {
	return p.headers
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
