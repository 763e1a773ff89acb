package pdfwriter

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/ops-labels/internal/validation"
)

// TextRun is one positioned string drawn on a page, in points from the
// bottom-left corner. Text is decoded back to UTF-8.
type TextRun struct {
	X, Y float64
	Text string
}

// Page is the text content of one page, in drawing order.
type Page struct {
	Runs []TextRun
}

// LabelFields is the printed content of one label, read back by position.
type LabelFields struct {
	ItemNo       string
	Quantity     string
	Location     string
	DateReceived string
	CheckedBy    string
}

var (
	streamHeader = regexp.MustCompile(`<<([^<>]*?)/Length (\d+)\s*>>\s*stream\r?\n`)
	textOp       = regexp.MustCompile(`BT (-?[0-9.]+) (-?[0-9.]+) Td \(((?:[^\\)]|\\.)*)\) Tj ET`)
	pdfUnescape  = strings.NewReplacer(`\\`, `\`, `\(`, `(`, `\)`, `)`, `\r`, "\r")
)

// ReadPages extracts the positioned text of every page in a document
// written by Document. Streams without text operators are skipped.
func ReadPages(data []byte) ([]Page, error) {
	var pages []Page

	for _, loc := range streamHeader.FindAllSubmatchIndex(data, -1) {
		dict := string(data[loc[2]:loc[3]])
		n, err := strconv.Atoi(string(data[loc[4]:loc[5]]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse stream length: %w", err)
		}
		start := loc[1]
		if start+n > len(data) {
			return nil, fmt.Errorf("stream at offset %d overruns document", start)
		}

		content := data[start : start+n]
		if strings.Contains(dict, "/FlateDecode") {
			content, err = inflate(content)
			if err != nil {
				return nil, fmt.Errorf("failed to inflate stream at offset %d: %w", start, err)
			}
		}

		page, ok := parseContent(content)
		if ok {
			pages = append(pages, page)
		}
	}

	return pages, nil
}

func inflate(b []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func parseContent(content []byte) (Page, bool) {
	matches := textOp.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return Page{}, false
	}

	page := Page{Runs: make([]TextRun, 0, len(matches))}
	for _, m := range matches {
		x, errX := strconv.ParseFloat(string(m[1]), 64)
		y, errY := strconv.ParseFloat(string(m[2]), 64)
		if errX != nil || errY != nil {
			continue
		}
		raw := pdfUnescape.Replace(string(m[3]))
		text, err := validation.DecodeLabelText(raw)
		if err != nil {
			text = raw
		}
		page.Runs = append(page.Runs, TextRun{X: x, Y: y, Text: text})
	}
	return page, true
}

// RunAt returns the text drawn at (x, y), within half a point.
func (p Page) RunAt(x, y float64) (string, bool) {
	for _, r := range p.Runs {
		if math.Abs(r.X-x) < 0.5 && math.Abs(r.Y-y) < 0.5 {
			return r.Text, true
		}
	}
	return "", false
}

// Read recovers the label fields from their fixed positions on p.
func (l Layout) Read(p Page) (LabelFields, error) {
	var f LabelFields
	slots := []struct {
		y      float64
		prefix string
		dst    *string
	}{
		{l.ItemY, PrefixItem, &f.ItemNo},
		{l.QuantityY, PrefixQuantity, &f.Quantity},
		{l.LocationY, PrefixLocation, &f.Location},
		{l.DateReceivedY, PrefixDateReceived, &f.DateReceived},
		{l.CheckedByY, PrefixCheckedBy, &f.CheckedBy},
	}

	for _, s := range slots {
		text, ok := p.RunAt(l.TextX, s.y)
		if !ok {
			return LabelFields{}, fmt.Errorf("no text at (%.2f, %.2f)", l.TextX, s.y)
		}
		value, ok := strings.CutPrefix(text, s.prefix)
		if !ok {
			return LabelFields{}, fmt.Errorf("text %q at y=%.2f lacks prefix %q", text, s.y, s.prefix)
		}
		*s.dst = value
	}
	return f, nil
}
