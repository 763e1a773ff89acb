// =============================================================================
// Warehouse Ops Labels - Label Renderer
// =============================================================================
//
// This module draws one label onto one PDF page. The layout is fixed and
// read top to bottom:
//
//   +--------------------------------+   <- border, inset by margin/2
//   | ITEM: 607529                   |   <- largest font, always first
//   | ------------------------------ |   <- divider rule
//   | QTY: 24                        |   <- second-largest font
//   | LOC: A-10-1                    |   <- third font size, always drawn
//   |                                |
//   | Date received: 2026-10-18      |   <- detail font
//   | Checked by: __________         |
//   |                                |
//   |         4x6 label • no barcode |   <- footer caption, bottom-right
//   +--------------------------------+
//
// COORDINATES:
//   Positions are computed in PDF points from the bottom-left corner (the
//   PDF convention) and converted to the top-left origin fpdf draws with.
//
// No barcode or other symbology is ever drawn.
//
// =============================================================================

package pdfwriter

import (
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/record"
)

// Core font used for every line.
const fontFamily = "Helvetica"

// Field prefixes printed on the label.
const (
	PrefixItem         = "ITEM: "
	PrefixQuantity     = "QTY: "
	PrefixLocation     = "LOC: "
	PrefixDateReceived = "Date received: "
	PrefixCheckedBy    = "Checked by: "
)

// =============================================================================
// LAYOUT
// =============================================================================

// Layout holds the resolved positions of every element on a label, in
// points from the bottom-left corner. Text positions are baselines.
type Layout struct {
	Width, Height float64

	BorderX, BorderY, BorderW, BorderH float64

	TextX float64

	ItemY         float64
	DividerY      float64
	DividerEndX   float64
	QuantityY     float64
	LocationY     float64
	DateReceivedY float64
	CheckedByY    float64

	// FooterRightX is where the footer caption ends.
	FooterRightX float64
	FooterY      float64
}

// NewLayout resolves label settings into absolute positions.
func NewLayout(s config.LabelSettings) Layout {
	top := s.Height - s.Margin
	return Layout{
		Width:         s.Width,
		Height:        s.Height,
		BorderX:       s.Margin / 2,
		BorderY:       s.Margin / 2,
		BorderW:       s.Width - s.Margin,
		BorderH:       s.Height - s.Margin,
		TextX:         s.Margin,
		ItemY:         top - s.ItemOffset,
		DividerY:      top - s.DividerOffset,
		DividerEndX:   s.Width - s.Margin,
		QuantityY:     top - s.QuantityOffset,
		LocationY:     top - s.LocationOffset,
		DateReceivedY: top - s.DateReceivedOffset,
		CheckedByY:    top - s.CheckedByOffset,
		FooterRightX:  s.Width - s.Margin,
		FooterY:       s.Margin,
	}
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer draws labels with a fixed layout. It holds no per-call state.
type Renderer struct {
	settings config.LabelSettings
	layout   Layout
}

// NewRenderer creates a Renderer for the given label settings.
func NewRenderer(settings config.LabelSettings) *Renderer {
	return &Renderer{
		settings: settings,
		layout:   NewLayout(settings),
	}
}

// Layout returns the resolved element positions.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render appends one page to pdf and draws rec onto it.
// tr converts UTF-8 text into the core font encoding.
func (r *Renderer) Render(pdf *fpdf.Fpdf, tr func(string) string, rec record.LabelRecord) {
	s := r.settings
	l := r.layout

	pdf.AddPage()

	pdf.SetLineWidth(s.BorderWidth)
	pdf.Rect(l.BorderX, r.y(l.BorderY+l.BorderH), l.BorderW, l.BorderH, "D")

	r.text(pdf, tr, "B", s.ItemFontSize, l.TextX, l.ItemY, PrefixItem+rec.ItemNo)

	pdf.SetLineWidth(s.DividerWidth)
	pdf.Line(l.TextX, r.y(l.DividerY), l.DividerEndX, r.y(l.DividerY))

	r.text(pdf, tr, "B", s.QuantityFontSize, l.TextX, l.QuantityY, PrefixQuantity+strconv.Itoa(rec.Quantity))
	r.text(pdf, tr, "B", s.LocationFontSize, l.TextX, l.LocationY, PrefixLocation+rec.Location)

	r.text(pdf, tr, "", s.DetailFontSize, l.TextX, l.DateReceivedY, PrefixDateReceived+rec.DateReceived)
	r.text(pdf, tr, "", s.DetailFontSize, l.TextX, l.CheckedByY, PrefixCheckedBy+rec.CheckedBy)

	pdf.SetFont(fontFamily, "I", s.FooterFontSize)
	footer := tr(s.Footer)
	pdf.Text(l.FooterRightX-pdf.GetStringWidth(footer), r.y(l.FooterY), footer)
}

func (r *Renderer) text(pdf *fpdf.Fpdf, tr func(string) string, style string, size, x, y float64, s string) {
	pdf.SetFont(fontFamily, style, size)
	pdf.Text(x, r.y(y), tr(s))
}

// y converts a bottom-left y coordinate to fpdf's top-left origin.
func (r *Renderer) y(bottomUp float64) float64 {
	return r.settings.Height - bottomUp
}
