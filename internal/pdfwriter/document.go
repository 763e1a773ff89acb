package pdfwriter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/record"
	"github.com/ginjaninja78/ops-labels/internal/validation"
)

// ErrEmptyDocument is returned by Bytes when no label was added.
var ErrEmptyDocument = errors.New("document has no labels")

// ErrDocumentClosed is returned when a finished document is used again.
var ErrDocumentClosed = errors.New("document already finished")

// ErrUnencodableText is returned when a label holds characters outside the
// core font encoding (Windows-1252).
var ErrUnencodableText = errors.New("text cannot be encoded for the label font")

// =============================================================================
// DOCUMENT OPTIONS
// =============================================================================

// DocumentOptions contains options for PDF generation.
type DocumentOptions struct {
	// Compress deflates page content streams.
	// Default: true
	Compress bool

	// Title is written into the document information dictionary.
	// Default: "Warehouse labels"
	Title string

	// CreationDate pins the document timestamp. Zero means now.
	CreationDate time.Time
}

// DefaultDocumentOptions returns the default generation options.
func DefaultDocumentOptions() DocumentOptions {
	return DocumentOptions{
		Compress: true,
		Title:    "Warehouse labels",
	}
}

// =============================================================================
// DOCUMENT ASSEMBLER
// =============================================================================

// Document accumulates one page per label, in call order, into a single PDF.
// The finished bytes are only available through Bytes, after the caller has
// added every label it needs.
type Document struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	renderer *Renderer
	pages    int
	done     bool
}

// NewDocument creates an empty document sized to the label.
func NewDocument(settings config.LabelSettings, opts DocumentOptions) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: settings.Width, Ht: settings.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opts.Compress)
	pdf.SetCreator("opslabels", true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
	}

	return &Document{
		pdf:      pdf,
		tr:       translate,
		renderer: NewRenderer(settings),
	}
}

// AddLabel renders rec as the next page.
func (d *Document) AddLabel(rec record.LabelRecord) error {
	if d.done {
		return ErrDocumentClosed
	}
	for _, text := range []string{rec.ItemNo, rec.Location, rec.DateReceived, rec.CheckedBy} {
		if _, err := validation.EncodeLabelText(text); err != nil {
			return fmt.Errorf("%w: %q", ErrUnencodableText, text)
		}
	}
	d.renderer.Render(d.pdf, d.tr, rec)
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render label %d: %w", d.pages+1, err)
	}
	d.pages++
	return nil
}

// AddRecord expands rec and renders every copy. It returns the number of
// pages added.
func (d *Document) AddRecord(rec record.LabelRecord) (int, error) {
	copies, rec := record.Expand(rec)
	for i := 0; i < copies; i++ {
		if err := d.AddLabel(rec); err != nil {
			return i, err
		}
	}
	return copies, nil
}

// PageCount returns the number of labels added so far.
func (d *Document) PageCount() int {
	return d.pages
}

// Layout returns the positions used for every page.
func (d *Document) Layout() Layout {
	return d.renderer.Layout()
}

// Bytes finishes the document and returns the encoded PDF.
// The document cannot be extended afterwards.
func (d *Document) Bytes() ([]byte, error) {
	if d.done {
		return nil, ErrDocumentClosed
	}
	if d.pages == 0 {
		return nil, ErrEmptyDocument
	}
	d.done = true

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// translate encodes s for the core fonts. AddLabel has already checked the
// record fields, and the footer is checked when the configuration loads.
func translate(s string) string {
	out, err := validation.EncodeLabelText(s)
	if err != nil {
		return s
	}
	return out
}
