// =============================================================================
// Warehouse Ops Labels - Record Model
// =============================================================================
//
// A LabelRecord is the normalized form of one label request: one form
// submission or one upload row. It is built and validated once, expanded
// into copies, rendered, and discarded. Nothing here is persisted.
//
// FIELD ORDER:
//   Fields are validated in a fixed order (item, quantity, location, mode)
//   and building stops at the first failure, so a record either comes out
//   fully valid or not at all.
//
// =============================================================================

package record

import (
	"strings"
	"time"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/types"
	"github.com/ginjaninja78/ops-labels/internal/validation"
)

// LabelRecord is one validated label request.
type LabelRecord struct {
	// ItemNo is the 6-digit item number.
	ItemNo string

	// Quantity is the declared quantity, always >= 1. It is printed
	// unchanged on every copy.
	Quantity int

	// Location is the uppercased AREA-ROW-BIN code, or "".
	Location string

	// DateReceived is free-form date text.
	DateReceived string

	// CheckedBy is the checker's name or the blank-fill placeholder.
	CheckedBy string

	// Mode selects bulk (one label) or nonbulk (one label per unit).
	Mode types.Mode
}

// Policy captures the defaults that differ between call sites.
type Policy struct {
	// QuantityFallback replaces an empty quantity. 0 makes quantity required.
	QuantityFallback int

	// ModeFallback replaces an empty mode. "" makes mode required.
	ModeFallback types.Mode
}

// UploadPolicy applies to bulk CSV/XLSX rows: quantity defaults to 1 and
// mode defaults to bulk.
var UploadPolicy = Policy{QuantityFallback: 1, ModeFallback: types.ModeBulk}

// FormPolicy applies to a single form submission: quantity and mode must
// both be given.
var FormPolicy = Policy{}

// =============================================================================
// BUILDER
// =============================================================================

// Builder turns raw field maps into LabelRecords.
type Builder struct {
	validator   *validation.Validator
	placeholder string
	dateLayout  string
	now         func() time.Time
}

// NewBuilder creates a Builder for the given label settings.
func NewBuilder(settings config.LabelSettings, v *validation.Validator) *Builder {
	return &Builder{
		validator:   v,
		placeholder: settings.CheckedByPlaceholder,
		dateLayout:  settings.DateLayout,
		now:         time.Now,
	}
}

// WithClock returns a copy of b that reads "today" from now.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	c := *b
	c.now = now
	return &c
}

// Build validates fields (keyed by the upload column names) into a record.
// The returned error is always a *validation.ValidationError.
func (b *Builder) Build(fields map[string]string, policy Policy) (LabelRecord, error) {
	get := func(col string) string { return fields[col] }

	itemNo, err := b.validator.ItemNo(get(types.ColumnItemNo), true)
	if err != nil {
		return LabelRecord{}, err
	}

	quantity, err := b.validator.Quantity(get(types.ColumnQuantity), policy.QuantityFallback)
	if err != nil {
		return LabelRecord{}, err
	}

	location, err := b.validator.Location(get(types.ColumnLocation))
	if err != nil {
		return LabelRecord{}, err
	}

	mode, err := b.validator.Mode(get(types.ColumnMode), policy.ModeFallback)
	if err != nil {
		return LabelRecord{}, err
	}

	rec := LabelRecord{
		ItemNo:       itemNo,
		Quantity:     quantity,
		Location:     location,
		DateReceived: b.dateReceived(get(types.ColumnDateReceived)),
		CheckedBy:    b.checkedBy(get(types.ColumnCheckedBy)),
		Mode:         mode,
	}

	// Free-text fields must survive the font encoding unchanged.
	for _, f := range []struct{ col, val string }{
		{types.ColumnLocation, rec.Location},
		{types.ColumnDateReceived, rec.DateReceived},
		{types.ColumnCheckedBy, rec.CheckedBy},
	} {
		if _, err := b.validator.Printable(f.col, f.val); err != nil {
			return LabelRecord{}, err
		}
	}
	return rec, nil
}

func (b *Builder) dateReceived(raw string) string {
	if s := trim(raw); s != "" {
		return s
	}
	return b.now().Format(b.dateLayout)
}

func (b *Builder) checkedBy(raw string) string {
	if s := trim(raw); s != "" {
		return s
	}
	return b.placeholder
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
