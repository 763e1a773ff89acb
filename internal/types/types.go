// =============================================================================
// Warehouse Ops Labels - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - validation
//   - record
//   - csvparser / xlsxparser
//   - converter
//
// =============================================================================

package types

import "strings"

// =============================================================================
// LABEL MODE
// =============================================================================

// Mode selects how many physical labels a record produces.
type Mode string

const (
	// ModeBulk prints one label for the whole pallet or lot.
	ModeBulk Mode = "bulk"

	// ModeNonbulk prints one label per unit of quantity.
	ModeNonbulk Mode = "nonbulk"
)

// ParseMode matches s case-insensitively against the known modes.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBulk:
		return ModeBulk, true
	case ModeNonbulk:
		return ModeNonbulk, true
	}
	return "", false
}

// =============================================================================
// INPUT ROWS
// =============================================================================

// Row is one data row from a tabular upload (CSV or XLSX).
type Row struct {
	// Index is the 1-based position of the row among data rows.
	// The header is not counted.
	Index int

	// Line is the physical line (CSV) or sheet row (XLSX) the row starts on.
	// The header sits on line 1, so the first data row is usually line 2.
	Line int

	// Fields maps normalized column names to trimmed cell values.
	// Columns absent from the header are absent from the map.
	Fields map[string]string
}

// Get returns the trimmed value for a column, or "" when it is missing.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// Column names recognized in label uploads.
const (
	ColumnItemNo       = "item_no"
	ColumnQuantity     = "quantity"
	ColumnLocation     = "location"
	ColumnDateReceived = "date_received"
	ColumnCheckedBy    = "checked_by"
	ColumnMode         = "mode"
)

// LabelColumns lists the recognized columns in their documented order.
var LabelColumns = []string{
	ColumnItemNo,
	ColumnQuantity,
	ColumnLocation,
	ColumnDateReceived,
	ColumnCheckedBy,
	ColumnMode,
}
