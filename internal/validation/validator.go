// =============================================================================
// Warehouse Ops Labels - Validation Engine
// =============================================================================
//
// This module checks the raw text of a label request or ops log submission
// against the warehouse grammars:
//   - Item number: exactly 6 ASCII digits
//   - Location:    AREA-ROW-BIN, AREA from the configured area set
//   - Quantity:    integer >= 1
//   - Mode:        bulk | nonbulk
//   - Free text:   printable in Windows-1252 (text.go)
//
// CALL-SITE POLICIES:
//   The label path and the ops log path share these validators but differ in
//   what an empty value means. The caller states its policy explicitly
//   (required flag, fallback value); the validators never guess.
//
// ERROR HANDLING:
//   Every failure is a *ValidationError with a Kind, so callers can branch
//   with errors.Is against the package sentinels.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/ops-labels/internal/types"
)

// itemNoLength is the fixed width of a warehouse item number.
const itemNoLength = 6

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks item numbers, locations, quantities and label modes.
// A Validator is immutable after construction and safe to share.
type Validator struct {
	areas map[string]struct{}
	names []string
}

// NewValidator creates a Validator for the given allowed location areas.
// Areas are matched case-insensitively.
func NewValidator(areas []string) *Validator {
	v := &Validator{
		areas: make(map[string]struct{}, len(areas)),
		names: make([]string, 0, len(areas)),
	}
	for _, a := range areas {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if _, dup := v.areas[a]; dup {
			continue
		}
		v.areas[a] = struct{}{}
		v.names = append(v.names, a)
	}
	return v
}

// Areas returns the allowed areas in configuration order.
func (v *Validator) Areas() []string {
	return append([]string(nil), v.names...)
}

// =============================================================================
// FIELD VALIDATORS
// =============================================================================

// ItemNo validates an item number.
//
// PARAMETERS:
//   - raw: The submitted value; surrounding whitespace is ignored.
//   - required: Whether an empty value is an error (label path) or an
//     accepted absence (ops log path).
//
// RETURNS:
//   - The trimmed item number, or "" when absent and not required.
//   - MissingItemNumber or InvalidItemNumber.
func (v *Validator) ItemNo(raw string, required bool) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if required {
			return "", &ValidationError{
				Kind:    KindMissingItemNumber,
				Field:   types.ColumnItemNo,
				Value:   raw,
				Message: "item # is required",
			}
		}
		return "", nil
	}

	if len(s) != itemNoLength || !allDigits(s) {
		return "", &ValidationError{
			Kind:    KindInvalidItemNumber,
			Field:   types.ColumnItemNo,
			Value:   raw,
			Message: fmt.Sprintf("item # must be %d digits (numbers only), got %q", itemNoLength, s),
		}
	}
	return s, nil
}

// Location validates and normalizes a location code.
// Empty input is valid and returned as "". Otherwise the code is uppercased
// and must have at least AREA-ROW segments with a known AREA. The remaining
// segments are not constrained here.
func (v *Validator) Location(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", nil
	}

	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return "", &ValidationError{
			Kind:    KindMalformedLocation,
			Field:   types.ColumnLocation,
			Value:   raw,
			Message: fmt.Sprintf("location must look like AREA-ROW-BIN (e.g. A-10-1), got %q", s),
		}
	}

	if _, ok := v.areas[parts[0]]; !ok {
		return "", &ValidationError{
			Kind:    KindInvalidArea,
			Field:   types.ColumnLocation,
			Value:   raw,
			Message: fmt.Sprintf("area must be one of %s, got %q", strings.Join(v.names, ", "), parts[0]),
		}
	}
	return s, nil
}

// Quantity parses a quantity. fallback is used for empty input; a fallback
// below 1 means the value is required.
func (v *Validator) Quantity(raw string, fallback int) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" && fallback >= 1 {
		return fallback, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &ValidationError{
			Kind:    KindInvalidQuantity,
			Field:   types.ColumnQuantity,
			Value:   raw,
			Message: fmt.Sprintf("quantity must be a whole number >= 1, got %q", s),
		}
	}
	return n, nil
}

// Mode parses a label mode. fallback is used for empty input; an empty
// fallback means the value is required.
func (v *Validator) Mode(raw string, fallback types.Mode) (types.Mode, error) {
	if strings.TrimSpace(raw) == "" && fallback != "" {
		return fallback, nil
	}

	m, ok := types.ParseMode(raw)
	if !ok {
		return "", &ValidationError{
			Kind:    KindInvalidMode,
			Field:   types.ColumnMode,
			Value:   raw,
			Message: fmt.Sprintf("mode must be %s or %s, got %q", types.ModeBulk, types.ModeNonbulk, strings.TrimSpace(raw)),
		}
	}
	return m, nil
}

// allDigits reports whether s consists only of ASCII decimal digits.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
