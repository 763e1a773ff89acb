package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/types"
)

func newTestValidator() *Validator {
	return NewValidator(config.DefaultAreas())
}

func TestItemNoAcceptsSixDigits(t *testing.T) {
	v := newTestValidator()
	for _, s := range []string{"000000", "607529", "123456", "999999"} {
		got, err := v.ItemNo(s, true)
		require.NoError(t, err, s)
		assert.Equal(t, s, got)
	}

	got, err := v.ItemNo("  607529\t", true)
	require.NoError(t, err)
	assert.Equal(t, "607529", got)
}

func TestItemNoRejectsWrongLengthOrNonDigit(t *testing.T) {
	v := newTestValidator()
	bad := []string{
		"1", "12345", "1234567", "12345a", "a23456", "12 456", "-12345",
		"+12345", "1.2345", "١٢٣٤٥٦", "１２３４５６",
	}
	for _, s := range bad {
		_, err := v.ItemNo(s, true)
		assert.ErrorIs(t, err, ErrInvalidItemNumber, s)
		_, err = v.ItemNo(s, false)
		assert.ErrorIs(t, err, ErrInvalidItemNumber, s)
	}
}

func TestItemNoEmptyPolicy(t *testing.T) {
	v := newTestValidator()

	_, err := v.ItemNo("   ", true)
	assert.ErrorIs(t, err, ErrMissingItemNumber)

	got, err := v.ItemNo("   ", false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocationAcceptsEveryAllowedArea(t *testing.T) {
	v := newTestValidator()
	for _, area := range config.DefaultAreas() {
		for _, rowBin := range [][2]int{{1, 1}, {10, 1}, {99, 42}, {123, 7}} {
			in := fmt.Sprintf("%s-%d-%d", area, rowBin[0], rowBin[1])
			for _, variant := range []string{in, strings.ToLower(in)} {
				got, err := v.Location(variant)
				require.NoError(t, err, variant)
				assert.Equal(t, in, got)
			}
		}
	}
}

func TestLocationRejectsUnknownArea(t *testing.T) {
	v := newTestValidator()
	for _, in := range []string{"M-1-1", "Z-10-1", "XB-1-1", "AA-1-1", "m-1-1", "1-1-1"} {
		_, err := v.Location(in)
		assert.ErrorIs(t, err, ErrInvalidArea, in)
	}
}

func TestLocationMalformed(t *testing.T) {
	v := newTestValidator()
	for _, in := range []string{"A", "A10", "XA"} {
		_, err := v.Location(in)
		assert.ErrorIs(t, err, ErrMalformedLocation, in)
	}
}

func TestLocationEmptyIsValid(t *testing.T) {
	v := newTestValidator()
	got, err := v.Location("  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocationNormalizes(t *testing.T) {
	v := newTestValidator()
	got, err := v.Location(" a-10-1 ")
	require.NoError(t, err)
	assert.Equal(t, "A-10-1", got)
}

func TestLocationAlternateAreas(t *testing.T) {
	v := NewValidator([]string{"dock", " Y ", "Y"})
	assert.Equal(t, []string{"DOCK", "Y"}, v.Areas())

	_, err := v.Location("dock-1-2")
	assert.NoError(t, err)
	_, err = v.Location("A-1-2")
	assert.ErrorIs(t, err, ErrInvalidArea)
}

func TestQuantity(t *testing.T) {
	v := newTestValidator()

	n, err := v.Quantity("24", 0)
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	n, err = v.Quantity(" 3 ", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, s := range []string{"0", "-1", "abc", "1.5", "", "  "} {
		_, err := v.Quantity(s, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity, s)
	}

	n, err = v.Quantity("", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = v.Quantity("0", 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity, "fallback applies only to empty input")
}

func TestMode(t *testing.T) {
	v := newTestValidator()

	m, err := v.Mode("BULK", "")
	require.NoError(t, err)
	assert.Equal(t, types.ModeBulk, m)

	m, err = v.Mode(" NonBulk ", "")
	require.NoError(t, err)
	assert.Equal(t, types.ModeNonbulk, m)

	m, err = v.Mode("", types.ModeBulk)
	require.NoError(t, err)
	assert.Equal(t, types.ModeBulk, m)

	_, err = v.Mode("", "")
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = v.Mode("pallet", types.ModeBulk)
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestRowValidationErrorUnwraps(t *testing.T) {
	v := newTestValidator()
	_, fieldErr := v.Location("M-1-1")
	require.Error(t, fieldErr)

	var ve *ValidationError
	require.True(t, errors.As(fieldErr, &ve))

	err := error(&RowValidationError{Row: 3, Line: 4, Err: ve})
	assert.ErrorIs(t, err, ErrInvalidArea)
	assert.NotErrorIs(t, err, ErrInvalidMode)
	assert.Contains(t, err.Error(), "row 3 (line 4)")

	var rowErr *RowValidationError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, KindInvalidArea, rowErr.Kind())
}

func TestPrintable(t *testing.T) {
	v := newTestValidator()

	for _, ok := range []string{"", "Ana", "José", "Zoë Ångström", "€5 • ok"} {
		got, err := v.Printable("checked_by", ok)
		require.NoError(t, err, ok)
		assert.Equal(t, ok, got)
	}

	for _, bad := range []string{"Łukasz", "张三", "emoji 📦"} {
		_, err := v.Printable("checked_by", bad)
		require.ErrorIs(t, err, ErrUnprintableText, bad)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "checked_by", ve.Field)
		assert.Equal(t, bad, ve.Value)
	}
}

func TestLabelTextEncodingRoundTrip(t *testing.T) {
	for _, s := range []string{"José", "Müller", "4x6 label • no barcode"} {
		enc, err := EncodeLabelText(s)
		require.NoError(t, err)
		dec, err := DecodeLabelText(enc)
		require.NoError(t, err)
		assert.Equal(t, s, dec)
	}

	enc, err := EncodeLabelText("José")
	require.NoError(t, err)
	assert.Equal(t, "Jos\xe9", enc)
}
