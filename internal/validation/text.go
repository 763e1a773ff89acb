package validation

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Printable checks that raw can be drawn with the label's core fonts,
// which only cover Windows-1252. The value is returned unchanged.
func (v *Validator) Printable(field, raw string) (string, error) {
	if _, err := EncodeLabelText(raw); err != nil {
		return "", &ValidationError{
			Kind:    KindUnprintableText,
			Field:   field,
			Value:   raw,
			Message: fmt.Sprintf("%s %q has characters the label font cannot print", field, raw),
		}
	}
	return raw, nil
}

// EncodeLabelText converts UTF-8 text to the Windows-1252 bytes used by the
// core PDF fonts. It fails on any rune outside that code page.
func EncodeLabelText(s string) (string, error) {
	return charmap.Windows1252.NewEncoder().String(s)
}

// DecodeLabelText converts Windows-1252 bytes back to UTF-8.
func DecodeLabelText(s string) (string, error) {
	return charmap.Windows1252.NewDecoder().String(s)
}
