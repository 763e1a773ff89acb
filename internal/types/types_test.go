package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"bulk", ModeBulk, true},
		{" NonBulk ", ModeNonbulk, true},
		{"BULK", ModeBulk, true},
		{"", "", false},
		{"pallet", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRowGet(t *testing.T) {
	r := Row{Fields: map[string]string{ColumnItemNo: " 607529 "}}
	assert.Equal(t, "607529", r.Get(ColumnItemNo))
	assert.Equal(t, "", r.Get(ColumnLocation))
}
