// =============================================================================
// Warehouse Ops Labels - Column Mapping
// =============================================================================
//
// Uploads come from spreadsheets typed by hand, so headers drift: "qty" for
// "quantity", "item" for "item_no". The ColumnMapper renames such columns to
// the canonical names the record builder reads.
//
// RULES:
//   - A canonical column present in the row always wins over an alias.
//   - When two aliases name the same column, the alphabetically first wins.
//   - Columns that are neither canonical nor aliased pass through untouched.
//
// =============================================================================

package converter

import (
	"slices"
	"strings"

	"github.com/ginjaninja78/ops-labels/internal/types"
)

// ColumnMapper renames aliased columns to their canonical names.
type ColumnMapper struct {
	aliases map[string]string
	order   []string
}

// NewColumnMapper creates a ColumnMapper. Keys and values are compared in
// their normalized (lowercase, underscore) form.
func NewColumnMapper(aliases map[string]string) *ColumnMapper {
	m := &ColumnMapper{aliases: make(map[string]string, len(aliases))}
	for alias, column := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		column = strings.ToLower(strings.TrimSpace(column))
		if alias == "" || column == "" || alias == column {
			continue
		}
		m.aliases[alias] = column
	}
	for alias := range m.aliases {
		m.order = append(m.order, alias)
	}
	slices.Sort(m.order)
	return m
}

// Map returns a copy of row with aliased fields renamed.
func (m *ColumnMapper) Map(row types.Row) types.Row {
	if len(m.aliases) == 0 {
		return row
	}

	fields := make(map[string]string, len(row.Fields))
	for k, v := range row.Fields {
		if _, aliased := m.aliases[k]; !aliased {
			fields[k] = v
		}
	}
	for _, alias := range m.order {
		v, ok := row.Fields[alias]
		if !ok {
			continue
		}
		column := m.aliases[alias]
		if _, taken := fields[column]; taken {
			continue
		}
		fields[column] = v
	}

	row.Fields = fields
	return row
}
