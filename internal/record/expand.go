package record

import "github.com/ginjaninja78/ops-labels/internal/types"

// Expand returns how many physical labels rec produces, together with the
// record every copy shows. Bulk yields one label; nonbulk yields one label
// per unit. The quantity is never reduced: each nonbulk copy still prints
// the full declared quantity.
func Expand(rec LabelRecord) (int, LabelRecord) {
	if rec.Mode == types.ModeNonbulk {
		return max(1, rec.Quantity), rec
	}
	return 1, rec
}
