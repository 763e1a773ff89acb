package opslog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportHeader is the first line of every export.
var ExportHeader = []string{
	"ts_utc", "department", "person", "item_no", "qty",
	"location", "date_received", "checked_by", "notes",
}

// WriteCSV writes entries to w, one line each, after ExportHeader.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, e := range entries {
		err := cw.Write([]string{
			e.Timestamp.UTC().Format(timestampLayout),
			e.Department,
			e.Person,
			e.ItemNo,
			strconv.Itoa(e.Qty),
			e.Location,
			e.DateReceived,
			e.CheckedBy,
			e.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to write entry %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFileName is the conventional name for a day's export.
func ExportFileName(day string) string {
	return "ops_" + day + ".csv"
}
