// =============================================================================
// Warehouse Ops Labels - Main Entry Point
// =============================================================================
//
// This is the main entry point for the opslabels CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   opslabels labels       - Render label PDFs from CSV/XLSX uploads
//   opslabels label        - Render labels for a single form submission
//   opslabels log          - Append a department entry to the ops log
//   opslabels entries      - Show recent ops log entries
//   opslabels export       - Export one day of the ops log as CSV
//   opslabels inspect      - Print the fields printed on each page of a PDF
//   opslabels departments  - List departments
//   opslabels version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Validation, records, rendering, ingest, ops log
//   - pkg/           : File utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/ops-labels/cmd"
)

func main() {
	cmd.Execute()
}
