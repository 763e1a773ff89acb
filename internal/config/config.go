// =============================================================================
// Warehouse Ops Labels - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. It covers:
//   1. File locations (output, archive)
//   2. Logging level
//   3. The ops log database connection
//   4. CSV parsing settings for bulk label uploads
//   5. Label geometry, fonts and the allowed location areas
//
// FILE FORMATS:
//   - YAML (config.yaml / config.yml)
//   - TOML (config.toml)
//
// Every loaded configuration has defaults applied and is then validated.
// LabelSettings is handed to the validator and renderer by value, so a
// running batch never observes a change to it.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// PointsPerInch converts inches to PDF points.
const PointsPerInch = 72.0

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is the directory where generated label PDFs and export CSVs
	// are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// InputArchiveDir is where uploaded CSV/XLSX files are moved after a
	// successful run.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" toml:"input_archive_dir"`

	// ArchiveOnSuccess moves the input file into InputArchiveDir once its
	// labels have been written.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success" toml:"archive_on_success"`

	// ArchiveDateSubdirs files archived uploads under YYYY/MM/DD.
	// Default: false
	ArchiveDateSubdirs bool `yaml:"archive_date_subdirs" toml:"archive_date_subdirs"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {item}      - Item number (single label) or "bulk"
	//   {original}  - Input file name without extension
	// Default: "labels_{item}_{timestamp}.pdf"
	OutputNameFormat string `yaml:"output_name_format" toml:"output_name_format"`

	// UncompressedPDF writes page content streams as plain text, which makes
	// the output inspectable with a text editor.
	// Default: false
	UncompressedPDF bool `yaml:"uncompressed_pdf" toml:"uncompressed_pdf"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Database configures the ops log sink.
	Database DatabaseConfig `yaml:"database" toml:"database"`

	// CSVSettings contains settings for parsing bulk label uploads.
	CSVSettings CSVSettings `yaml:"csv_settings" toml:"csv_settings"`

	// Label holds the fixed label layout and location grammar.
	Label LabelSettings `yaml:"label" toml:"label"`
}

// DatabaseConfig selects the ops log backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (embedded file) or "postgres".
	// Default: "sqlite"
	Driver string `yaml:"driver" toml:"driver"`

	// DSN is the file path for sqlite or the connection string for postgres.
	// Default: "ops.db"
	DSN string `yaml:"dsn" toml:"dsn"`
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// ColumnAliases maps alternate header names to label columns,
	// e.g. "qty" -> "quantity". Keys and values are normalized header names.
	// Default: DefaultColumnAliases()
	ColumnAliases map[string]string `yaml:"column_aliases" toml:"column_aliases"`
}

// DefaultColumnAliases returns the header spellings accepted out of the box.
func DefaultColumnAliases() map[string]string {
	return map[string]string{
		"item":        "item_no",
		"item_number": "item_no",
		"qty":         "quantity",
		"loc":         "location",
		"date":        "date_received",
		"received":    "date_received",
		"checker":     "checked_by",
	}
}

// =============================================================================
// LABEL SETTINGS STRUCTURE
// =============================================================================

// LabelSettings describes the label page and the location grammar.
// All lengths are PDF points measured from the bottom-left corner.
type LabelSettings struct {
	// Width and Height are the page size. Default: 4in x 6in.
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`

	// Margin insets the text block; the border sits at half the margin.
	// Default: 0.25in
	Margin float64 `yaml:"margin" toml:"margin"`

	// Font sizes, largest first.
	ItemFontSize     float64 `yaml:"item_font_size" toml:"item_font_size"`
	QuantityFontSize float64 `yaml:"quantity_font_size" toml:"quantity_font_size"`
	LocationFontSize float64 `yaml:"location_font_size" toml:"location_font_size"`
	DetailFontSize   float64 `yaml:"detail_font_size" toml:"detail_font_size"`
	FooterFontSize   float64 `yaml:"footer_font_size" toml:"footer_font_size"`

	// Baseline offsets below the top text edge (Height - Margin).
	ItemOffset         float64 `yaml:"item_offset" toml:"item_offset"`
	DividerOffset      float64 `yaml:"divider_offset" toml:"divider_offset"`
	QuantityOffset     float64 `yaml:"quantity_offset" toml:"quantity_offset"`
	LocationOffset     float64 `yaml:"location_offset" toml:"location_offset"`
	DateReceivedOffset float64 `yaml:"date_received_offset" toml:"date_received_offset"`
	CheckedByOffset    float64 `yaml:"checked_by_offset" toml:"checked_by_offset"`

	// BorderWidth and DividerWidth are stroke widths.
	BorderWidth  float64 `yaml:"border_width" toml:"border_width"`
	DividerWidth float64 `yaml:"divider_width" toml:"divider_width"`

	// Footer is the caption printed in the bottom-right corner.
	Footer string `yaml:"footer" toml:"footer"`

	// Areas is the set of allowed location areas (first AREA-ROW-BIN segment).
	Areas []string `yaml:"areas" toml:"areas"`

	// CheckedByPlaceholder fills the "Checked by" line when no name is given.
	CheckedByPlaceholder string `yaml:"checked_by_placeholder" toml:"checked_by_placeholder"`

	// DateLayout formats today's date when date_received is absent.
	DateLayout string `yaml:"date_layout" toml:"date_layout"`
}

// DefaultAreas are the standard aisles A-L plus the custom zones XA and XG.
func DefaultAreas() []string {
	areas := make([]string, 0, 14)
	for c := 'A'; c <= 'L'; c++ {
		areas = append(areas, string(c))
	}
	return append(areas, "XA", "XG")
}

// DefaultLabelSettings returns the 4x6 layout used on the warehouse printers.
func DefaultLabelSettings() LabelSettings {
	return LabelSettings{
		Width:                4 * PointsPerInch,
		Height:               6 * PointsPerInch,
		Margin:               0.25 * PointsPerInch,
		ItemFontSize:         30,
		QuantityFontSize:     22,
		LocationFontSize:     20,
		DetailFontSize:       14,
		FooterFontSize:       10,
		ItemOffset:           36,
		DividerOffset:        52,
		QuantityOffset:       90,
		LocationOffset:       128,
		DateReceivedOffset:   165,
		CheckedByOffset:      190,
		BorderWidth:          1,
		DividerWidth:         0.5,
		Footer:               "4x6 label • no barcode",
		Areas:                DefaultAreas(),
		CheckedByPlaceholder: "__________",
		DateLayout:           "2006-01-02",
	}
}

// Default returns a MainConfig with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML or TOML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path yields
//     the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "labels_{item}_{timestamp}.pdf"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Database.Driver == "" {
		config.Database.Driver = DriverSQLite
	}
	if config.Database.DSN == "" {
		config.Database.DSN = "ops.db"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.ColumnAliases == nil {
		config.CSVSettings.ColumnAliases = DefaultColumnAliases()
	}
	applyLabelDefaults(&config.Label)
}

// applyLabelDefaults fills every zero-valued label setting from the defaults.
func applyLabelDefaults(l *LabelSettings) {
	d := DefaultLabelSettings()

	setFloat := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setFloat(&l.Width, d.Width)
	setFloat(&l.Height, d.Height)
	setFloat(&l.Margin, d.Margin)
	setFloat(&l.ItemFontSize, d.ItemFontSize)
	setFloat(&l.QuantityFontSize, d.QuantityFontSize)
	setFloat(&l.LocationFontSize, d.LocationFontSize)
	setFloat(&l.DetailFontSize, d.DetailFontSize)
	setFloat(&l.FooterFontSize, d.FooterFontSize)
	setFloat(&l.ItemOffset, d.ItemOffset)
	setFloat(&l.DividerOffset, d.DividerOffset)
	setFloat(&l.QuantityOffset, d.QuantityOffset)
	setFloat(&l.LocationOffset, d.LocationOffset)
	setFloat(&l.DateReceivedOffset, d.DateReceivedOffset)
	setFloat(&l.CheckedByOffset, d.CheckedByOffset)
	setFloat(&l.BorderWidth, d.BorderWidth)
	setFloat(&l.DividerWidth, d.DividerWidth)

	if l.Footer == "" {
		l.Footer = d.Footer
	}
	if len(l.Areas) == 0 {
		l.Areas = d.Areas
	}
	if l.CheckedByPlaceholder == "" {
		l.CheckedByPlaceholder = d.CheckedByPlaceholder
	}
	if l.DateLayout == "" {
		l.DateLayout = d.DateLayout
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration after defaults have been applied.
func (c *MainConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.OutputNameFormat, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
	if err != nil {
		return err
	}

	db := &c.Database
	err = validation.ValidateStruct(db,
		validation.Field(&db.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
		validation.Field(&db.DSN, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Label.Validate(); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	return nil
}

// Validate checks that the label geometry is usable, the font sizes keep
// the item > quantity > location ordering and the lines keep their order.
func (l *LabelSettings) Validate() error {
	positive := []validation.Rule{validation.Required, validation.Min(0.1)}
	err := validation.ValidateStruct(l,
		validation.Field(&l.Width, positive...),
		validation.Field(&l.Height, positive...),
		validation.Field(&l.Margin, positive...),
		validation.Field(&l.ItemFontSize, positive...),
		validation.Field(&l.QuantityFontSize, positive...),
		validation.Field(&l.LocationFontSize, positive...),
		validation.Field(&l.DetailFontSize, positive...),
		validation.Field(&l.FooterFontSize, positive...),
		validation.Field(&l.Areas, validation.Required, validation.Each(validation.Required)),
		validation.Field(&l.DateLayout, validation.Required),
	)
	if err != nil {
		return err
	}

	if 2*l.Margin >= l.Width || 2*l.Margin >= l.Height {
		return fmt.Errorf("margin %.2f leaves no printable area on a %.2fx%.2f page", l.Margin, l.Width, l.Height)
	}
	if !(l.ItemFontSize > l.QuantityFontSize && l.QuantityFontSize > l.LocationFontSize) {
		return fmt.Errorf("font sizes must decrease item > quantity > location, got %.1f/%.1f/%.1f",
			l.ItemFontSize, l.QuantityFontSize, l.LocationFontSize)
	}
	if err := l.validateOffsets(); err != nil {
		return err
	}
	if _, err := charmap.Windows1252.NewEncoder().String(l.Footer); err != nil {
		return fmt.Errorf("footer %q has characters the label font cannot print", l.Footer)
	}
	return nil
}

// validateOffsets keeps the lines in their printed order, top to bottom,
// with every baseline inside the text area.
func (l *LabelSettings) validateOffsets() error {
	if l.ItemOffset <= 0 {
		return fmt.Errorf("item_offset must be positive, got %.2f", l.ItemOffset)
	}
	if !(l.ItemOffset < l.DividerOffset &&
		l.DividerOffset < l.QuantityOffset &&
		l.QuantityOffset < l.LocationOffset &&
		l.LocationOffset < l.DateReceivedOffset &&
		l.DateReceivedOffset <= l.CheckedByOffset) {
		return fmt.Errorf("offsets must increase item < divider < quantity < location < date_received <= checked_by, got %.1f/%.1f/%.1f/%.1f/%.1f/%.1f",
			l.ItemOffset, l.DividerOffset, l.QuantityOffset, l.LocationOffset, l.DateReceivedOffset, l.CheckedByOffset)
	}
	if limit := l.Height - 2*l.Margin; l.CheckedByOffset >= limit {
		return fmt.Errorf("checked_by_offset %.2f falls outside the text area (limit %.2f)", l.CheckedByOffset, limit)
	}
	return nil
}
