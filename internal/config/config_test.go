package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMainConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadMainConfig("")
	require.NoError(t, err)

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ",", cfg.CSVSettings.Delimiter)
	assert.Equal(t, DefaultLabelSettings(), cfg.Label)
}

func TestDefaultLabelSettingsGeometry(t *testing.T) {
	l := DefaultLabelSettings()

	assert.Equal(t, 288.0, l.Width)
	assert.Equal(t, 432.0, l.Height)
	assert.Equal(t, 18.0, l.Margin)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "XA", "XG"}, l.Areas)
	assert.Greater(t, l.ItemFontSize, l.QuantityFontSize)
	assert.Greater(t, l.QuantityFontSize, l.LocationFontSize)
	assert.Greater(t, l.LocationFontSize, l.DetailFontSize)
}

func TestLoadMainConfigYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
output_dir: /tmp/labels
log_level: debug
archive_on_success: true
archive_date_subdirs: true
database:
  driver: postgres
  dsn: host=db user=ops dbname=ops
label:
  areas: [A, B, XA]
  checked_by_placeholder: "____"
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/labels", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.ArchiveOnSuccess)
	assert.True(t, cfg.ArchiveDateSubdirs)
	assert.Equal(t, []string{"A", "B", "XA"}, cfg.Label.Areas)
	assert.Equal(t, "____", cfg.Label.CheckedByPlaceholder)
	// untouched geometry keeps its defaults
	assert.Equal(t, 288.0, cfg.Label.Width)
	assert.Equal(t, 30.0, cfg.Label.ItemFontSize)
}

func TestLoadMainConfigTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
output_dir = "out"
output_name_format = "{item}_{uuid}.pdf"

[csv_settings]
delimiter = ";"

[label]
width = 216.0
height = 288.0
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "{item}_{uuid}.pdf", cfg.OutputNameFormat)
	assert.Equal(t, ";", cfg.CSVSettings.Delimiter)
	assert.Equal(t, 216.0, cfg.Label.Width)
	assert.Equal(t, 288.0, cfg.Label.Height)
}

func TestLoadMainConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "database:\n  driver: oracle\n"},
		{"unknown log level", "log_level: chatty\n"},
		{"font order", "label:\n  quantity_font_size: 40\n"},
		{"margin too wide", "label:\n  margin: 200\n"},
		{"negative width", "label:\n  width: -5\n"},
		{"item below quantity", "label:\n  item_offset: 150\n"},
		{"date below checked by", "label:\n  date_received_offset: 200\n"},
		{"checked by off the label", "label:\n  checked_by_offset: 400\n"},
		{"negative item offset", "label:\n  item_offset: -10\n"},
		{"footer outside font encoding", "label:\n  footer: \"标签\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", tt.body)
			_, err := LoadMainConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMainConfigMissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
