// =============================================================================
// Warehouse Ops Labels - File Manager Utility
// =============================================================================
//
// This module owns every disk operation around a label run, so the core
// packages can stay on io.Reader and []byte:
//   - Upload discovery (CSV and XLSX files in a directory)
//   - Output naming and writing
//   - Input archival after a successful run
//   - Error logs for rejected uploads
//
// ARCHIVAL STRATEGY:
//   - Uploads are moved to the input archive after their PDF is written
//   - Rejected uploads stay where they are, next to their error log
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/ops-labels/internal/validation"
)

// UploadPatterns are the file patterns accepted as label uploads.
var UploadPatterns = []string{"*.csv", "*.xlsx"}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations around label runs.
type FileManager struct {
	// OutputDir is where PDFs, exports and error logs are written.
	OutputDir string

	// InputArchiveDir receives uploads after a successful run.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2026/10/18/labels.csv
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether uploads are archived at all.
	ArchiveOnSuccess bool

	now func() time.Time
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(outputDir, inputArchiveDir string, archiveOnSuccess bool) *FileManager {
	return &FileManager{
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ArchiveOnSuccess: archiveOnSuccess,
		now:              time.Now,
	}
}

// EnsureDirectories creates the output directory (and the archive directory
// when archiving is on).
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.OutputDir}
	if fm.ArchiveOnSuccess {
		dirs = append(dirs, fm.InputArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverUploads lists the CSV and XLSX files directly inside dir, sorted
// by name. Sub-directories are not searched.
func DiscoverUploads(dir string) ([]string, error) {
	var result []string
	for _, pattern := range UploadPatterns {
		files, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			result = append(result, file)
		}
	}
	sort.Strings(result)
	return result, nil
}

// IsXLSX reports whether path names an Excel workbook.
func IsXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// =============================================================================
// OUTPUT
// =============================================================================

// WriteOutput writes data to name inside OutputDir. The file appears
// complete or not at all.
func (fm *FileManager) WriteOutput(name string, data []byte) (string, error) {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(fm.OutputDir, name)
	tmp, err := os.CreateTemp(fm.OutputDir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move output file into place: %w", err)
	}
	return path, nil
}

// GenerateOutputFileName generates a unique PDF file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     {item}      - Item number, or "bulk"
//     {original}  - Upload file name (without extension)
//   - params: Values for the custom placeholders.
//
// RETURNS:
//   - The generated file name, always ending in ".pdf".
//
// EXAMPLE:
//
//	format: "labels_{item}_{timestamp}.pdf"
//	params: {"item": "607529"}
//	output: "labels_607529_20261018_143022.pdf"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateFileName(format, params, time.Now())
}

func generateFileName(format string, params map[string]string, now time.Time) string {
	pairs := []string{
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", sanitizeName(value))
	}

	result := strings.NewReplacer(pairs...).Replace(format)
	if !strings.HasSuffix(strings.ToLower(result), ".pdf") {
		result += ".pdf"
	}
	return result
}

// sanitizeName keeps a placeholder value from escaping the output directory.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an upload to the archive directory.
//
// RETURNS:
//   - The path to the archived file (the original path when archiving is off).
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.archivePath(filePath)
	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; copy and delete instead.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

func (fm *FileManager) archivePath(filePath string) string {
	fileName := filepath.Base(filePath)
	if fm.UseTimestampSubdirs {
		now := fm.now()
		return filepath.Join(
			fm.InputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}
	return filepath.Join(fm.InputArchiveDir, fileName)
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry describes one rejected upload.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string
	RowNumber    int
	LineNumber   int
	FieldName    string
	FieldValue   string
}

// NewErrorLogEntry classifies err for the error log. Row validation failures
// keep their row, line and field; anything else is logged as "Processing".
func NewErrorLogEntry(fileName string, err error, now time.Time) ErrorLogEntry {
	entry := ErrorLogEntry{
		Timestamp:    now,
		FileName:     fileName,
		ErrorType:    "Processing",
		ErrorMessage: err.Error(),
	}

	var rowErr *validation.RowValidationError
	if errors.As(err, &rowErr) {
		entry.ErrorType = string(rowErr.Kind())
		entry.ErrorMessage = rowErr.Err.Error()
		entry.RowNumber = rowErr.Row
		entry.LineNumber = rowErr.Line
		entry.FieldName = rowErr.Err.Field
		entry.FieldValue = rowErr.Err.Value
	}
	return entry
}

// WriteErrorLog writes error entries to a log file in OutputDir.
//
// RETURNS:
//   - The path to the error log file ("" when there is nothing to log).
//   - An error if writing fails.
func (fm *FileManager) WriteErrorLog(entries []ErrorLogEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	now := fm.now()
	logPath := filepath.Join(fm.OutputDir,
		fmt.Sprintf("error_log_%s_%s.txt", now.Format("20060102_150405"), uuid.New().String()[:8]))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	if err := writeErrorLog(file, entries, now); err != nil {
		return "", err
	}
	return logPath, nil
}

func writeErrorLog(w io.Writer, entries []ErrorLogEntry, now time.Time) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", 80) + "\n"

	fmt.Fprintf(bw, "Warehouse Ops Labels - Error Log\nGenerated: %s\nTotal Errors: %d\n%s\n",
		now.Format("2006-01-02 15:04:05"), len(entries), rule)

	for i, entry := range entries {
		fmt.Fprintf(bw, "Error #%d\n", i+1)
		fmt.Fprintf(bw, "  Timestamp:      %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(bw, "  File:           %s\n", entry.FileName)
		fmt.Fprintf(bw, "  Error Type:     %s\n", entry.ErrorType)
		fmt.Fprintf(bw, "  Message:        %s\n", entry.ErrorMessage)
		if entry.RowNumber > 0 {
			fmt.Fprintf(bw, "  Row Number:     %d\n", entry.RowNumber)
		}
		if entry.LineNumber > 0 {
			fmt.Fprintf(bw, "  Line Number:    %d\n", entry.LineNumber)
		}
		if entry.FieldName != "" {
			fmt.Fprintf(bw, "  Field:          %s\n", entry.FieldName)
		}
		if entry.FieldValue != "" {
			fmt.Fprintf(bw, "  Value:          %s\n", entry.FieldValue)
		}
		bw.WriteString("\n")
	}
	bw.WriteString(rule + "End of Error Log\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush error log: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
