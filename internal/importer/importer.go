// Package importer loads source boards from DXF outline plots and batch
// panel jobs from CSV or Excel sheets. It supports automatic delimiter
// detection, flexible column mapping and case-insensitive headers.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/pcbpanel/internal/model"
)

// Job is one panel to build in a batch run.
type Job struct {
	Name     string
	Output   string // optional output base path
	Settings model.PanelSettings
}

// JobResult holds the results of a batch job import.
type JobResult struct {
	Jobs     []Job
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name    int
	Source  int
	BoardsX int
	BoardsY int
	TabsX   int
	TabsY   int
	Mode    int
	Output  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":     {"name", "job", "label", "panel", "description"},
	"source":   {"source", "board", "file", "path", "dxf", "outline"},
	"boards_x": {"boards_x", "boards x", "columns", "cols", "nx"},
	"boards_y": {"boards_y", "boards y", "rows", "ny"},
	"tabs_x":   {"tabs_x", "tabs x", "horizontal tabs"},
	"tabs_y":   {"tabs_y", "tabs y", "vertical tabs"},
	"mode":     {"mode", "tab mode", "tab_mode"},
	"output":   {"output", "out", "destination", "dest"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries
// comma, semicolon, tab and pipe; the one producing the most consistent
// multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// returns a positional mapping and false when the row is not a header:
// Source, BoardsX, BoardsY, TabsX, TabsY, Mode, Output.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}
	roles := map[string]*int{
		"name":     &mapping.Name,
		"source":   &mapping.Source,
		"boards_x": &mapping.BoardsX,
		"boards_y": &mapping.BoardsY,
		"tabs_x":   &mapping.TabsX,
		"tabs_y":   &mapping.TabsY,
		"mode":     &mapping.Mode,
		"output":   &mapping.Output,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := roles[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Name:    -1,
			Source:  0,
			BoardsX: 1,
			BoardsY: 2,
			TabsX:   3,
			TabsY:   4,
			Mode:    5,
			Output:  6,
		}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCount reads an optional integer cell, falling back to def when empty.
func parseCount(row []string, idx int, def int, rowLabel, what string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return def, ""
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	return n, ""
}

// parseRow extracts a Job from a row using the given column mapping. Settings
// not present in the row come from base. Returns the job, any error message
// and any warning message.
func parseRow(row []string, mapping ColumnMapping, base model.PanelSettings, baseDir, rowLabel string, jobCount int) (Job, string, string) {
	job := Job{
		Name:     getCell(row, mapping.Name),
		Output:   getCell(row, mapping.Output),
		Settings: base,
	}
	if job.Name == "" {
		job.Name = fmt.Sprintf("Job %d", jobCount+1)
	}

	source := getCell(row, mapping.Source)
	if source == "" {
		return Job{}, fmt.Sprintf("%s: Missing source board", rowLabel), ""
	}
	job.Settings.Source = resolvePath(baseDir, source)
	if job.Output != "" {
		job.Output = resolvePath(baseDir, job.Output)
	}

	var errMsg string
	s := &job.Settings
	if s.BoardsX, errMsg = parseCount(row, mapping.BoardsX, base.BoardsX, rowLabel, "boards x"); errMsg != "" {
		return Job{}, errMsg, ""
	}
	if s.BoardsY, errMsg = parseCount(row, mapping.BoardsY, base.BoardsY, rowLabel, "boards y"); errMsg != "" {
		return Job{}, errMsg, ""
	}
	if s.TabsX, errMsg = parseCount(row, mapping.TabsX, base.TabsX, rowLabel, "tabs x"); errMsg != "" {
		return Job{}, errMsg, ""
	}
	if s.TabsY, errMsg = parseCount(row, mapping.TabsY, base.TabsY, rowLabel, "tabs y"); errMsg != "" {
		return Job{}, errMsg, ""
	}

	var warning string
	if modeStr := strings.ToLower(getCell(row, mapping.Mode)); modeStr != "" {
		mode, err := model.ParseTabMode(modeStr)
		if err != nil {
			warning = fmt.Sprintf("%s: Unknown tab mode '%s', using %s", rowLabel, modeStr, base.TabMode)
		} else {
			s.TabMode = mode
		}
	}

	if err := s.Validate(); err != nil {
		return Job{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return job, "", warning
}

// resolvePath makes p relative to the directory of the job sheet.
func resolvePath(baseDir, p string) string {
	if baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportJobsCSV imports batch jobs from a CSV file. Relative source and
// output paths are resolved against the file's directory.
func ImportJobsCSV(path string, base model.PanelSettings) JobResult {
	result := JobResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", base, filepath.Dir(path), result.Warnings)
}

// ImportJobsCSVFromReader imports jobs from a CSV reader with a known delimiter.
// Paths are used as given.
func ImportJobsCSVFromReader(reader io.Reader, delimiter rune, base model.PanelSettings) JobResult {
	result := JobResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", base, "", nil)
}

// ImportJobsExcel imports batch jobs from the first sheet of an Excel file.
func ImportJobsExcel(path string, base model.PanelSettings) JobResult {
	result := JobResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", base, filepath.Dir(path), nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, base model.PanelSettings, baseDir string, initialWarnings []string) JobResult {
	result := JobResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Source == -1 {
			missing = append(missing, "Source")
		}
		if mapping.BoardsX == -1 {
			missing = append(missing, "Boards X")
		}
		if mapping.BoardsY == -1 {
			missing = append(missing, "Boards Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognised header: the board count column is not numeric
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		job, errMsg, warning := parseRow(row, mapping, base, baseDir, rowLabel, len(result.Jobs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Jobs = append(result.Jobs, job)
	}

	if len(result.Jobs) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
