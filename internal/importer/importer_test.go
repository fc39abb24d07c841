package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/pcbpanel/internal/model"
)

// ─── Delimiter Detection Tests ─────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("source,boards_x,boards_y\na.dxf,2,3\n")
	if d := DetectCSVDelimiter(data); d != ',' {
		t.Errorf("expected comma, got %q", d)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("source;boards_x;boards_y\na.dxf;2;3\n")
	if d := DetectCSVDelimiter(data); d != ';' {
		t.Errorf("expected semicolon, got %q", d)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("source\tboards_x\tboards_y\na.dxf\t2\t3\n")
	if d := DetectCSVDelimiter(data); d != '\t' {
		t.Errorf("expected tab, got %q", d)
	}
}

// ─── Column Detection Tests ────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Name", "Source", "Boards X", "Boards Y", "Tabs X", "Tabs Y", "Mode", "Output"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Source: 1, BoardsX: 2, BoardsY: 3, TabsX: 4, TabsY: 5, Mode: 6, Output: 7}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	mapping, ok := DetectColumns([]string{"ROWS", "file", "cols"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if mapping.Source != 1 || mapping.BoardsX != 2 || mapping.BoardsY != 0 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.TabsX != -1 || mapping.Name != -1 {
		t.Errorf("expected optional columns to be unset, got %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, ok := DetectColumns([]string{"a.dxf", "2", "3"})
	if ok {
		t.Error("expected no header")
	}
	if mapping.Source != 0 || mapping.BoardsX != 1 || mapping.BoardsY != 2 || mapping.Name != -1 {
		t.Errorf("unexpected positional mapping %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportJobsCSVFromReader_WithHeaders(t *testing.T) {
	input := "name,source,boards_x,boards_y,tabs_x,mode\n" +
		"sensor,sensor.dxf,3,2,2,auto\n" +
		",led.dxf,1,4,,\n"

	result := ImportJobsCSVFromReader(strings.NewReader(input), ',', model.DefaultSettings())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}

	first := result.Jobs[0]
	if first.Name != "sensor" || first.Settings.Source != "sensor.dxf" {
		t.Errorf("unexpected first job %+v", first)
	}
	if first.Settings.BoardsX != 3 || first.Settings.BoardsY != 2 || first.Settings.TabsX != 2 {
		t.Errorf("unexpected grid %+v", first.Settings)
	}
	if first.Settings.TabMode != model.TabModeAuto {
		t.Errorf("expected auto mode, got %s", first.Settings.TabMode)
	}

	second := result.Jobs[1]
	if second.Name != "Job 2" {
		t.Errorf("expected generated name 'Job 2', got %q", second.Name)
	}
	if second.Settings.TabsX != 1 || second.Settings.TabMode != model.TabModeEvenly {
		t.Errorf("expected defaults for missing cells, got %+v", second.Settings)
	}
}

func TestImportJobsCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "a.dxf,2,2\nb.dxf,1,3,0,2,around\n"
	result := ImportJobsCSVFromReader(strings.NewReader(input), ',', model.DefaultSettings())

	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d (errors: %v)", len(result.Jobs), result.Errors)
	}
	s := result.Jobs[1].Settings
	if s.TabsX != 0 || s.TabsY != 2 || s.TabMode != model.TabModeAround {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestImportJobsCSVFromReader_InvalidRows(t *testing.T) {
	input := "source,boards_x,boards_y\n" +
		"a.dxf,two,2\n" +
		"b.dxf,0,2\n" +
		",1,1\n" +
		"c.dxf,1,1\n"

	result := ImportJobsCSVFromReader(strings.NewReader(input), ',', model.DefaultSettings())

	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 valid job, got %d", len(result.Jobs))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportJobsCSVFromReader_UnknownModeWarns(t *testing.T) {
	input := "source,boards_x,boards_y,mode\na.dxf,1,1,zigzag\n"
	result := ImportJobsCSVFromReader(strings.NewReader(input), ',', model.DefaultSettings())

	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(result.Jobs))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "zigzag") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about unknown mode, got %v", result.Warnings)
	}
}

func TestImportJobsCSVFromReader_MissingRequiredColumn(t *testing.T) {
	input := "source,boards_x\na.dxf,2\n"
	result := ImportJobsCSVFromReader(strings.NewReader(input), ',', model.DefaultSettings())
	if len(result.Errors) == 0 {
		t.Error("expected error for missing boards y column")
	}
}

func TestImportJobsCSV_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.csv")
	content := "source;boards_x;boards_y;output\nboards/a.dxf;2;2;out/a\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportJobsCSV(path, model.DefaultSettings())
	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d (errors: %v)", len(result.Jobs), result.Errors)
	}
	if got, want := result.Jobs[0].Settings.Source, filepath.Join(dir, "boards", "a.dxf"); got != want {
		t.Errorf("expected source %q, got %q", want, got)
	}
	if got, want := result.Jobs[0].Output, filepath.Join(dir, "out", "a"); got != want {
		t.Errorf("expected output %q, got %q", want, got)
	}
}

func TestImportJobsCSV_FileNotFound(t *testing.T) {
	result := ImportJobsCSV("/nonexistent/path/jobs.csv", model.DefaultSettings())
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportJobsCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportJobsCSV(path, model.DefaultSettings())
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportJobsExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Panel", "Board", "Columns", "Rows", "Tab Mode"},
		{"main", "/boards/main.dxf", 4, 2, "around"},
	})

	result := ImportJobsExcel(path, model.DefaultSettings())

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(result.Jobs))
	}
	job := result.Jobs[0]
	if job.Name != "main" || job.Settings.Source != "/boards/main.dxf" {
		t.Errorf("unexpected job %+v", job)
	}
	if job.Settings.BoardsX != 4 || job.Settings.BoardsY != 2 || job.Settings.TabMode != model.TabModeAround {
		t.Errorf("unexpected settings %+v", job.Settings)
	}
}

func TestImportJobsExcel_FileNotFound(t *testing.T) {
	result := ImportJobsExcel("/nonexistent/jobs.xlsx", model.DefaultSettings())
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
