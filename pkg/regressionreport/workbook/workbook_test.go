package workbook

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
)

var formatting = reportconfig.PercentageFormatting{PassThreshold: 0.995, WarnThreshold: 0.75}

func glResults() []reportingapi.ReconciledApplicationResult {
	return []reportingapi.ReconciledApplicationResult{
		{
			AppTitle:      "Cashier",
			NumberPassing: 10,
			FailureLinks:  nil,
		},
		{
			AppTitle:      "Vendors",
			NumberPassing: 3,
			NumberFailing: 1,
			FailureLinks: []reportingapi.FailureLink{{
				Value:    "VendorTest.create",
				URL:      "http://jenkins/view/GL Regression/job/GL Regression Test Fail/4/testReport/junit/com.dms.gl/VendorTest/create",
				FilePath: "gl/vendors/reports/daily",
			}},
		},
		{AppTitle: "Unknown Application"},
	}
}

func TestNewTable(t *testing.T) {
	actual := NewTable("GL Regression", glResults())
	expected := Table{
		Name: "GL Regression",
		Rows: []Row{
			{Name: "Cashier", Total: 10, Passing: 10, PercentPassing: 1},
			{Name: "Vendors", Total: 4, Passing: 3, Failing: 1, PercentPassing: 0.75},
			{Name: "Unknown Application"},
		},
		Totals:         Row{Name: "TOTAL", Total: 14, Passing: 13, Failing: 1, PercentPassing: 13.0 / 14.0},
		AveragePercent: 1.75 / 3,
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected table: %s", diff)
	}
	if diff := cmp.Diff(Table{Name: "empty", Totals: Row{Name: "TOTAL"}}, NewTable("empty", nil)); diff != "" {
		t.Errorf("unexpected empty table: %s", diff)
	}
}

func TestOverallSection(t *testing.T) {
	sections := []Section{
		NewSection("GL Regression", glResults()),
		NewSection("Navigation", []reportingapi.ReconciledApplicationResult{
			{AppTitle: "PD", NumberPassing: 20, NumberFailing: 2},
			{AppTitle: "SD", NumberPassing: 5, NumberFailing: 0},
		}),
	}
	expected := Section{
		SheetTitle: "Regression Results",
		TableName:  "Module",
		TableTitle: "Overall Automated Regression Results",
		Results: []reportingapi.ReconciledApplicationResult{
			{AppTitle: "GL Regression", NumberPassing: 13, NumberFailing: 1},
			{AppTitle: "Navigation", NumberPassing: 25, NumberFailing: 2},
		},
	}
	if diff := cmp.Diff(expected, OverallSection(sections)); diff != "" {
		t.Errorf("unexpected overall section: %s", diff)
	}
	if table := expected.Table(); table.Name != "Module" {
		t.Errorf("expected the overall table to be named Module, got %q", table.Name)
	}
}

func cellValue(t *testing.T, f *excelize.File, sheet, c string) string {
	t.Helper()
	value, err := f.GetCellValue(sheet, c, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return value
}

func cellFormula(t *testing.T, f *excelize.File, sheet, c string) string {
	t.Helper()
	formula, err := f.GetCellFormula(sheet, c)
	require.NoError(t, err)
	return formula
}

func TestWriteSheet(t *testing.T) {
	w, err := NewWriter(formatting)
	require.NoError(t, err)
	defer w.Close()

	section := NewSection("GL Regression", glResults())
	require.NoError(t, w.WriteSheet(OverallSection([]Section{section})))
	require.NoError(t, w.WriteSheet(section))
	assert.Equal(t, []string{"Regression Results", "GL Regression"}, w.file.GetSheetList())

	const sheet = "GL Regression"
	for c, expected := range map[string]string{
		"B1":  "",
		"B2":  "GL Regression",
		"C2":  "Total",
		"D2":  "Passing",
		"E2":  "Failing",
		"F2":  "Percent Passing",
		"B3":  "Cashier",
		"C3":  "10",
		"D3":  "10",
		"E3":  "0",
		"F3":  "1",
		"B4":  "Vendors",
		"F4":  "0.75",
		"B5":  "Unknown Application",
		"C5":  "0",
		"F5":  "0",
		"B6":  "TOTAL",
		"G5":  "Avg. % Pass",
		"B8":  "Application",
		"C8":  "File Path",
		"B10": "Cashier",
		"B12": "Vendors",
		"B13": "VendorTest.create",
		"C13": "gl/vendors/reports/daily",
		"B15": "Unknown Application",
		"B16": "",
	} {
		assert.Equal(t, expected, cellValue(t, w.file, sheet, c), "cell %s", c)
	}
	for c, expected := range map[string]string{
		"C6": "SUM(C3:C5)",
		"D6": "SUM(D3:D5)",
		"E6": "SUM(E3:E5)",
		"F6": "IFERROR(D6/C6,0)",
		"G6": "IFERROR(AVERAGE(F3:F5),0)",
	} {
		assert.Equal(t, expected, cellFormula(t, w.file, sheet, c), "formula of %s", c)
	}

	hasLink, target, err := w.file.GetCellHyperLink(sheet, "B13")
	require.NoError(t, err)
	assert.True(t, hasLink)
	assert.Equal(t, glResults()[1].FailureLinks[0].URL, target)

	const overall = "Regression Results"
	assert.Equal(t, "Overall Automated Regression Results", cellValue(t, w.file, overall, "B1"))
	assert.Equal(t, "Module", cellValue(t, w.file, overall, "B2"))
	assert.Equal(t, "GL Regression", cellValue(t, w.file, overall, "B3"))
	assert.Equal(t, "14", cellValue(t, w.file, overall, "C3"))
	assert.Equal(t, "", cellValue(t, w.file, overall, "B6"), "failures are not listed on the overall sheet")
}

func TestWriteSheetWithoutResults(t *testing.T) {
	w, err := NewWriter(formatting)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteSheet(NewSection("GL Regression", nil)))

	const sheet = "GL Regression"
	for c, expected := range map[string]string{
		"B3": "TOTAL",
		"C3": "0",
		"D3": "0",
		"E3": "0",
		"F3": "0",
		"G2": "Avg. % Pass",
		"G3": "0",
	} {
		assert.Equal(t, expected, cellValue(t, w.file, sheet, c), "cell %s", c)
	}
	for _, c := range []string{"C3", "D3", "E3", "F3", "G3"} {
		assert.Empty(t, cellFormula(t, w.file, sheet, c), "totals of an empty table must not reference the totals row")
	}
}

func TestWriteSheetRejectsDuplicateTitles(t *testing.T) {
	w, err := NewWriter(formatting)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteSheet(NewSection("Navigation", nil)))
	require.NoError(t, w.WriteSheet(NewSection("GL1000R", nil)))
	err = w.WriteSheet(NewSection("Navigation", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `a sheet named "Navigation" was already written`)
	assert.Equal(t, []string{"Navigation", "GL1000R"}, w.file.GetSheetList())
}

func TestSaveAs(t *testing.T) {
	w, err := NewWriter(formatting)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.WriteSheet(NewSection("Navigation", []reportingapi.ReconciledApplicationResult{{AppTitle: "PD", NumberPassing: 2}})))

	path := filepath.Join(t.TempDir(), "regression_run.xlsx")
	require.NoError(t, w.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Navigation"}, f.GetSheetList())
	assert.Equal(t, "PD", cellValue(t, f, "Navigation", "B3"))
}

func TestWriteTo(t *testing.T) {
	w, err := NewWriter(formatting)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.WriteSheet(NewSection("GL1000R", nil)))

	var buf bytes.Buffer
	_, err = w.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "TOTAL", cellValue(t, f, "GL1000R", "B3"))
}

func TestPercentRules(t *testing.T) {
	s := &styles{conditionalPass: 1, conditionalWarn: 2, conditionalFail: 3}
	expected := []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: ">=", Format: 1, Value: "0.995"},
		{Type: "cell", Criteria: ">=", Format: 2, Value: "0.75"},
		{Type: "cell", Criteria: "<", Format: 3, Value: "0.75"},
	}
	if diff := cmp.Diff(expected, s.percentRules(formatting)); diff != "" {
		t.Errorf("unexpected rules: %s", diff)
	}
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	WriteSummary(&out, []Section{
		NewSection("GL Regression", glResults()),
		NewSection("Navigation", []reportingapi.ReconciledApplicationResult{{AppTitle: "PD", NumberPassing: 20, NumberFailing: 2}}),
	})
	rendered := out.String()
	for _, expected := range []string{"GL Regression", "Cashier", "100.00%", "Vendors", "75.00%", "Navigation", "PD", "90.91%", "36"} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("expected summary to contain %q:\n%s", expected, rendered)
		}
	}
	if lines := strings.Count(rendered, "\n"); lines < 8 {
		t.Errorf("expected a table, got %d lines:\n%s", lines, rendered)
	}
}
