// Package workbook renders reconciled results as a spreadsheet with one
// sheet per report section, and as a console summary.
package workbook

import (
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
)

const (
	// OverallSheetTitle names the first sheet, summarizing every section.
	OverallSheetTitle = reportconfig.OverallSheetTitle
	overallTableName  = "Module"
	overallTableTitle = "Overall Automated Regression Results"
)

// Section is one sheet of the report.
type Section struct {
	SheetTitle string
	// TableName heads the first column of the results table, defaults to SheetTitle.
	TableName string
	// TableTitle is written above the results table when set.
	TableTitle   string
	Results      []reportingapi.ReconciledApplicationResult
	ListFailures bool
}

// NewSection returns the section of a report section's results, listing their failures.
func NewSection(sheetTitle string, results []reportingapi.ReconciledApplicationResult) Section {
	return Section{SheetTitle: sheetTitle, Results: results, ListFailures: true}
}

// OverallSection summarizes sections in one row each.
func OverallSection(sections []Section) Section {
	var results []reportingapi.ReconciledApplicationResult
	for _, section := range sections {
		results = append(results, OverallResult(section.SheetTitle, section.Results))
	}
	return Section{
		SheetTitle: OverallSheetTitle,
		TableName:  overallTableName,
		TableTitle: overallTableTitle,
		Results:    results,
	}
}

// OverallResult sums the results of a section. Failure links are not carried over.
func OverallResult(sheetTitle string, results []reportingapi.ReconciledApplicationResult) reportingapi.ReconciledApplicationResult {
	ret := reportingapi.ReconciledApplicationResult{AppTitle: sheetTitle}
	for _, result := range results {
		ret.NumberPassing += result.NumberPassing
		ret.NumberFailing += result.NumberFailing
	}
	return ret
}

type Row struct {
	Name           string
	Total          int
	Passing        int
	Failing        int
	PercentPassing float64
}

func newRow(name string, passing, failing int) Row {
	row := Row{Name: name, Total: passing + failing, Passing: passing, Failing: failing}
	if row.Total > 0 {
		row.PercentPassing = float64(passing) / float64(row.Total)
	}
	return row
}

// Table is the results table of a section.
type Table struct {
	Name   string
	Rows   []Row
	Totals Row
	// AveragePercent is the mean of the rows' pass percentages, not weighted by their totals.
	AveragePercent float64
}

func NewTable(name string, results []reportingapi.ReconciledApplicationResult) Table {
	table := Table{Name: name}
	var passing, failing int
	var percentSum float64
	for _, result := range results {
		row := newRow(result.AppTitle, result.NumberPassing, result.NumberFailing)
		table.Rows = append(table.Rows, row)
		passing += row.Passing
		failing += row.Failing
		percentSum += row.PercentPassing
	}
	table.Totals = newRow("TOTAL", passing, failing)
	if len(table.Rows) > 0 {
		table.AveragePercent = percentSum / float64(len(table.Rows))
	}
	return table
}

func (s Section) Table() Table {
	name := s.TableName
	if name == "" {
		name = s.SheetTitle
	}
	return NewTable(name, s.Results)
}
