package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
)

const (
	firstColumn = 2
	firstRow    = 2

	defaultSheet = "Sheet1"
)

// Writer builds a workbook sheet by sheet, in the order sections are written.
type Writer struct {
	file       *excelize.File
	styles     *styles
	formatting reportconfig.PercentageFormatting
	sheets     int
}

func NewWriter(formatting reportconfig.PercentageFormatting) (*Writer, error) {
	f := excelize.NewFile()
	s, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{file: f, styles: s, formatting: formatting}, nil
}

func cell(column, row int) string {
	name, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		// only reachable with non-positive coordinates, which the layout never produces
		panic(err)
	}
	return name
}

func columnName(column int) string {
	name, err := excelize.ColumnNumberToName(column)
	if err != nil {
		panic(err)
	}
	return name
}

// sheetWriter collects the first error of a sequence of cell updates.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) value(column, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	c := cell(column, row)
	if w.err = w.file.SetCellValue(w.sheet, c, value); w.err == nil {
		w.err = w.file.SetCellStyle(w.sheet, c, c, style)
	}
}

func (w *sheetWriter) formula(column, row int, formula string, style int) {
	if w.err != nil {
		return
	}
	c := cell(column, row)
	if w.err = w.file.SetCellFormula(w.sheet, c, formula); w.err == nil {
		w.err = w.file.SetCellStyle(w.sheet, c, c, style)
	}
}

func (w *sheetWriter) link(column, row int, value, url string, style int) {
	w.value(column, row, value, style)
	if w.err != nil {
		return
	}
	w.err = w.file.SetCellHyperLink(w.sheet, cell(column, row), url, "External")
}

func (w *sheetWriter) width(column int, width float64) {
	if w.err != nil {
		return
	}
	name := columnName(column)
	w.err = w.file.SetColWidth(w.sheet, name, name, width)
}

func (w *sheetWriter) conditional(fromColumn, fromRow, toColumn, toRow int, rules []excelize.ConditionalFormatOptions) {
	if w.err != nil {
		return
	}
	w.err = w.file.SetConditionalFormat(w.sheet, cell(fromColumn, fromRow)+":"+cell(toColumn, toRow), rules)
}

func (w *Writer) addSheet(title string) error {
	if w.sheets > 0 {
		index, err := w.file.GetSheetIndex(title)
		if err != nil {
			return err
		}
		if index != -1 {
			return fmt.Errorf("a sheet named %q was already written", title)
		}
	}
	w.sheets++
	if w.sheets == 1 {
		return w.file.SetSheetName(defaultSheet, title)
	}
	_, err := w.file.NewSheet(title)
	return err
}

// WriteSheet adds a sheet holding the results table of section, followed by
// the list of failures per application when the section lists them.
func (w *Writer) WriteSheet(section Section) error {
	if err := w.addSheet(section.SheetTitle); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", section.SheetTitle, err)
	}
	sw := &sheetWriter{file: w.file, sheet: section.SheetTitle}
	next := w.writeTable(sw, section)
	if section.ListFailures {
		w.writeFailures(sw, section, next+1)
	}
	if sw.err != nil {
		return fmt.Errorf("failed to write sheet %q: %w", section.SheetTitle, sw.err)
	}
	return nil
}

// writeTable lays out the results table from B2 and returns the row after it.
func (w *Writer) writeTable(sw *sheetWriter, section Section) int {
	table := section.Table()
	col, row := firstColumn, firstRow
	if section.TableTitle != "" {
		sw.value(col, row-1, section.TableTitle, w.styles.title)
	}

	sw.width(col, 35)
	sw.width(col+4, 20)
	for i, header := range []string{table.Name, "Total", "Passing", "Failing", "Percent Passing"} {
		sw.value(col+i, row, header, w.styles.header)
	}

	row++
	start := row
	for _, r := range table.Rows {
		sw.value(col, row, r.Name, w.styles.name)
		sw.value(col+1, row, r.Total, w.styles.number)
		sw.value(col+2, row, r.Passing, w.styles.number)
		sw.value(col+3, row, r.Failing, w.styles.number)
		sw.value(col+4, row, r.PercentPassing, w.styles.percent)
		row++
	}

	sw.value(col, row, table.Totals.Name, w.styles.total)
	sw.width(col+5, 15)
	sw.value(col+5, row-1, "Avg. % Pass", w.styles.averageLabel)
	if len(table.Rows) == 0 {
		// SUM over an empty range would reference the totals row itself.
		for i, value := range []int{table.Totals.Total, table.Totals.Passing, table.Totals.Failing} {
			sw.value(col+1+i, row, value, w.styles.total)
		}
		sw.value(col+4, row, table.Totals.PercentPassing, w.styles.totalPercent)
		sw.value(col+5, row, table.AveragePercent, w.styles.totalPercent)
	} else {
		for i := 1; i <= 3; i++ {
			name := columnName(col + i)
			sw.formula(col+i, row, fmt.Sprintf("SUM(%s%d:%s%d)", name, start, name, row-1), w.styles.total)
		}
		total, passing, percent := cell(col+1, row), cell(col+2, row), columnName(col+4)
		sw.formula(col+4, row, fmt.Sprintf("IFERROR(%s/%s,0)", passing, total), w.styles.totalPercent)
		sw.formula(col+5, row, fmt.Sprintf("IFERROR(AVERAGE(%s%d:%s%d),0)", percent, start, percent, row-1), w.styles.totalPercent)
	}
	sw.conditional(col+4, start, col+4, row, w.styles.percentRules(w.formatting))
	sw.conditional(col+5, row, col+5, row, w.styles.percentRules(w.formatting))
	return row + 1
}

// writeFailures lists the failure links of every application below the table.
func (w *Writer) writeFailures(sw *sheetWriter, section Section, row int) {
	col := firstColumn
	sw.value(col, row, "Application", w.styles.listHeader)
	sw.value(col+1, row, "File Path", w.styles.listHeader)
	row++
	for _, result := range section.Results {
		row++
		sw.value(col, row, result.AppTitle, w.styles.name)
		row++
		for _, link := range result.FailureLinks {
			sw.link(col, row, link.Value, link.URL, w.styles.link)
			if link.FilePath != "" {
				sw.value(col+1, row, link.FilePath, w.styles.number)
			}
			row++
		}
	}
}

// SaveAs writes the workbook to path, with the first sheet active.
func (w *Writer) SaveAs(path string) error {
	w.file.SetActiveSheet(0)
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

// WriteTo streams the workbook to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	w.file.SetActiveSheet(0)
	return w.file.WriteTo(out)
}

func (w *Writer) Close() error {
	return w.file.Close()
}
