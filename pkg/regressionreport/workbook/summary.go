package workbook

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary renders the results of every section as one console table.
func WriteSummary(out io.Writer, sections []Section) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Application", "Total", "Passing", "Failing", "Percent Passing"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Total", Align: text.AlignRight},
		{Name: "Passing", Align: text.AlignRight},
		{Name: "Failing", Align: text.AlignRight},
		{Name: "Percent Passing", Align: text.AlignRight},
	})

	var overall []Row
	for i, section := range sections {
		if i > 0 {
			t.AppendSeparator()
		}
		tbl := section.Table()
		for _, row := range tbl.Rows {
			t.AppendRow(table.Row{section.SheetTitle, row.Name, row.Total, row.Passing, row.Failing, percent(row.PercentPassing)})
		}
		overall = append(overall, Row{Passing: tbl.Totals.Passing, Failing: tbl.Totals.Failing})
	}

	var passing, failing int
	for _, row := range overall {
		passing += row.Passing
		failing += row.Failing
	}
	totals := newRow("Total", passing, failing)
	t.AppendFooter(table.Row{"", totals.Name, totals.Total, totals.Passing, totals.Failing, percent(totals.PercentPassing)})
	t.Render()
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}
