package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
)

const (
	headerFill = "A9D08E"
	totalFill  = "E7E6E6"
	linkColor  = "0563C1"

	// percentFormat is the built-in "0%" number format.
	percentFormat = 9
)

type styles struct {
	title        int
	header       int
	name         int
	number       int
	percent      int
	total        int
	totalPercent int
	averageLabel int
	listHeader   int
	link         int

	conditionalPass int
	conditionalWarn int
	conditionalFail int
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func thinBorder() []excelize.Border {
	var ret []excelize.Border
	for _, side := range []string{"left", "right", "top", "bottom"} {
		ret = append(ret, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return ret
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{}
	for _, def := range []struct {
		target *int
		style  *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.header, &excelize.Style{Fill: solid(headerFill), Font: &excelize.Font{Size: 14}, Border: thinBorder()}},
		{&s.name, &excelize.Style{Font: &excelize.Font{Size: 14}, Border: thinBorder()}},
		{&s.number, &excelize.Style{Border: thinBorder()}},
		{&s.percent, &excelize.Style{Border: thinBorder(), NumFmt: percentFormat}},
		{&s.total, &excelize.Style{Fill: solid(totalFill), Font: &excelize.Font{Bold: true}, Border: thinBorder()}},
		{&s.totalPercent, &excelize.Style{Border: thinBorder(), NumFmt: percentFormat}},
		{&s.averageLabel, &excelize.Style{Fill: solid("000000"), Font: &excelize.Font{Bold: true, Color: "FFFFFF"}}},
		{&s.listHeader, &excelize.Style{Font: &excelize.Font{Bold: true, Underline: "single", Size: 14}}},
		{&s.link, &excelize.Style{Font: &excelize.Font{Underline: "single", Color: linkColor}}},
	} {
		id, err := f.NewStyle(def.style)
		if err != nil {
			return nil, fmt.Errorf("failed to create cell style: %w", err)
		}
		*def.target = id
	}

	for _, def := range []struct {
		target     *int
		fill, font string
	}{
		{&s.conditionalPass, "C6EFCE", "006100"},
		{&s.conditionalWarn, "FFEB9C", "9C6500"},
		{&s.conditionalFail, "FFC7CE", "9C0006"},
	} {
		id, err := f.NewConditionalStyle(&excelize.Style{Fill: solid(def.fill), Font: &excelize.Font{Color: def.font}})
		if err != nil {
			return nil, fmt.Errorf("failed to create conditional style: %w", err)
		}
		*def.target = id
	}
	return s, nil
}

// percentRules color pass percentages by threshold. The rules are listed by
// priority, so a value at the pass threshold is only colored as passing.
func (s *styles) percentRules(formatting reportconfig.PercentageFormatting) []excelize.ConditionalFormatOptions {
	pass := strconv.FormatFloat(formatting.PassThreshold, 'f', -1, 64)
	warn := strconv.FormatFloat(formatting.WarnThreshold, 'f', -1, 64)
	return []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: ">=", Format: s.conditionalPass, Value: pass},
		{Type: "cell", Criteria: ">=", Format: s.conditionalWarn, Value: warn},
		{Type: "cell", Criteria: "<", Format: s.conditionalFail, Value: warn},
	}
}
