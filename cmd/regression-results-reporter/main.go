// regression-results-reporter reads the recent builds of the regression jobs
// and writes their reconciled results to a workbook.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/pflag"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport"
)

func main() {
	cmd := regressionreport.NewRegressionReportCommand()
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
