package regressionreport

import (
	"github.com/spf13/cobra"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/configcheck"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/generate"
)

// Usage
// 1. read the latest builds of every configured job from the build server
// 2. keep only the latest result of every application (rerun jobs) or test case (job groups)
// 3. merge reruns into their first runs, so a test passing on rerun counts as passing
// 4. write one sheet per section plus an overall sheet, and print the totals

func NewRegressionReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "regression-results-reporter",
		Long: `Commands reporting the results of the regression jobs of the build server`,
	}

	cmd.AddCommand(generate.NewGenerateCommand())
	cmd.AddCommand(configcheck.NewCheckConfigCommand())

	return cmd
}
