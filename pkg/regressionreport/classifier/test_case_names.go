package classifier

import (
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
)

// TestCaseNamesClassifier records every case with its outcome.
type TestCaseNamesClassifier struct{}

func (TestCaseNamesClassifier) Name() string {
	return string(reportconfig.ClassifierTestCaseNames)
}

func (TestCaseNamesClassifier) HandleTestCase(_ reportconfig.JobConfig, c reportingapi.RawTestCase, _ []string, _ reportingapi.BuildIdentity, link *reportingapi.FailureLink, acc *reportingapi.AccumulatedBuildResult) {
	acc.TestCases = append(acc.TestCases, reportingapi.TestCaseResult{
		Name:        c.Name,
		IsPassing:   !c.Status.IsFailure(),
		FailureLink: link,
	})
}
