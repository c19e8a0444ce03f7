// Package classifier turns the raw test cases of one build into an
// AccumulatedBuildResult. Classifiers are applied in the order a job
// configures them, each mutating the same accumulator.
package classifier

import (
	"context"
	"fmt"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
	"github.com/openshift/ci-regression-reporter/pkg/results"
)

// Classifier inspects one test case and records what it cares about in acc.
// link is the failure link of the case, nil when the case did not fail.
type Classifier interface {
	Name() string
	HandleTestCase(cfg reportconfig.JobConfig, c reportingapi.RawTestCase, segments []string, id reportingapi.BuildIdentity, link *reportingapi.FailureLink, acc *reportingapi.AccumulatedBuildResult)
}

// Finalizer is implemented by classifiers that need a last look at the
// build once all of its cases were handled and the counts are set.
type Finalizer interface {
	Finalize(ctx context.Context, cfg reportconfig.JobConfig, id reportingapi.BuildIdentity, reader reportingapi.BuildReader, acc *reportingapi.AccumulatedBuildResult) error
}

// ForKind returns the classifier configured by kind.
func ForKind(kind reportconfig.ClassifierKind) (Classifier, error) {
	switch kind {
	case reportconfig.ClassifierApplicationName:
		return ApplicationNameClassifier{}, nil
	case reportconfig.ClassifierTestCaseNames:
		return TestCaseNamesClassifier{}, nil
	default:
		return nil, results.ForReason(results.ReasonConfiguration).Errorf("unknown classifier %q", kind)
	}
}

// ForKinds resolves the classifiers of a job, keeping their order.
func ForKinds(kinds []reportconfig.ClassifierKind) ([]Classifier, error) {
	var ret []Classifier
	for _, kind := range kinds {
		c, err := ForKind(kind)
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// ClassifyBuild fetches the test report of one build and runs every case of
// its first suite through the classifiers. Errors from the reader are
// returned wrapped, so not-found builds can still be recognized.
func ClassifyBuild(ctx context.Context, reader reportingapi.BuildReader, cfg reportconfig.JobConfig, classifiers []Classifier, id reportingapi.BuildIdentity) (*reportingapi.AccumulatedBuildResult, error) {
	report, err := reader.TestReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the test report of %s: %w", id, err)
	}

	acc := &reportingapi.AccumulatedBuildResult{}
	if len(report.Suites) > 0 {
		for _, c := range report.Suites[0].Cases {
			segments := c.Segments()
			link := failureLink(reader, cfg, c, segments, id)
			for _, classifier := range classifiers {
				classifier.HandleTestCase(cfg, c, segments, id, link, acc)
			}
		}
	}
	acc.NumberPassing = report.PassCount
	acc.NumberFailing = report.FailCount

	for _, classifier := range classifiers {
		finalizer, ok := classifier.(Finalizer)
		if !ok {
			continue
		}
		if err := finalizer.Finalize(ctx, cfg, id, reader, acc); err != nil {
			return nil, fmt.Errorf("%s classifier failed to finalize %s: %w", classifier.Name(), id, err)
		}
	}
	return acc, nil
}

func failureLink(reader reportingapi.BuildReader, cfg reportconfig.JobConfig, c reportingapi.RawTestCase, segments []string, id reportingapi.BuildIdentity) *reportingapi.FailureLink {
	if !c.Status.IsFailure() {
		return nil
	}
	value := c.Name
	if index := cfg.TestFilenameIndex; index != nil && len(segments) > *index {
		value = segments[*index] + "." + value
	}
	return &reportingapi.FailureLink{
		Value:    value,
		URL:      reader.FailureURL(id, segments, c.Name),
		FilePath: cfg.FilePath(segments),
	}
}
