// Package reconcile walks the recent builds of a job and reduces them to one
// result per application or per test case, keeping what the latest build
// reported for each.
package reconcile

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/classifier"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
	"github.com/openshift/ci-regression-reporter/pkg/results"
)

type Engine struct {
	reader        reportingapi.BuildReader
	historyLength int
	observer      Observer
	logger        *logrus.Entry
}

type Option func(*Engine)

// WithHistoryLength sets how many builds before the latest one are read.
func WithHistoryLength(n int) Option {
	return func(e *Engine) {
		e.historyLength = n
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(reader reportingapi.BuildReader, opts ...Option) *Engine {
	e := &Engine{
		reader:        reader,
		historyLength: reportconfig.DefaultHistoryLength,
		observer:      noopObserver{},
		logger:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Window lists the build numbers from last-history to last, ascending.
// Build numbers start at 1, lower ones are left out.
func Window(last, history int) []int {
	first := last - history
	if first < 1 {
		first = 1
	}
	var ret []int
	for number := first; number <= last; number++ {
		ret = append(ret, number)
	}
	return ret
}

func (e *Engine) window(ctx context.Context, cfg reportconfig.JobConfig) ([]int, error) {
	last, err := e.reader.LatestBuildNumber(ctx, cfg.View, cfg.Job)
	if err != nil {
		return nil, fmt.Errorf("failed to determine the latest build of %s/%s: %w", cfg.View, cfg.Job, err)
	}
	return Window(last, e.historyLength), nil
}

// ComposeRerunRegressionResults reconciles a first-run job and its rerun job
// per application. Both windows are read in full before merging; any error
// other than a missing build aborts the operation without results.
func (e *Engine) ComposeRerunRegressionResults(ctx context.Context, cfg reportconfig.RerunJobConfig) ([]reportingapi.ReconciledApplicationResult, error) {
	classifiers, err := classifier.ForKinds(cfg.Classifiers)
	if err != nil {
		return nil, err
	}
	firstRun, rerun := cfg.ForJob(false), cfg.ForJob(true)
	firstWindow, err := e.window(ctx, firstRun)
	if err != nil {
		return nil, err
	}
	rerunWindow, err := e.window(ctx, rerun)
	if err != nil {
		return nil, err
	}

	t := &tracker{observer: e.observer, total: len(firstWindow) + len(rerunWindow)}
	firstResults, err := e.latestPerApplication(ctx, firstRun, classifiers, firstWindow, t)
	if err != nil {
		return nil, err
	}
	rerunResults, err := e.latestPerApplication(ctx, rerun, classifiers, rerunWindow, t)
	if err != nil {
		return nil, err
	}
	return MergeRerunResults(firstResults, rerunResults), nil
}

func (e *Engine) latestPerApplication(ctx context.Context, cfg reportconfig.JobConfig, classifiers []classifier.Classifier, window []int, t *tracker) ([]reportingapi.ReconciledApplicationResult, error) {
	var ret []reportingapi.ReconciledApplicationResult
	err := e.forEachBuild(ctx, cfg, classifiers, window, t, func(acc *reportingapi.AccumulatedBuildResult) {
		ret = UpsertLatest(ret, reportingapi.ReconciledApplicationResult{
			AppTitle:      acc.AppTitle,
			NumberPassing: acc.NumberPassing,
			NumberFailing: acc.NumberFailing,
			FailureLinks:  acc.FailureLinks,
		}, byAppTitle)
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ReconcileTestCases reads the window of a single job and keeps the latest
// outcome of every test case, keyed by its normalized name.
func (e *Engine) ReconcileTestCases(ctx context.Context, cfg reportconfig.JobConfig) ([]reportingapi.ReconciledTestCase, error) {
	classifiers, err := classifier.ForKinds(cfg.Classifiers)
	if err != nil {
		return nil, err
	}
	delimiter, err := cfg.TestNameDelimiterRegexp()
	if err != nil {
		return nil, results.ForReason(results.ReasonConfiguration).WithError(err).Errorf("invalid test name delimiter for %s/%s: %v", cfg.View, cfg.Job, err)
	}
	window, err := e.window(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var ret []reportingapi.ReconciledTestCase
	t := &tracker{observer: e.observer, total: len(window)}
	err = e.forEachBuild(ctx, cfg, classifiers, window, t, func(acc *reportingapi.AccumulatedBuildResult) {
		for _, c := range acc.TestCases {
			ret = UpsertLatest(ret, reportingapi.ReconciledTestCase{
				CaseName:    NormalizeCaseName(c.Name, delimiter),
				IsPassing:   c.IsPassing,
				FailureLink: c.FailureLink,
			}, byCaseName)
		}
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ComposeSingleJobRegressionResults reconciles the cases of one job and
// reports them under appTitle.
func (e *Engine) ComposeSingleJobRegressionResults(ctx context.Context, cfg reportconfig.JobConfig, appTitle string) (*reportingapi.ReconciledApplicationResult, error) {
	cases, err := e.ReconcileTestCases(ctx, cfg)
	if err != nil {
		return nil, err
	}
	summary := Summarize(appTitle, cases)
	return &summary, nil
}

func (e *Engine) forEachBuild(ctx context.Context, cfg reportconfig.JobConfig, classifiers []classifier.Classifier, window []int, t *tracker, handle func(*reportingapi.AccumulatedBuildResult)) error {
	for _, number := range window {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger := e.logger.WithFields(logrus.Fields{"view": cfg.View, "job": cfg.Job, "build": number})
		id := reportingapi.BuildIdentity{View: cfg.View, Job: cfg.Job, Number: number}
		acc, err := classifier.ClassifyBuild(ctx, e.reader, cfg, classifiers, id)
		if err != nil {
			if reportingapi.IsNotFound(err) {
				logger.Info("Build not found, skipping.")
				t.processed(cfg.Job, number, true)
				continue
			}
			return fmt.Errorf("failed to process build %s: %w", id, err)
		}
		logger.WithFields(logrus.Fields{"passing": acc.NumberPassing, "failing": acc.NumberFailing}).Debug("Processed build.")
		handle(acc)
		t.processed(cfg.Job, number, false)
	}
	return nil
}
