// Package generate implements the command writing the regression report.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/progress"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reconcile"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/workbook"
	"github.com/openshift/ci-regression-reporter/pkg/results"
)

type Options struct {
	config *reportconfig.Config
	reader reportingapi.BuildReader

	output    string
	overwrite bool
	timeout   time.Duration

	observer        reconcile.Observer
	// bar draws progress on a terminal, nil when progress is not shown.
	bar             *progress.Bar
	metrics         *progress.Metrics
	metricsTextfile string
	summaryOut      io.Writer
	logger          *logrus.Entry

	closers []io.Closer
}

// Run reconciles every configured section and writes the workbook. A section
// that fails is left out of the workbook, the others are still written; the
// failures are returned together.
func (o *Options) Run(ctx context.Context) error {
	if !o.overwrite {
		if _, err := os.Stat(o.output); err == nil {
			return results.ForReason(results.ReasonWritingReport).Errorf("%s already exists, pass --overwrite to replace it", o.output)
		}
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	sections, errs := o.composeSections(ctx)
	if len(sections) > 0 {
		if err := o.writeWorkbook(sections); err != nil {
			errs = append(errs, err)
		} else {
			workbook.WriteSummary(o.summaryOut, sections)
		}
	}
	if o.metricsTextfile != "" {
		if err := o.metrics.WriteTextfile(o.metricsTextfile); err != nil {
			errs = append(errs, results.ForReason(results.ReasonWritingReport).WithError(err).Errorf("failed to write metrics to %s: %v", o.metricsTextfile, err))
		}
	}
	return utilerrors.NewAggregate(errs)
}

func (o *Options) engine(logger *logrus.Entry, observer reconcile.Observer) *reconcile.Engine {
	return reconcile.NewEngine(o.reader,
		reconcile.WithHistoryLength(o.config.History()),
		reconcile.WithObserver(observer),
		reconcile.WithLogger(logger),
	)
}

func (o *Options) composeSections(ctx context.Context) ([]workbook.Section, []error) {
	var sections []workbook.Section
	var errs []error
	record := func(logger *logrus.Entry, title string, reconciled []reportingapi.ReconciledApplicationResult, err error) {
		if err != nil {
			o.sectionFailed(logger, err)
			errs = append(errs, fmt.Errorf("section %q: %w", title, err))
			return
		}
		logger.WithField("applications", len(reconciled)).Info("Reconciled section.")
		sections = append(sections, workbook.NewSection(title, reconciled))
	}

	for _, rerun := range o.config.RerunJobs {
		logger := o.logger.WithField("section", rerun.SheetTitle)
		logger.Info("Reconciling first runs and reruns.")
		observer := o.observer
		if o.bar != nil {
			observer = reconcile.Observers{o.observer, o.bar}
		}
		reconciled, err := o.engine(logger, observer).ComposeRerunRegressionResults(ctx, rerun)
		record(logger, rerun.SheetTitle, reconciled, err)
	}
	for _, group := range o.config.JobGroups {
		logger := o.logger.WithField("section", group.SheetTitle)
		logger.Info("Reconciling test cases of the job group.")
		reconciled, err := o.composeGroup(ctx, logger, group)
		record(logger, group.SheetTitle, reconciled, err)
	}
	return sections, errs
}

// composeGroup reconciles every job of a group in turn. One failing job fails
// the group. The progress line of a group advances once per job.
func (o *Options) composeGroup(ctx context.Context, logger *logrus.Entry, group reportconfig.JobGroupConfig) ([]reportingapi.ReconciledApplicationResult, error) {
	var line reconcile.Observer = reconcile.ObserverFunc(func(reconcile.Progress) {})
	if o.bar != nil {
		line = o.bar.WithLabel(group.View)
	}
	var ret []reportingapi.ReconciledApplicationResult
	for i, job := range group.Jobs {
		cfg, _ := group.ConfigFor(job.AppTitle)
		result, err := o.engine(logger.WithField("app", job.AppTitle), o.observer).ComposeSingleJobRegressionResults(ctx, cfg, job.AppTitle)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", job.Job, err)
		}
		ret = append(ret, *result)
		line.BuildProcessed(reconcile.Progress{Job: job.Job, Completed: i + 1, Total: len(group.Jobs)})
	}
	return ret, nil
}

func (o *Options) sectionFailed(logger *logrus.Entry, err error) {
	logger.WithError(err).WithField("reason", results.FullReason(err)).Error("Failed to reconcile section, it is left out of the report.")
}

func (o *Options) writeWorkbook(sections []workbook.Section) error {
	w, err := workbook.NewWriter(o.config.Formatting())
	if err != nil {
		return results.ForReason(results.ReasonWritingReport).ForError(err)
	}
	defer w.Close()

	for _, section := range append([]workbook.Section{workbook.OverallSection(sections)}, sections...) {
		if err := w.WriteSheet(section); err != nil {
			return results.ForReason(results.ReasonWritingReport).ForError(err)
		}
	}
	o.logger.WithField("output", o.output).Info("Saving workbook.")
	if err := w.SaveAs(o.output); err != nil {
		return results.ForReason(results.ReasonWritingReport).ForError(err)
	}
	return nil
}

// Close releases the log file, if any.
func (o *Options) Close() {
	for _, closer := range o.closers {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close.")
		}
	}
}
