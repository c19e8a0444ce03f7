package reportconfig

import (
	"fmt"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	maxSheetTitleLength         = 31
	invalidSheetTitleCharacters = `:\/?*[]`
)

var knownClassifiers = sets.New[ClassifierKind](ClassifierApplicationName, ClassifierTestCaseNames)

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.History() < 0 {
		errs = append(errs, fmt.Errorf("historyLength must not be negative, got %d", c.History()))
	}
	if f := c.PercentageFormatting; f != nil && (f.WarnThreshold > f.PassThreshold || f.PassThreshold > 1 || f.WarnThreshold < 0) {
		errs = append(errs, fmt.Errorf("percentageFormatting thresholds must satisfy 0 <= warnThreshold <= passThreshold <= 1, got %v/%v", f.WarnThreshold, f.PassThreshold))
	}
	if len(c.RerunJobs) == 0 && len(c.JobGroups) == 0 {
		errs = append(errs, fmt.Errorf("at least one of rerunJobs or jobGroups must be configured"))
	}

	titles := sets.New[string]()
	addTitle := func(where, title string) {
		if title == "" {
			errs = append(errs, fmt.Errorf("%s: sheetTitle is required", where))
			return
		}
		if len([]rune(title)) > maxSheetTitleLength || strings.ContainsAny(title, invalidSheetTitleCharacters) {
			errs = append(errs, fmt.Errorf("%s: sheetTitle %q must be at most %d characters long and must not contain any of %s", where, title, maxSheetTitleLength, invalidSheetTitleCharacters))
		}
		if title == OverallSheetTitle {
			errs = append(errs, fmt.Errorf("%s: sheetTitle %q is reserved for the overall results", where, title))
		}
		if titles.Has(title) {
			errs = append(errs, fmt.Errorf("%s: sheetTitle %q is used by more than one section", where, title))
		}
		titles.Insert(title)
	}

	for i, rerun := range c.RerunJobs {
		where := fmt.Sprintf("rerunJobs[%d]", i)
		addTitle(where, rerun.SheetTitle)
		if rerun.Job == "" {
			errs = append(errs, fmt.Errorf("%s: job is required", where))
		}
		if rerun.RerunJob == "" {
			errs = append(errs, fmt.Errorf("%s: rerunJob is required", where))
		}
		errs = append(errs, rerun.JobConfig.validate(where, ClassifierApplicationName)...)
	}

	for i, group := range c.JobGroups {
		where := fmt.Sprintf("jobGroups[%d]", i)
		addTitle(where, group.SheetTitle)
		if group.Job != "" {
			errs = append(errs, fmt.Errorf("%s: job must not be set on a group, list jobs under jobs instead", where))
		}
		if len(group.Jobs) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one job is required", where))
		}
		appTitles := sets.New[string]()
		for j, job := range group.Jobs {
			if job.AppTitle == "" || job.Job == "" {
				errs = append(errs, fmt.Errorf("%s.jobs[%d]: appTitle and job are required", where, j))
				continue
			}
			if appTitles.Has(job.AppTitle) {
				errs = append(errs, fmt.Errorf("%s.jobs[%d]: appTitle %q is used more than once", where, j, job.AppTitle))
			}
			appTitles.Insert(job.AppTitle)
		}
		errs = append(errs, group.JobConfig.validate(where, ClassifierTestCaseNames)...)
	}

	return utilerrors.NewAggregate(errs)
}

func (c JobConfig) validate(where string, required ClassifierKind) []error {
	var errs []error
	if c.View == "" {
		errs = append(errs, fmt.Errorf("%s: view is required", where))
	}
	if c.ApplicationClassnameIndex < 0 {
		errs = append(errs, fmt.Errorf("%s: applicationClassnameIndex must not be negative", where))
	}
	if c.TestFilenameIndex != nil && *c.TestFilenameIndex < 0 {
		errs = append(errs, fmt.Errorf("%s: testFilenameIndex must not be negative", where))
	}
	if r := c.FilepathRange; r != nil && (r.Start < 0 || r.End < r.Start) {
		errs = append(errs, fmt.Errorf("%s: filepathRange must satisfy 0 <= start <= end, got [%d, %d)", where, r.Start, r.End))
	}
	if _, err := c.TestNameDelimiterRegexp(); err != nil {
		errs = append(errs, fmt.Errorf("%s: testNameDelimiter is not a valid regular expression: %w", where, err))
	}

	configured := sets.New[ClassifierKind]()
	for _, kind := range c.Classifiers {
		if !knownClassifiers.Has(kind) {
			errs = append(errs, fmt.Errorf("%s: unknown classifier %q, valid values are: %+q", where, kind, sets.List(knownClassifiers)))
			continue
		}
		if configured.Has(kind) {
			errs = append(errs, fmt.Errorf("%s: classifier %q is listed more than once", where, kind))
		}
		configured.Insert(kind)
	}
	if !configured.Has(required) {
		errs = append(errs, fmt.Errorf("%s: classifier %q is required", where, required))
	}
	return errs
}
