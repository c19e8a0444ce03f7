package reportconfig

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/openshift/ci-regression-reporter/pkg/results"
)

const (
	// DefaultBaseURL is the build server the regression jobs report to.
	DefaultBaseURL = "http://172.31.8.12:8080"
	// DefaultHistoryLength is how many builds before the latest one are scanned.
	DefaultHistoryLength = 30

	// OverallSheetTitle is reserved for the sheet summarizing all sections.
	OverallSheetTitle = "Regression Results"

	defaultPassThreshold = 0.995
	defaultWarnThreshold = 0.75
)

type ClassifierKind string

const (
	// ClassifierApplicationName resolves the owning application and collects failure links.
	ClassifierApplicationName ClassifierKind = "application-name"
	// ClassifierTestCaseNames collects every case with its outcome.
	ClassifierTestCaseNames ClassifierKind = "test-case-names"
)

// Config represents the configuration file of the regression report
type Config struct {
	// BaseURL is the address of the build server. Defaults to DefaultBaseURL.
	BaseURL string `json:"baseURL,omitempty"`
	// HistoryLength is how many builds before the latest one are scanned per job.
	// Defaults to DefaultHistoryLength; 0 reads the latest build only.
	HistoryLength *int `json:"historyLength,omitempty"`
	// PercentageFormatting holds the thresholds used to color pass percentages.
	PercentageFormatting *PercentageFormatting `json:"percentageFormatting,omitempty"`
	// RerunJobs are job pairs reconciled per application, one report section each.
	RerunJobs []RerunJobConfig `json:"rerunJobs,omitempty"`
	// JobGroups are sets of single jobs reconciled per test case, one report section per group.
	JobGroups []JobGroupConfig `json:"jobGroups,omitempty"`
}

// PercentageFormatting colors pass percentages at or above PassThreshold as
// passing, at or above WarnThreshold as a warning and anything lower as failing.
type PercentageFormatting struct {
	PassThreshold float64 `json:"passThreshold"`
	WarnThreshold float64 `json:"warnThreshold"`
}

// FilepathRange selects class name segments [Start, End) as the file path of a failure.
type FilepathRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// JobConfig is everything the classifiers and the engine need to read one job.
type JobConfig struct {
	View string `json:"view"`
	Job  string `json:"job,omitempty"`
	// ApplicationClassnameIndex is the class name segment holding the application key.
	ApplicationClassnameIndex int `json:"applicationClassnameIndex"`
	// ApplicationNameDelimiter, when present in the application segment, prefixes the key.
	ApplicationNameDelimiter string `json:"applicationNameDelimiter,omitempty"`
	// TestNameDelimiter is a regular expression; the second token of a case name split by it is the case's key.
	TestNameDelimiter string `json:"testNameDelimiter,omitempty"`
	// TestFilenameIndex is the class name segment prefixed to failure link values.
	TestFilenameIndex *int              `json:"testFilenameIndex,omitempty"`
	FilepathRange     *FilepathRange    `json:"filepathRange,omitempty"`
	AppTitleMappings  map[string]string `json:"appTitleMappings,omitempty"`
	Classifiers       []ClassifierKind  `json:"classifiers"`
}

// TestNameDelimiterRegexp compiles TestNameDelimiter, returning nil when unset.
func (c JobConfig) TestNameDelimiterRegexp() (*regexp.Regexp, error) {
	if c.TestNameDelimiter == "" {
		return nil, nil
	}
	return regexp.Compile(c.TestNameDelimiter)
}

// FilePath joins the configured range of segments, clamped to what is available.
func (c JobConfig) FilePath(segments []string) string {
	if c.FilepathRange == nil {
		return ""
	}
	start, end := c.FilepathRange.Start, c.FilepathRange.End
	if end > len(segments) {
		end = len(segments)
	}
	if start >= end {
		return ""
	}
	return strings.Join(segments[start:end], "/")
}

// RerunJobConfig pairs a first-run job with the job that reruns its failures.
type RerunJobConfig struct {
	SheetTitle string `json:"sheetTitle"`
	RerunJob   string `json:"rerunJob"`
	JobConfig  `json:",inline"`
}

// ForJob returns the job configuration addressing the first run or the rerun.
func (c RerunJobConfig) ForJob(isRerun bool) JobConfig {
	ret := c.JobConfig
	if isRerun {
		ret.Job = c.RerunJob
	}
	return ret
}

// GroupJob binds one job of a group to the title its results are reported under.
type GroupJob struct {
	AppTitle string `json:"appTitle"`
	Job      string `json:"job"`
}

// JobGroupConfig is a set of jobs sharing one view and one way of classifying cases.
type JobGroupConfig struct {
	SheetTitle string     `json:"sheetTitle"`
	Jobs       []GroupJob `json:"jobs"`
	JobConfig  `json:",inline"`
}

// ConfigFor returns the job configuration for the job reported under appTitle.
func (c JobGroupConfig) ConfigFor(appTitle string) (JobConfig, bool) {
	for _, job := range c.Jobs {
		if job.AppTitle == appTitle {
			ret := c.JobConfig
			ret.Job = job.Job
			return ret, true
		}
	}
	return JobConfig{}, false
}

// LoadConfig loads the config from a given file
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, results.ForReason(results.ReasonConfiguration).WithError(err).Errorf("failed to load config file %s: %v", file, err)
	}
	return ParseConfig(data)
}

// ParseConfig strictly decodes, defaults and validates raw configuration.
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, results.ForReason(results.ReasonConfiguration).WithError(err).Errorf("failed to unmarshal config file (strict mode): %v", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, results.ForReason(results.ReasonConfiguration).WithError(err).Errorf("failed to validate config file: %v", err)
	}
	return config, nil
}

// PrintConfig re-serializes the config, dropping comments and sorting keys.
func PrintConfig(w io.Writer, c *Config) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s", raw)
	return err
}

// History returns the configured history length, or the default one.
func (c *Config) History() int {
	return ptr.Deref(c.HistoryLength, DefaultHistoryLength)
}

// Formatting returns the configured percentage thresholds, or the default ones.
func (c *Config) Formatting() PercentageFormatting {
	if c.PercentageFormatting == nil {
		return PercentageFormatting{PassThreshold: defaultPassThreshold, WarnThreshold: defaultWarnThreshold}
	}
	return *c.PercentageFormatting
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HistoryLength == nil {
		c.HistoryLength = ptr.To(DefaultHistoryLength)
	}
	if c.PercentageFormatting == nil {
		formatting := c.Formatting()
		c.PercentageFormatting = &formatting
	}
}
