package generate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/utils/clock"
	"k8s.io/utils/ptr"

	"github.com/openshift/ci-regression-reporter/pkg/jenkins"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/progress"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportlib"
)

const (
	defaultOutput  = "regression_run.xlsx"
	xlsxExtension  = ".xlsx"
	historyFromCfg = -1
)

type generateFlags struct {
	Config *reportlib.ConfigFlags

	Output    string
	Overwrite bool

	BaseURL       string
	HistoryLength int
	HTTPRetries   int
	Username      string
	PasswordFile  string
	Timeout       time.Duration

	LogLevel        string
	LogFile         string
	MetricsTextfile string
	Progress        bool
}

func newGenerateFlags() *generateFlags {
	return &generateFlags{
		Config:        reportlib.NewConfigFlags(),
		Output:        defaultOutput,
		HistoryLength: historyFromCfg,
		HTTPRetries:   jenkins.DefaultRetryMax,
		LogLevel:      logrus.InfoLevel.String(),
		Progress:      true,
	}
}

func (f *generateFlags) BindFlags(fs *pflag.FlagSet) {
	f.Config.BindFlags(fs)

	fs.StringVar(&f.Output, "output", f.Output, "Path of the workbook to write. The .xlsx extension is added when missing.")
	fs.BoolVar(&f.Overwrite, "overwrite", f.Overwrite, "Replace the workbook if it already exists.")
	fs.StringVar(&f.BaseURL, "base-url", f.BaseURL, "Address of the build server, overriding the configuration.")
	fs.IntVar(&f.HistoryLength, "history-length", f.HistoryLength, "Number of builds before the latest one to read per job, overriding the configuration.")
	fs.IntVar(&f.HTTPRetries, "http-retries", f.HTTPRetries, "Number of retries of failed requests to the build server. Missing builds are never retried.")
	fs.StringVar(&f.Username, "username", f.Username, "User to authenticate to the build server as.")
	fs.StringVar(&f.PasswordFile, "password-file", f.PasswordFile, "File holding the password or API token of --username.")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "Upper bound of the whole report generation, unbounded when zero.")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "Level of logging: one of panic, fatal, error, warning, info, debug or trace.")
	fs.StringVar(&f.LogFile, "log-file", f.LogFile, "Also append logs to this file.")
	fs.StringVar(&f.MetricsTextfile, "metrics-textfile", f.MetricsTextfile, "Write build counters in the Prometheus text format to this file.")
	fs.BoolVar(&f.Progress, "progress", f.Progress, "Show a progress bar when standard output is a terminal.")
}

func NewGenerateCommand() *cobra.Command {
	f := newGenerateFlags()

	cmd := &cobra.Command{
		Use:          "generate",
		Long:         `Reconcile the recent builds of the configured regression jobs and write the results to a workbook`,
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := f.Validate(); err != nil {
				logrus.WithError(err).Fatal("Flags are invalid")
			}
			o, err := f.ToOptions(ctx)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to build runtime options")
			}
			defer o.Close()

			if err := o.Run(ctx); err != nil {
				logrus.WithError(err).Fatal("Command failed")
			}

			return nil
		},

		Args: reportlib.NoArgs,
	}

	f.BindFlags(cmd.Flags())

	return cmd
}

// Validate checks to see if the user-input is likely to produce functional runtime options
func (f *generateFlags) Validate() error {
	if err := f.Config.Validate(); err != nil {
		return err
	}
	if f.Output == "" {
		return errors.New("--output is required")
	}
	if f.BaseURL != "" {
		if u, err := url.Parse(f.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("--base-url must be an absolute URL, got %q", f.BaseURL)
		}
	}
	if f.HistoryLength < historyFromCfg {
		return fmt.Errorf("--history-length must not be negative, got %d", f.HistoryLength)
	}
	if f.HTTPRetries < 0 {
		return fmt.Errorf("--http-retries must not be negative, got %d", f.HTTPRetries)
	}
	if (f.Username == "") != (f.PasswordFile == "") {
		return errors.New("--username and --password-file must be set together")
	}
	if f.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative, got %s", f.Timeout)
	}
	if _, err := logrus.ParseLevel(f.LogLevel); err != nil {
		return fmt.Errorf("--log-level is invalid: %w", err)
	}
	return nil
}

// ToOptions goes from the user input to the runtime values need to run the command.
// Expect to see unit tests on the options, but not on the flags which are simply value mappings.
func (f *generateFlags) ToOptions(ctx context.Context) (*Options, error) {
	level, err := logrus.ParseLevel(f.LogLevel)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)

	o := &Options{
		output:          f.Output,
		overwrite:       f.Overwrite,
		timeout:         f.Timeout,
		metricsTextfile: f.MetricsTextfile,
		metrics:         progress.NewMetrics(),
		summaryOut:      os.Stdout,
		logger:          logrus.NewEntry(logrus.StandardLogger()),
	}
	if !strings.HasSuffix(o.output, xlsxExtension) {
		o.output += xlsxExtension
	}

	if f.LogFile != "" {
		hook, err := reportlib.OpenLogFile(f.LogFile, clock.RealClock{})
		if err != nil {
			return nil, err
		}
		logrus.AddHook(hook)
		o.closers = append(o.closers, hook)
	}

	config, err := f.Config.Load()
	if err != nil {
		return nil, err
	}
	if f.BaseURL != "" {
		config.BaseURL = f.BaseURL
	}
	if f.HistoryLength != historyFromCfg {
		config.HistoryLength = ptr.To(f.HistoryLength)
	}
	o.config = config

	clientOpts := []jenkins.Opt{
		jenkins.WithRetryMax(f.HTTPRetries),
		jenkins.WithLogger(o.logger.WithField("component", "jenkins-client")),
	}
	if f.Username != "" {
		raw, err := os.ReadFile(f.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read --password-file: %w", err)
		}
		clientOpts = append(clientOpts, jenkins.WithAuthentication(f.Username, strings.TrimSpace(string(raw))))
	}
	o.reader = jenkins.NewClient(config.BaseURL, clientOpts...)

	o.observer = o.metrics
	if f.Progress {
		o.bar = progress.NewTerminalBar(os.Stdout)
	}

	return o, nil
}
