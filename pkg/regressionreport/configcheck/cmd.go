// Package configcheck implements the command validating a report configuration.
package configcheck

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportlib"
)

type checkFlags struct {
	Config *reportlib.ConfigFlags
	Print  bool
}

func newCheckFlags() *checkFlags {
	return &checkFlags{Config: reportlib.NewConfigFlags()}
}

func (f *checkFlags) BindFlags(fs *pflag.FlagSet) {
	f.Config.BindFlags(fs)
	fs.BoolVar(&f.Print, "print", f.Print, "Print the configuration with its defaults applied.")
}

func NewCheckConfigCommand() *cobra.Command {
	f := newCheckFlags()

	cmd := &cobra.Command{
		Use:          "check-config",
		Long:         `Load and validate a report configuration without contacting the build server`,
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := f.Validate(); err != nil {
				logrus.WithError(err).Fatal("Flags are invalid")
			}
			o, err := f.ToOptions(ctx)
			if err != nil {
				logrus.WithError(err).Fatal("Configuration is invalid")
			}

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

func (f *checkFlags) Validate() error {
	return f.Config.Validate()
}

func (f *checkFlags) ToOptions(_ context.Context) (*Options, error) {
	config, err := f.Config.Load()
	if err != nil {
		return nil, err
	}
	return &Options{config: config, print: f.Print, out: os.Stdout}, nil
}

type Options struct {
	config *reportconfig.Config
	print  bool
	out    io.Writer
}

// Run lists the sections the configuration produces, and the whole
// configuration when asked to.
func (o *Options) Run(_ context.Context) error {
	fmt.Fprintf(o.out, "Build server: %s\n", o.config.BaseURL)
	fmt.Fprintf(o.out, "History length: %d\n", o.config.History())
	for _, rerun := range o.config.RerunJobs {
		fmt.Fprintf(o.out, "Sheet %q: %s/%s rerun by %s, %d applications\n", rerun.SheetTitle, rerun.View, rerun.Job, rerun.RerunJob, len(rerun.AppTitleMappings))
	}
	for _, group := range o.config.JobGroups {
		fmt.Fprintf(o.out, "Sheet %q: %d jobs of %s\n", group.SheetTitle, len(group.Jobs), group.View)
	}
	if !o.print {
		return nil
	}
	return reportconfig.PrintConfig(o.out, o.config)
}
