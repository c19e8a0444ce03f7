package reportlib

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
)

// ConfigFlags selects the report definition.
type ConfigFlags struct {
	ConfigFile string
}

func NewConfigFlags() *ConfigFlags {
	return &ConfigFlags{}
}

func (f *ConfigFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", f.ConfigFile, "Path to the report configuration file. The built-in GL regression and navigation report is used when unset.")
}

func (f *ConfigFlags) Validate() error {
	return nil
}

// Load reads the configuration file, or returns the built-in configuration
// when no file was given.
func (f *ConfigFlags) Load() (*reportconfig.Config, error) {
	if f.ConfigFile == "" {
		logrus.Info("No configuration file given, using the built-in report configuration.")
		return reportconfig.DefaultConfig(), nil
	}
	return reportconfig.LoadConfig(f.ConfigFile)
}
