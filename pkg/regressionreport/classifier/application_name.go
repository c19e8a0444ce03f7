package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
)

const (
	// ApplicationParameter is the build parameter naming the application under test.
	ApplicationParameter = "APPLICATION"
	// NoApplication is used when neither class names nor parameters name the application.
	NoApplication = "N/A"
	// UnknownApplication is the title of applications missing from the title mappings.
	UnknownApplication = "Unknown Application"
)

// ApplicationNameClassifier resolves which application a build tested and
// collects the links of its failed cases.
type ApplicationNameClassifier struct{}

func (ApplicationNameClassifier) Name() string {
	return string(reportconfig.ClassifierApplicationName)
}

func (ApplicationNameClassifier) HandleTestCase(cfg reportconfig.JobConfig, _ reportingapi.RawTestCase, segments []string, _ reportingapi.BuildIdentity, link *reportingapi.FailureLink, acc *reportingapi.AccumulatedBuildResult) {
	if acc.Application == nil && len(segments) > cfg.ApplicationClassnameIndex {
		application := segments[cfg.ApplicationClassnameIndex]
		if delimiter := cfg.ApplicationNameDelimiter; delimiter != "" && strings.Contains(application, delimiter) {
			application = strings.SplitN(application, delimiter, 3)[1]
		}
		acc.Application = &application
	}
	if link != nil {
		acc.FailureLinks = append(acc.FailureLinks, *link)
	}
}

// Finalize sets the title of the build's application. When no class name
// resolved the application, the APPLICATION parameter of the build is used.
func (ApplicationNameClassifier) Finalize(ctx context.Context, cfg reportconfig.JobConfig, id reportingapi.BuildIdentity, reader reportingapi.BuildReader, acc *reportingapi.AccumulatedBuildResult) error {
	var application string
	if acc.Application != nil {
		application = *acc.Application
	}
	if application == "" {
		metadata, err := reader.BuildMetadata(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch the metadata of %s: %w", id, err)
		}
		parameters, err := FindBuildParameters(metadata)
		if err != nil {
			return fmt.Errorf("could not resolve the application of %s: %w", id, err)
		}
		application = applicationFromParameters(parameters)
	}

	title, mapped := cfg.AppTitleMappings[application]
	if !mapped {
		title = UnknownApplication
	}
	acc.AppTitle = title
	return nil
}

func applicationFromParameters(parameters []reportingapi.BuildParameter) string {
	for _, parameter := range parameters {
		if parameter.Name != ApplicationParameter || parameter.Value == nil {
			continue
		}
		value, ok := parameter.Value.(string)
		if !ok {
			value = fmt.Sprint(parameter.Value)
		}
		if value != "" {
			return value
		}
	}
	return NoApplication
}
