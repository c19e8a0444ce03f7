package classifier

import (
	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
	"github.com/openshift/ci-regression-reporter/pkg/results"
)

// parameterBuckets is how many leading actions may carry the build parameters.
const parameterBuckets = 2

// FindBuildParameters returns the parameters of a build. The build server
// reports them in either the first or the second action, depending on which
// plugins contributed actions to the build; later actions are never
// consulted.
func FindBuildParameters(metadata *reportingapi.BuildMetadata) ([]reportingapi.BuildParameter, error) {
	for i := 0; i < parameterBuckets && i < len(metadata.Actions); i++ {
		if parameters := metadata.Actions[i].Parameters; parameters != nil {
			return parameters, nil
		}
	}
	return nil, results.ForReason(results.ReasonConfiguration).Errorf("could not find build parameters in the first %d actions of build %s", parameterBuckets, metadata.ID)
}
