package reportingapi

import "context"

// BuildReader fetches build reports from the build server. Implementations
// return an error matching IsNotFound when a build does not exist; every
// other error is fatal to the caller.
type BuildReader interface {
	TestReport(ctx context.Context, id BuildIdentity) (*TestReport, error)
	BuildMetadata(ctx context.Context, id BuildIdentity) (*BuildMetadata, error)
	LatestBuildNumber(ctx context.Context, view, job string) (int, error)

	// FailureURL addresses the report page of one failed case.
	FailureURL(id BuildIdentity, segments []string, caseName string) string
}
