package reportingapi

import (
	"strconv"
	"strings"
)

// LatestBuild addresses the most recent build of a job instead of a numbered one.
const LatestBuild = -1

// BuildIdentity addresses one remote build's report.
type BuildIdentity struct {
	View   string
	Job    string
	Number int
}

func (b BuildIdentity) IsLatest() bool {
	return b.Number == LatestBuild
}

// BuildID is the path segment used by the build server for this build.
func (b BuildIdentity) BuildID() string {
	if b.IsLatest() {
		return "lastBuild"
	}
	return strconv.Itoa(b.Number)
}

func (b BuildIdentity) String() string {
	return b.View + "/" + b.Job + "#" + b.BuildID()
}

type CaseStatus string

const (
	CaseStatusPassed     CaseStatus = "PASSED"
	CaseStatusFixed      CaseStatus = "FIXED"
	CaseStatusFailed     CaseStatus = "FAILED"
	CaseStatusRegression CaseStatus = "REGRESSION"
	CaseStatusSkipped    CaseStatus = "SKIPPED"
)

// IsFailure is true for the statuses that produce failure links.
func (s CaseStatus) IsFailure() bool {
	return s == CaseStatusFailed || s == CaseStatusRegression
}

// RawTestCase is a single case from a build's test report.
type RawTestCase struct {
	ClassName string     `json:"className"`
	Name      string     `json:"name"`
	Status    CaseStatus `json:"status"`
}

// Segments splits the dot-delimited class name.
func (c RawTestCase) Segments() []string {
	return strings.Split(c.ClassName, ".")
}

type FailureLink struct {
	Value string `json:"value"`
	URL   string `json:"url"`
	// FilePath is the slash-joined slice of class name segments configured by the job's filepath range.
	FilePath string `json:"filePath,omitempty"`
}

type TestCaseResult struct {
	Name        string
	IsPassing   bool
	FailureLink *FailureLink
}

// AccumulatedBuildResult is threaded through every classifier while one build's
// report is processed. It is never shared across builds.
type AccumulatedBuildResult struct {
	Application   *string
	TestCases     []TestCaseResult
	FailureLinks  []FailureLink
	NumberPassing int
	NumberFailing int
	AppTitle      string
}

type ReconciledApplicationResult struct {
	AppTitle      string        `json:"appTitle"`
	NumberPassing int           `json:"numberPassing"`
	NumberFailing int           `json:"numberFailing"`
	FailureLinks  []FailureLink `json:"failureLinks,omitempty"`
}

func (r ReconciledApplicationResult) Total() int {
	return r.NumberPassing + r.NumberFailing
}

type ReconciledTestCase struct {
	CaseName    string       `json:"caseName"`
	IsPassing   bool         `json:"isPassing"`
	FailureLink *FailureLink `json:"failureLink,omitempty"`
}
