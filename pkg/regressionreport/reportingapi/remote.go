package reportingapi

// TestReport is the test-report payload of one build.
type TestReport struct {
	PassCount int     `json:"passCount"`
	FailCount int     `json:"failCount"`
	SkipCount int     `json:"skipCount"`
	Suites    []Suite `json:"suites"`
}

type Suite struct {
	Name  string        `json:"name"`
	Cases []RawTestCase `json:"cases"`
}

// BuildMetadata is the build-level payload of one build.
type BuildMetadata struct {
	ID      string   `json:"id"`
	Number  int      `json:"number"`
	Actions []Action `json:"actions"`
}

// Action is one entry of the build's action list. Parameters stays nil when
// the entry carries no "parameters" key and is non-nil (possibly empty) when it does.
type Action struct {
	Parameters []BuildParameter `json:"parameters,omitempty"`
}

type BuildParameter struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}
