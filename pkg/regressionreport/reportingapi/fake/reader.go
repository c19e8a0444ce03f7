// Package fake provides an in-memory BuildReader for tests.
package fake

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
)

// Reader serves builds from memory. Builds it does not know about are not
// found, like missing builds on the server.
type Reader struct {
	lock sync.Mutex

	latest         map[string]int
	reports        map[reportingapi.BuildIdentity]*reportingapi.TestReport
	metadata       map[reportingapi.BuildIdentity]*reportingapi.BuildMetadata
	reportErrors   map[reportingapi.BuildIdentity]error
	metadataErrors map[reportingapi.BuildIdentity]error

	// Requests lists every identity that was fetched, in order, as view/job#id
	// with a "/testReport" suffix for test reports.
	Requests []string
}

func NewReader() *Reader {
	return &Reader{
		latest:         map[string]int{},
		reports:        map[reportingapi.BuildIdentity]*reportingapi.TestReport{},
		metadata:       map[reportingapi.BuildIdentity]*reportingapi.BuildMetadata{},
		reportErrors:   map[reportingapi.BuildIdentity]error{},
		metadataErrors: map[reportingapi.BuildIdentity]error{},
	}
}

func jobKey(view, job string) string {
	return view + "/" + job
}

// WithLatest sets the number of the latest build of a job.
func (r *Reader) WithLatest(view, job string, number int) *Reader {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.latest[jobKey(view, job)] = number
	return r
}

func (r *Reader) WithReport(id reportingapi.BuildIdentity, report *reportingapi.TestReport) *Reader {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports[id] = report
	return r
}

func (r *Reader) WithMetadata(id reportingapi.BuildIdentity, metadata *reportingapi.BuildMetadata) *Reader {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.metadata[id] = metadata
	return r
}

// WithReportError makes fetching the test report of id fail with err.
func (r *Reader) WithReportError(id reportingapi.BuildIdentity, err error) *Reader {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reportErrors[id] = err
	return r
}

// WithMetadataError makes fetching the metadata of id fail with err.
func (r *Reader) WithMetadataError(id reportingapi.BuildIdentity, err error) *Reader {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.metadataErrors[id] = err
	return r
}

func (r *Reader) TestReport(_ context.Context, id reportingapi.BuildIdentity) (*reportingapi.TestReport, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Requests = append(r.Requests, id.String()+"/testReport")
	if err, ok := r.reportErrors[id]; ok {
		return nil, err
	}
	report, ok := r.reports[id]
	if !ok {
		return nil, &reportingapi.NotFoundError{Identity: id}
	}
	return report, nil
}

func (r *Reader) BuildMetadata(_ context.Context, id reportingapi.BuildIdentity) (*reportingapi.BuildMetadata, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Requests = append(r.Requests, id.String())
	if err, ok := r.metadataErrors[id]; ok {
		return nil, err
	}
	metadata, ok := r.metadata[id]
	if !ok {
		return nil, &reportingapi.NotFoundError{Identity: id}
	}
	return metadata, nil
}

func (r *Reader) LatestBuildNumber(_ context.Context, view, job string) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	id := reportingapi.BuildIdentity{View: view, Job: job, Number: reportingapi.LatestBuild}
	r.Requests = append(r.Requests, id.String())
	number, ok := r.latest[jobKey(view, job)]
	if !ok {
		return 0, &reportingapi.NotFoundError{Identity: id}
	}
	return number, nil
}

func (r *Reader) FailureURL(id reportingapi.BuildIdentity, segments []string, caseName string) string {
	return fmt.Sprintf("fake://%s/%s/%d/%s/%s", id.View, id.Job, id.Number, strings.Join(segments, "."), caseName)
}

var _ reportingapi.BuildReader = &Reader{}
