package jenkins

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
	"github.com/openshift/ci-regression-reporter/pkg/results"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLatestBuildNumber(t *testing.T) {
	testCases := []struct {
		name        string
		routes      map[string]string
		expected    int
		expectedErr results.Reason
	}{
		{
			name:     "numeric id",
			routes:   map[string]string{"/view/GL Regression/job/GL Regression Build/lastBuild/api/json": `{"id":"150","number":150,"actions":[]}`},
			expected: 150,
		},
		{
			name:        "non-numeric id",
			routes:      map[string]string{"/view/GL Regression/job/GL Regression Build/lastBuild/api/json": `{"id":"abc"}`},
			expectedErr: results.ReasonMalformedResponse,
		},
		{
			name:        "unknown job",
			routes:      map[string]string{},
			expectedErr: results.ReasonBuildNotFound,
		},
		{
			name:        "garbage payload",
			routes:      map[string]string{"/view/GL Regression/job/GL Regression Build/lastBuild/api/json": `<html>`},
			expectedErr: results.ReasonMalformedResponse,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, tc.routes)
			client := NewClient(server.URL, WithRetryMax(0))
			actual, err := client.LatestBuildNumber(context.Background(), "GL Regression", "GL Regression Build")
			if tc.expectedErr != "" {
				if !results.HasReason(err, tc.expectedErr) {
					t.Fatalf("expected error with reason %s, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actual != tc.expected {
				t.Errorf("expected latest build %d, got %d", tc.expected, actual)
			}
		})
	}
}

func TestTestReport(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/view/Navigations/job/navigation PD/12/testReport/api/json": `{
			"passCount": 1, "failCount": 1, "skipCount": 0,
			"suites": [{"cases": [
				{"className": "a.b.c.Nav", "name": "test_one", "status": "PASSED"},
				{"className": "a.b.c.Nav", "name": "test_two", "status": "REGRESSION"}
			]}]
		}`,
	})
	client := NewClient(server.URL, WithRetryMax(0))
	id := reportingapi.BuildIdentity{View: "Navigations", Job: "navigation PD", Number: 12}

	report, err := client.TestReport(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := &reportingapi.TestReport{
		PassCount: 1,
		FailCount: 1,
		Suites: []reportingapi.Suite{{Cases: []reportingapi.RawTestCase{
			{ClassName: "a.b.c.Nav", Name: "test_one", Status: reportingapi.CaseStatusPassed},
			{ClassName: "a.b.c.Nav", Name: "test_two", Status: reportingapi.CaseStatusRegression},
		}}},
	}
	if diff := cmp.Diff(expected, report); diff != "" {
		t.Errorf("report differs from expected:\n%s", diff)
	}

	_, err = client.TestReport(context.Background(), reportingapi.BuildIdentity{View: "Navigations", Job: "navigation PD", Number: 13})
	if !reportingapi.IsNotFound(err) {
		t.Errorf("expected a not found error for a missing build, got %v", err)
	}
}

func TestBuildMetadataParameters(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/view/GL Regression/job/GL Regression Build/7/api/json": `{
			"id": "7",
			"actions": [
				{"_class": "hudson.model.CauseAction", "causes": []},
				{"parameters": [{"name": "APPLICATION", "value": "cashier"}]}
			]
		}`,
	})
	client := NewClient(server.URL, WithRetryMax(0))
	metadata, err := client.BuildMetadata(context.Background(), reportingapi.BuildIdentity{View: "GL Regression", Job: "GL Regression Build", Number: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metadata.Actions) != 2 {
		t.Fatalf("expected two actions, got %d", len(metadata.Actions))
	}
	if metadata.Actions[0].Parameters != nil {
		t.Errorf("expected the first action to carry no parameters, got %v", metadata.Actions[0].Parameters)
	}
	expected := []reportingapi.BuildParameter{{Name: "APPLICATION", Value: "cashier"}}
	if diff := cmp.Diff(expected, metadata.Actions[1].Parameters); diff != "" {
		t.Errorf("parameters differ from expected:\n%s", diff)
	}
}

func TestServerErrorsAreRetriedButNotFoundIsNot(t *testing.T) {
	var serverErrors, notFounds int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/view/v/job/j/1/testReport/api/json":
			if atomic.AddInt32(&serverErrors, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			fmt.Fprint(w, `{"passCount": 3, "failCount": 0, "suites": []}`)
		default:
			atomic.AddInt32(&notFounds, 1)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	client := NewClient(server.URL, WithRetryMax(2), WithRetryWait(time.Millisecond, 5*time.Millisecond))

	report, err := client.TestReport(context.Background(), reportingapi.BuildIdentity{View: "v", Job: "j", Number: 1})
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if report.PassCount != 3 {
		t.Errorf("expected pass count 3, got %d", report.PassCount)
	}
	if atomic.LoadInt32(&serverErrors) != 2 {
		t.Errorf("expected two attempts, got %d", serverErrors)
	}

	_, err = client.TestReport(context.Background(), reportingapi.BuildIdentity{View: "v", Job: "j", Number: 2})
	if !reportingapi.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if atomic.LoadInt32(&notFounds) != 1 {
		t.Errorf("expected a single request for a missing build, got %d", notFounds)
	}
}

func TestUnexpectedStatusIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "nope")
	}))
	defer server.Close()
	client := NewClient(server.URL, WithRetryMax(0))
	_, err := client.TestReport(context.Background(), reportingapi.BuildIdentity{View: "v", Job: "j", Number: 1})
	if !results.HasReason(err, results.ReasonTransport) {
		t.Fatalf("expected a transport error, got %v", err)
	}
	if reportingapi.IsNotFound(err) {
		t.Errorf("a forbidden response must not be treated as a missing build")
	}
}

func TestBasicAuthentication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "reporter" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"id": "42"}`)
	}))
	defer server.Close()
	client := NewClient(server.URL, WithRetryMax(0), WithAuthentication("reporter", "s3cret"))
	number, err := client.LatestBuildNumber(context.Background(), "v", "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 42 {
		t.Errorf("expected 42, got %d", number)
	}
}

func TestURLs(t *testing.T) {
	client := NewClient("http://jenkins.example:8080/")
	id := reportingapi.BuildIdentity{View: "GL Regression", Job: "GL1000R Rerun Test Failures", Number: 31}

	if actual, expected := client.buildURL(id, true), "http://jenkins.example:8080/view/GL%20Regression/job/GL1000R%20Rerun%20Test%20Failures/31/testReport/api/json"; actual != expected {
		t.Errorf("expected test report url %q, got %q", expected, actual)
	}
	latest := reportingapi.BuildIdentity{View: "GL Regression", Job: "GL Regression Build", Number: reportingapi.LatestBuild}
	if actual, expected := client.buildURL(latest, false), "http://jenkins.example:8080/view/GL%20Regression/job/GL%20Regression%20Build/lastBuild/api/json"; actual != expected {
		t.Errorf("expected metadata url %q, got %q", expected, actual)
	}
	segments := []string{"com", "acme", "gl", "cashier", "CashierTest"}
	if actual, expected := client.FailureURL(id, segments, "test_post"), "http://jenkins.example:8080/view/GL Regression/job/GL1000R Rerun Test Failures/31/testReport/junit/com.acme.gl.cashier/CashierTest/test_post"; actual != expected {
		t.Errorf("expected failure url %q, got %q", expected, actual)
	}
}
