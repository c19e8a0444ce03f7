package jenkins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
	"github.com/openshift/ci-regression-reporter/pkg/results"
)

// DefaultRetryMax bounds retries of connection errors and server-side failures.
const DefaultRetryMax = 3

type Opts struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// The username to use for basic auth
	BasicAuthUser string
	// The token to use for basic auth
	BasicAuthPassword string
	HTTPClient        *http.Client
	Logger            *logrus.Entry
}

type Opt func(*Opts)

func WithAuthentication(username, token string) Opt {
	return func(o *Opts) {
		o.BasicAuthUser = username
		o.BasicAuthPassword = token
	}
}

// WithRetryMax sets the retry budget; zero disables retries.
func WithRetryMax(retryMax int) Opt {
	return func(o *Opts) {
		o.RetryMax = retryMax
	}
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(min, max time.Duration) Opt {
	return func(o *Opts) {
		o.RetryWaitMin = min
		o.RetryWaitMax = max
	}
}

// WithHTTPClient replaces the underlying transport client, mostly for tests.
func WithHTTPClient(client *http.Client) Opt {
	return func(o *Opts) {
		o.HTTPClient = client
	}
}

func WithLogger(logger *logrus.Entry) Opt {
	return func(o *Opts) {
		o.Logger = logger
	}
}

// Client reads build reports from a Jenkins server's JSON API.
type Client struct {
	baseURL string
	opts    Opts
	client  *retryablehttp.Client
}

var _ reportingapi.BuildReader = &Client{}

func NewClient(baseURL string, opts ...Opt) *Client {
	o := Opts{RetryMax: DefaultRetryMax, Logger: logrus.WithField("component", "jenkins-client")}
	for _, opt := range opts {
		opt(&o)
	}
	client := retryablehttp.NewClient()
	client.RetryMax = o.RetryMax
	client.Logger = leveledLogger{logger: o.Logger}
	if o.RetryWaitMin > 0 {
		client.RetryWaitMin = o.RetryWaitMin
	}
	if o.RetryWaitMax > 0 {
		client.RetryWaitMax = o.RetryWaitMax
	}
	if o.HTTPClient != nil {
		client.HTTPClient = o.HTTPClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		opts:    o,
		client:  client,
	}
}

// encodeName escapes only spaces, the one character the server's view and job names use.
func encodeName(name string) string {
	return strings.ReplaceAll(name, " ", "%20")
}

func (c *Client) buildURL(id reportingapi.BuildIdentity, testReport bool) string {
	url := fmt.Sprintf("%s/view/%s/job/%s/%s", c.baseURL, encodeName(id.View), encodeName(id.Job), id.BuildID())
	if testReport {
		url += "/testReport"
	}
	return url + "/api/json"
}

// FailureURL composes the report location of one failed case: the class name
// segments except the last joined by '.', then the last segment, then the case name.
func (c *Client) FailureURL(id reportingapi.BuildIdentity, segments []string, caseName string) string {
	var packageName, className string
	if len(segments) > 0 {
		packageName = strings.Join(segments[:len(segments)-1], ".")
		className = segments[len(segments)-1]
	}
	return fmt.Sprintf("%s/view/%s/job/%s/%s/testReport/junit/%s/%s/%s", c.baseURL, id.View, id.Job, id.BuildID(), packageName, className, caseName)
}

func (c *Client) TestReport(ctx context.Context, id reportingapi.BuildIdentity) (*reportingapi.TestReport, error) {
	report := &reportingapi.TestReport{}
	if err := c.getJSON(ctx, id, c.buildURL(id, true), report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *Client) BuildMetadata(ctx context.Context, id reportingapi.BuildIdentity) (*reportingapi.BuildMetadata, error) {
	metadata := &reportingapi.BuildMetadata{}
	if err := c.getJSON(ctx, id, c.buildURL(id, false), metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

func (c *Client) LatestBuildNumber(ctx context.Context, view, job string) (int, error) {
	id := reportingapi.BuildIdentity{View: view, Job: job, Number: reportingapi.LatestBuild}
	metadata, err := c.BuildMetadata(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to determine latest build of %q: %w", job, err)
	}
	number, err := strconv.Atoi(metadata.ID)
	if err != nil {
		return 0, results.ForReason(results.ReasonMalformedResponse).WithError(err).Errorf("latest build of %q has non-numeric id %q", job, metadata.ID)
	}
	return number, nil
}

func (c *Client) getJSON(ctx context.Context, id reportingapi.BuildIdentity, url string, into interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to construct request: %w", err)
	}
	if c.opts.BasicAuthUser != "" {
		req.SetBasicAuth(c.opts.BasicAuthUser, c.opts.BasicAuthPassword)
	}
	c.opts.Logger.WithField("url", url).Debug("Requesting build data")
	resp, err := c.client.Do(req)
	if err != nil {
		return results.ForReason(results.ReasonTransport).WithError(err).Errorf("failed to GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return results.ForReason(results.ReasonBuildNotFound).WithError(&reportingapi.NotFoundError{Identity: id}).Errorf("no such build %s", id)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return results.ForReason(results.ReasonTransport).WithError(err).Errorf("failed to read response body when getting %s: %v", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return results.ForReason(results.ReasonTransport).Errorf("got unexpected http status code %d when getting %s, response body: %s", resp.StatusCode, url, string(body))
	}
	if err := json.Unmarshal(body, into); err != nil {
		return results.ForReason(results.ReasonMalformedResponse).WithError(err).Errorf("could not parse response from %s: %v", url, err)
	}
	return nil
}
