package reconcile

import (
	"regexp"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportingapi"
)

// UpsertLatest appends item, first dropping any entry with the same key.
// Entries keep the order in which they were last upserted.
func UpsertLatest[T any](items []T, item T, key func(T) string) []T {
	k := key(item)
	ret := make([]T, 0, len(items)+1)
	for _, existing := range items {
		if key(existing) != k {
			ret = append(ret, existing)
		}
	}
	return append(ret, item)
}

func byAppTitle(r reportingapi.ReconciledApplicationResult) string {
	return r.AppTitle
}

func byCaseName(c reportingapi.ReconciledTestCase) string {
	return c.CaseName
}

// MergeRerunResults lets the rerun of an application decide which of its
// tests failed. The number of tests of the first run is kept, so every test
// that did not fail again counts as passing. Applications without a rerun
// are returned unchanged.
func MergeRerunResults(first, rerun []reportingapi.ReconciledApplicationResult) []reportingapi.ReconciledApplicationResult {
	reruns := make(map[string]reportingapi.ReconciledApplicationResult, len(rerun))
	for _, r := range rerun {
		if _, seen := reruns[r.AppTitle]; !seen {
			reruns[r.AppTitle] = r
		}
	}

	var merged []reportingapi.ReconciledApplicationResult
	for _, result := range first {
		second, ok := reruns[result.AppTitle]
		if !ok {
			merged = append(merged, result)
			continue
		}
		merged = append(merged, reportingapi.ReconciledApplicationResult{
			AppTitle:      result.AppTitle,
			NumberPassing: result.Total() - second.NumberFailing,
			NumberFailing: second.NumberFailing,
			FailureLinks:  second.FailureLinks,
		})
	}
	return merged
}

// NormalizeCaseName strips build specific prefixes from a case name: the
// second token of the name split by delimiter, or the whole name when the
// delimiter does not occur.
func NormalizeCaseName(name string, delimiter *regexp.Regexp) string {
	if delimiter == nil {
		return name
	}
	tokens := delimiter.Split(name, 3)
	if len(tokens) > 1 {
		return tokens[1]
	}
	return tokens[0]
}

// Summarize counts the outcomes of reconciled cases and collects their failure links.
func Summarize(appTitle string, cases []reportingapi.ReconciledTestCase) reportingapi.ReconciledApplicationResult {
	ret := reportingapi.ReconciledApplicationResult{AppTitle: appTitle}
	for _, c := range cases {
		if c.IsPassing {
			ret.NumberPassing++
		} else {
			ret.NumberFailing++
		}
		if c.FailureLink != nil {
			ret.FailureLinks = append(ret.FailureLinks, *c.FailureLink)
		}
	}
	return ret
}
