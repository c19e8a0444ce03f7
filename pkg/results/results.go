package results

type Reason string

const (
	// ReasonUnknown is default reason. Occurrences of this reason in logs
	// indicate a failure to identify the reason for an error somewhere.
	ReasonUnknown Reason = "unknown"

	// ReasonBuildNotFound marks a build number the server does not know about.
	// It is the only reason the reconciliation engine recovers from.
	ReasonBuildNotFound Reason = "build_not_found"
	// ReasonConfiguration marks missing or invalid reporting configuration,
	// including build parameters the configuration relies on.
	ReasonConfiguration Reason = "configuration"
	// ReasonTransport marks failed requests and unexpected response codes.
	ReasonTransport Reason = "transport"
	// ReasonMalformedResponse marks responses that could not be decoded or
	// lack expected fields.
	ReasonMalformedResponse Reason = "malformed_response"
	// ReasonWritingReport marks failures to persist the assembled report.
	ReasonWritingReport Reason = "writing_report"
)
