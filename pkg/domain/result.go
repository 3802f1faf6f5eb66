package domain

import (
	"time"
)

// Outcome classifies the result of a single existence check.
type Outcome string

const (
	// OutcomeFound indicates the server answered the check with HTTP 200.
	OutcomeFound Outcome = "FOUND"
	// OutcomeHTTPError indicates the server answered with any other status; see Result.StatusCode.
	OutcomeHTTPError Outcome = "HTTP_ERROR"
	// OutcomeTransportError indicates no HTTP response was obtained (DNS, refused connection, TLS, bad URL).
	OutcomeTransportError Outcome = "TRANSPORT_ERROR"
	// OutcomeTimeout indicates the per-request timeout elapsed before a response arrived.
	OutcomeTimeout Outcome = "TIMEOUT"
	// OutcomeCanceled indicates the check was abandoned because its run was stopped.
	OutcomeCanceled Outcome = "CANCELED"
)

// Result is the outcome of probing one candidate URL.
type Result struct {
	// Index is the position of the candidate in the submitted list.
	Index int `json:"index"`
	// URL is the candidate that was checked.
	URL string `json:"url"`
	// Outcome is the classification of the check.
	Outcome Outcome `json:"outcome"`
	// StatusCode is the HTTP status when a response was received, 0 otherwise.
	StatusCode int `json:"statusCode,omitempty"`
	// Duration is how long the check took.
	Duration time.Duration `json:"duration"`
	// Err describes why the check did not confirm existence; nil when Found.
	Err error `json:"-"`
}

// Found reports whether the candidate exists. Every outcome other than
// OutcomeFound counts as not found.
func (r Result) Found() bool {
	return r.Outcome == OutcomeFound
}

// Transient reports whether the outcome may change on a later attempt
// (timeouts and transport failures), as opposed to a definitive HTTP answer.
func (r Result) Transient() bool {
	return r.Outcome == OutcomeTimeout || r.Outcome == OutcomeTransportError
}

// Strategy selects how many matches a search looks for.
type Strategy string

const (
	// StrategyFindAll probes every candidate and reports every match.
	StrategyFindAll Strategy = "find-all"
	// StrategyFindFirst stops at the first match in submission order.
	StrategyFindFirst Strategy = "find-first"
)

// Targets identifies the exported artifact whose location is being guessed.
type Targets struct {
	ProjectID string `json:"projectId"`
	ScreenID  string `json:"screenId"`
}
