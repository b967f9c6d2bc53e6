// Package dto defines data transfer objects for the Polygon API responses.
package dto

// AggregatesResponse represents the envelope of the Polygon aggregates (bars) endpoint.
// Only the fields needed to judge the response are decoded; the payload is passed on verbatim.
type AggregatesResponse struct {
	Status       string `json:"status"`
	Ticker       string `json:"ticker"`
	ResultsCount int    `json:"resultsCount"`
	RequestID    string `json:"request_id"`
	Error        string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
}

// Failed reports whether Polygon flagged the request as unsuccessful.
func (r AggregatesResponse) Failed() bool {
	return r.Status == "ERROR" || r.Status == "NOT_AUTHORIZED"
}

// Reason returns the upstream explanation of a failure.
func (r AggregatesResponse) Reason() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
