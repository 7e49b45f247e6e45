package domain

// Status is the outcome classification carried by every response envelope.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusPartialSuccess Status = "partial_success"
	StatusError          Status = "error"
	StatusNoResults      Status = "no_results"
)

// Response is the uniform envelope returned by every inbound operation.
// Failures are data: callers always receive an envelope, never a raw error.
type Response struct {
	Status     Status         `json:"status"`
	Message    string         `json:"message"`
	TotalCount int            `json:"total_count"`
	Results    []any          `json:"results"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// MakeResponse builds an envelope. Results may be nil for error responses.
func MakeResponse(status Status, message string, results []any, metadata map[string]any) Response {
	if results == nil {
		results = []any{}
	}
	return Response{
		Status:     status,
		Message:    message,
		TotalCount: len(results),
		Results:    results,
		Metadata:   metadata,
	}
}
