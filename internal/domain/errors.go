package domain

import (
	"errors"
	"strings"
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// FetchError represents a failure downloading a master file. Network-level
// failures are usually retriable; a vendor 4xx is not.
type FetchError struct {
	Exchange  string // Exchange id whose download failed
	Op        string // Operation that failed (e.g., "get", "read body")
	Err       error  // Underlying error
	Retriable bool
}

func (e *FetchError) Error() string {
	return "fetch " + e.Exchange + " [" + e.Op + "]: " + e.Err.Error()
}

func (e *FetchError) IsRetriable() bool {
	return e.Retriable
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a retriable fetch error
func NewFetchError(exchange, op string, err error) *FetchError {
	return &FetchError{Exchange: exchange, Op: op, Err: err, Retriable: true}
}

// NewFatalFetchError creates a non-retriable fetch error
func NewFatalFetchError(exchange, op string, err error) *FetchError {
	return &FetchError{Exchange: exchange, Op: op, Err: err, Retriable: false}
}

// DecodeError means no candidate text encoding produced a clean decode.
type DecodeError struct {
	Tried []string // Encoding names attempted, in order
}

func (e *DecodeError) Error() string {
	return "decode failed with all encodings: " + strings.Join(e.Tried, ", ")
}

func (e *DecodeError) IsRetriable() bool {
	return false
}

// ParseError represents an archive or tabular-schema failure while turning a
// downloaded payload into instrument rows. Per-line anomalies are never
// surfaced as errors; this covers structural failures only.
type ParseError struct {
	Stage string // "unzip", "schema"
	Err   error
}

func (e *ParseError) Error() string {
	return "parse error [" + e.Stage + "]: " + e.Err.Error()
}

func (e *ParseError) IsRetriable() bool {
	return false
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	// ErrUnknownExchange is returned when a requested exchange id is not in the registry
	ErrUnknownExchange = errors.New("unknown exchange")

	// ErrEmptyQuery is returned when a search query is blank. Rejected before the engine runs.
	ErrEmptyQuery = errors.New("query is required")

	// ErrEmptyCode is returned when a lookup code is blank
	ErrEmptyCode = errors.New("code is required")
)
