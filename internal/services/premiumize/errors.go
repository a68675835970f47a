package premiumize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned before any network activity when the client
// holds an empty credential.
var ErrMissingAPIKey = errors.New("premiumize: api key is required")

// Kind identifies which of the runtime failure classes an error belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindService
	KindValidation
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindService:
		return "service"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ServiceError means the service answered and reported a failure in the body.
type ServiceError struct {
	Method     string
	Path       string
	HTTPStatus int
	Message    string
	Body       Body
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unspecified error"
	}
	return fmt.Sprintf("premiumize %s %s: service error: %s", e.Method, e.Path, msg)
}

// Issue is a single contract violation found in a response body.
type Issue struct {
	// Location is a JSON pointer into the body, empty for the root.
	Location string
	Reason   string
}

func (i Issue) String() string {
	loc := i.Location
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + i.Reason
}

// ValidationError means the body did not match the endpoint contract.
type ValidationError struct {
	Method string
	Path   string
	Issues []Issue
	Body   Body
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("premiumize %s %s: response validation failed: %s", e.Method, e.Path, strings.Join(parts, "; "))
}

// TransportError means the call never produced an interpretable response.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("premiumize %s %s: transport error (HTTP %d): %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("premiumize %s %s: transport error: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Classify reports the kind of a classified error, looking through wrapping.
// Unclassified errors, ErrMissingAPIKey included, are KindUnknown.
func Classify(err error) Kind {
	var (
		serviceErr    *ServiceError
		validationErr *ValidationError
		transportErr  *TransportError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &serviceErr):
		return KindService
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// IsServiceError reports whether err is a service-reported failure.
func IsServiceError(err error) bool {
	return Classify(err) == KindService
}

// IsValidationError reports whether err is a response contract failure.
func IsValidationError(err error) bool {
	return Classify(err) == KindValidation
}

// IsTransportError reports whether err is a transport failure.
func IsTransportError(err error) bool {
	return Classify(err) == KindTransport
}

// classifyTransportFault wraps a fault from the Transport. Faults that are
// already classified keep their kind.
func classifyTransportFault(c *call, statusCode int, err error) error {
	if Classify(err) != KindUnknown {
		return err
	}
	return &TransportError{Method: c.method, Path: c.path, StatusCode: statusCode, Err: err}
}

func classifyServiceFailure(c *call, statusCode int, message string, body Body) error {
	return &ServiceError{Method: c.method, Path: c.path, HTTPStatus: statusCode, Message: message, Body: body}
}

func classifyValidationFailure(c *call, issues []Issue, body Body) error {
	if len(issues) == 0 {
		issues = []Issue{{Reason: "body does not match the expected shape"}}
	}
	return &ValidationError{Method: c.method, Path: c.path, Issues: issues, Body: body}
}
