package imago

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failure by where in the request lifecycle it arose.
type ErrorKind string

const (
	// KindValidation indicates the caller's input is structurally or
	// semantically invalid. Always detected before any network I/O.
	KindValidation ErrorKind = "validation"

	// KindConfiguration indicates a required credential or setting is
	// missing. Fatal for that provider until an operator fixes it.
	KindConfiguration ErrorKind = "configuration"

	// KindUpstream indicates the provider's API returned an error status
	// or an error-shaped body.
	KindUpstream ErrorKind = "upstream"

	// KindFormat indicates the provider returned HTTP success but a payload
	// the normalizer cannot interpret, such as zero images.
	KindFormat ErrorKind = "format"
)

// KindedError is implemented by every error the core produces, so callers
// can classify failures without duck-typed introspection.
type KindedError interface {
	error
	Kind() ErrorKind
	HTTPStatus() int // status to surface to the caller
}

// ValidationError reports invalid caller input. It is raised before any
// network call and never wraps a partially built request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// HTTPStatus returns 400.
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// ConfigurationError reports a missing credential or setting for a provider.
type ConfigurationError struct {
	Provider string
	Setting  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s is not configured", e.Provider, e.Setting)
}

// Kind returns KindConfiguration.
func (e *ConfigurationError) Kind() ErrorKind { return KindConfiguration }

// HTTPStatus returns 500.
func (e *ConfigurationError) HTTPStatus() int { return http.StatusInternalServerError }

// UpstreamError reports an error status or error-shaped body from a
// provider's API. Message prefers the structured message nested in the
// upstream error body when one was present.
type UpstreamError struct {
	Provider   string
	Status     int // upstream HTTP status, 0 when unknown
	Message    string
	RawDetails any   // upstream error body, when decodable
	Cause      error // underlying SDK or transport error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error { return e.Cause }

// Kind returns KindUpstream.
func (e *UpstreamError) Kind() ErrorKind { return KindUpstream }

// HTTPStatus returns the upstream status, or 500 when it was unknown.
func (e *UpstreamError) HTTPStatus() int {
	if e.Status >= 400 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// FormatError reports an upstream success response the normalizer cannot
// interpret. Callers see it like an UpstreamError; it is a distinct type so
// the serving layer can log it separately for diagnosis.
type FormatError struct {
	Provider string
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s", e.Provider, e.Reason)
}

// Kind returns KindFormat.
func (e *FormatError) Kind() ErrorKind { return KindFormat }

// HTTPStatus returns 500.
func (e *FormatError) HTTPStatus() int { return http.StatusInternalServerError }

// KindOf returns the classification of err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	var ke KindedError
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return ""
}

// HTTPStatus returns the transport status code for err. Unclassified errors
// map to 500.
func HTTPStatus(err error) int {
	var ke KindedError
	if errors.As(err, &ke) {
		return ke.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConfiguration reports whether err is a configuration failure.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

// IsUpstream reports whether err is an upstream failure.
func IsUpstream(err error) bool { return KindOf(err) == KindUpstream }

// IsFormat reports whether err is a response-format failure.
func IsFormat(err error) bool { return KindOf(err) == KindFormat }
