package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// BadResponseError is returned when the transport produced something that
// cannot be interpreted as a structured HTTP response.
type BadResponseError struct {
	Response *http.Response // may be nil
	Body     []byte
	Err      error
}

func (e *BadResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rest: bad response: %s", e.Err)
	}
	return "rest: bad response"
}

func (e *BadResponseError) Unwrap() error {
	return e.Err
}

// InvalidMimeTypeError is returned when the response Content-Type is missing
// or not a member of the known MIME table, on a non-empty body.
type InvalidMimeTypeError struct {
	MimeType string // raw Content-Type header value, empty if the header is missing
}

func (e *InvalidMimeTypeError) Error() string {
	if e.MimeType == "" {
		return "rest: response Content-Type is missing"
	}
	return fmt.Sprintf(`rest: invalid response Content-Type "%s"`, e.MimeType)
}

// InvalidQueryParameterError is returned when query parameter encoding failed
// to produce a valid URL. It signals a programming error, not a transient one.
type InvalidQueryParameterError struct {
	Err error
}

func (e *InvalidQueryParameterError) Error() string {
	return fmt.Sprintf("rest: invalid query parameter: %s", e.Err)
}

func (e *InvalidQueryParameterError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a body is present but the
// deserializer, success or error-body, failed on it.
type MalformedResponseError struct {
	Response *http.Response
	Body     []byte
	Err      error // the underlying decode error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("rest: malformed response body: %s", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// FailedCallError is returned when the status code is not acceptable,
// with or without a parsed error payload. An empty body at a
// content-bearing status is reported the same way, with a nil Payload.
type FailedCallError struct {
	Response   *http.Response
	StatusCode int
	// Payload is the error body decoded by the error-body deserializer,
	// nil if none is configured or the body was empty.
	Payload any
}

func (e *FailedCallError) Error() string {
	msg := fmt.Sprintf("rest: call failed with status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Payload != nil {
		msg += fmt.Sprintf(": %v", e.Payload)
	}
	return msg
}

// UnexpectedStatusCodeError is returned when Options.ExpectedStatusCodes is
// set and the received code is not a member. The check short-circuits all
// further response processing.
type UnexpectedStatusCodeError struct {
	StatusCode int
}

func (e *UnexpectedStatusCodeError) Error() string {
	return fmt.Sprintf("rest: unexpected status code %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsBadResponse checks if the error is a BadResponseError.
func IsBadResponse(err error) bool {
	var e *BadResponseError
	return errors.As(err, &e)
}

// IsInvalidMimeType checks if the error is an InvalidMimeTypeError.
func IsInvalidMimeType(err error) bool {
	var e *InvalidMimeTypeError
	return errors.As(err, &e)
}

// IsInvalidQueryParameter checks if the error is an InvalidQueryParameterError.
func IsInvalidQueryParameter(err error) bool {
	var e *InvalidQueryParameterError
	return errors.As(err, &e)
}

// IsMalformedResponse checks if the error is a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var e *MalformedResponseError
	return errors.As(err, &e)
}

// IsFailedCall checks if the error is a FailedCallError.
func IsFailedCall(err error) bool {
	var e *FailedCallError
	return errors.As(err, &e)
}

// IsUnexpectedStatusCode checks if the error is an UnexpectedStatusCodeError.
func IsUnexpectedStatusCode(err error) bool {
	var e *UnexpectedStatusCodeError
	return errors.As(err, &e)
}
