package rest

import (
	"net/http"
)

// StatusOK is the canonical success code.
// It is the only code that triggers response body decoding,
// other 2xx codes are "success, no body" by convention.
const StatusOK = http.StatusOK

// StatusClass is a classification of HTTP status codes by range.
type StatusClass int

const (
	StatusClassUnknown StatusClass = iota
	StatusClassInformational
	StatusClassSuccess
	StatusClassRedirection
	StatusClassClientError
	StatusClassServerError
)

// ClassifyStatus returns the StatusClass of an HTTP status code.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 100 && code <= 199:
		return StatusClassInformational
	case code >= 200 && code <= 299:
		return StatusClassSuccess
	case code >= 300 && code <= 399:
		return StatusClassRedirection
	case code >= 400 && code <= 499:
		return StatusClassClientError
	case code >= 500 && code <= 599:
		return StatusClassServerError
	default:
		return StatusClassUnknown
	}
}

func (c StatusClass) String() string {
	switch c {
	case StatusClassInformational:
		return "informational"
	case StatusClassSuccess:
		return "success"
	case StatusClassRedirection:
		return "redirection"
	case StatusClassClientError:
		return "client error"
	case StatusClassServerError:
		return "server error"
	default:
		return "unknown"
	}
}

// IsSuccess reports whether the HTTP status `code >= 200 and <= 299`.
func IsSuccess(code int) bool {
	return ClassifyStatus(code) == StatusClassSuccess
}

// IsNoContent reports whether the status code means the response
// intentionally carries no body.
func IsNoContent(code int) bool {
	return code == http.StatusNoContent || code == http.StatusResetContent
}
