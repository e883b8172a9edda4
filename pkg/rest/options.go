package rest

import (
	"time"
)

// DefaultTimeout is the default per-call request timeout.
const DefaultTimeout = 60 * time.Second

// Options are per-call overrides for one dispatched request.
// A nil *Options is valid and means defaults. The caller constructs a fresh
// value, or a copy, per call, the pipeline never mutates it.
type Options struct {
	// Header entries are merged over the default Accept header,
	// a colliding key wins over the default.
	Header map[string]string
	// QueryParams are percent-encoded and appended to the request URL.
	QueryParams map[string]string
	// Timeout bounds the transport call, DefaultTimeout if zero.
	Timeout time.Duration
	// ExpectedStatusCodes, when non-nil, is the sole arbiter of acceptable
	// status codes. A non-2xx code is legitimate if listed, any code not
	// listed fails with UnexpectedStatusCodeError before body processing.
	ExpectedStatusCodes []int
	// DateFormat selects how date values in the response payload are decoded.
	DateFormat DateFormat
}

func (o *Options) header() map[string]string {
	if o == nil {
		return nil
	}
	return o.Header
}

func (o *Options) queryParams() map[string]string {
	if o == nil {
		return nil
	}
	return o.QueryParams
}

func (o *Options) timeout() time.Duration {
	if o == nil || o.Timeout == 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

func (o *Options) dateFormat() DateFormat {
	if o == nil {
		return DateFormatRFC3339
	}
	return o.DateFormat
}

// expects reports whether the status code is acceptable.
// With no explicit expectation every code is acceptable at this stage,
// later pipeline steps apply the success-classification rule.
func (o *Options) expects(code int) bool {
	if o == nil || o.ExpectedStatusCodes == nil {
		return true
	}
	for _, v := range o.ExpectedStatusCodes {
		if v == code {
			return true
		}
	}
	return false
}
