package rest

import (
	"fmt"
	"strconv"
	"sync"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
	"github.com/relvacode/iso8601"
)

// DateFormat selects how date/time values in a JSON payload are decoded.
// It affects payload decoding only, see Options.DateFormat.
type DateFormat int

const (
	// DateFormatRFC3339 decodes Time values in the RFC 3339 format, the default.
	DateFormatRFC3339 DateFormat = iota
	// DateFormatISO8601 decodes Time values leniently from any valid ISO 8601 representation.
	DateFormatISO8601
	// DateFormatUnixSeconds decodes Time values as seconds since the Unix epoch.
	DateFormatUnixSeconds
)

// Time is a time.Time decoded according to the DateFormat active for the call.
// It is always encoded back in the RFC 3339 format.
type Time time.Time

// UnmarshalJSON implements JSON decoding with the default DateFormatRFC3339.
// A codec obtained from a JSONDeserializer decodes the type according to the
// per-call format instead.
func (t *Time) UnmarshalJSON(data []byte) error {
	v, err := DateFormatRFC3339.parse(unquote(string(data)))
	if err != nil {
		return err
	}
	*t = Time(v)
	return nil
}

// MarshalJSON implements JSON encoding.
func (t Time) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(time.RFC3339)+2)
	b = append(b, '"')
	b = time.Time(t).AppendFormat(b, time.RFC3339)
	b = append(b, '"')
	return b, nil
}

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}

func (f DateFormat) parse(value string) (time.Time, error) {
	switch f {
	case DateFormatISO8601:
		return iso8601.ParseString(value)
	case DateFormatUnixSeconds:
		sec, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf(`"%s" is not a number of seconds: %w`, value, err)
		}
		return time.Unix(sec, 0).UTC(), nil
	default:
		return time.Parse(time.RFC3339, value)
	}
}

var (
	codecsOnce sync.Once                    //nolint:gochecknoglobals
	codecs     map[DateFormat]jsoniter.API //nolint:gochecknoglobals
)

// codecFor returns a JSON codec that decodes the Time type according to the format.
// One frozen codec per format is shared by all calls.
func codecFor(f DateFormat) jsoniter.API {
	codecsOnce.Do(func() {
		codecs = make(map[DateFormat]jsoniter.API)
		for _, format := range []DateFormat{DateFormatRFC3339, DateFormatISO8601, DateFormatUnixSeconds} {
			api := jsoniter.Config{EscapeHTML: true, SortMapKeys: true, ValidateJsonRawMessage: true}.Froze()
			api.RegisterExtension(jsoniter.DecoderExtension{
				reflect2.TypeOf(Time{}): &timeDecoder{format: format},
			})
			codecs[format] = api
		}
	})
	return codecs[f]
}

// timeDecoder decodes the Time type according to a fixed DateFormat.
type timeDecoder struct {
	format DateFormat
}

func (d *timeDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		v, err := d.format.parse(iter.ReadString())
		if err != nil {
			iter.ReportError("decode rest.Time", err.Error())
			return
		}
		*(*Time)(ptr) = Time(v)
	case jsoniter.NumberValue:
		*(*Time)(ptr) = Time(time.Unix(iter.ReadInt64(), 0).UTC())
	case jsoniter.NilValue:
		iter.ReadNil()
		*(*Time)(ptr) = Time{}
	default:
		iter.ReportError("decode rest.Time", "unexpected value type")
	}
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}
