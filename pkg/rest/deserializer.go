package rest

import (
	"fmt"
)

// Deserializer converts raw response bytes to a typed value.
// It also declares the Accept header value sent with the request.
type Deserializer interface {
	// AcceptHeader returns the value of the request Accept header.
	AcceptHeader() string
	// Deserialize converts response bytes to a typed value.
	Deserialize(data []byte) (any, error)
}

// JSONDeserializer decodes a JSON body into the T type.
// The returned value is a *T.
type JSONDeserializer[T any] struct {
	// Format selects how date values in the payload are decoded.
	Format DateFormat
}

func (d JSONDeserializer[T]) AcceptHeader() string {
	return MimeApplicationJSON
}

func (d JSONDeserializer[T]) Deserialize(data []byte) (any, error) {
	target := new(T)
	if err := codecFor(d.Format).Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("cannot decode JSON body: %w", err)
	}
	return target, nil
}

// VoidDeserializer asserts that no body is expected.
// A call dispatched with it skips body and MIME processing entirely.
type VoidDeserializer struct{}

func (VoidDeserializer) AcceptHeader() string {
	return MimeAny
}

func (VoidDeserializer) Deserialize(data []byte) (any, error) {
	if len(data) > 0 {
		return nil, fmt.Errorf("expected an empty body, got %d bytes", len(data))
	}
	return nil, nil
}

// RawDeserializer passes the body bytes through unchanged.
// The returned value is a []byte.
type RawDeserializer struct{}

func (RawDeserializer) AcceptHeader() string {
	return MimeApplicationOctetStream
}

func (RawDeserializer) Deserialize(data []byte) (any, error) {
	return data, nil
}
