// Package rest provides a typed REST client layered over a generic HTTP transport.
//
// The Client dispatches GET/POST/PUT/PATCH/DELETE calls against a base URL,
// serializes request bodies and deserializes response bodies into typed
// values, and centralizes header injection, authentication, status-code and
// MIME validation, interceptor chains and structured error reporting.
//
// Responses are decoded by a Deserializer selected per call; requests are
// authorized by an Authorizer installed at construction. Both are small
// strategy interfaces with built-in variants.
//
// The transport is abstracted by the Sender interface.
// The client.Client type is the default implementation based on net/http,
// with retry, tracing and response decoding support.
//
// RunGroup and WaitGroup are helpers for concurrent calls.
package rest
