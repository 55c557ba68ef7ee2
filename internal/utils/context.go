// Package utils provides general-purpose helpers shared by the encrypted
// storage packages: request identifiers carried in a context, JSON response
// writing, and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestIDCtxKey is the key used to store a caller-chosen request ID in the
// context. The key service client sends it as X-Request-Id instead of
// generating a fresh one.
var RequestIDCtxKey = contextKey("requestID")

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, id)
}

// GetRequestIDFromContext retrieves the request ID from the context.
//
// Returns the ID and an ok flag:
//   - ok == true: a non-empty string ID is present
//   - ok == false: value is missing, empty or has an unexpected type
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok && id != ""
}
