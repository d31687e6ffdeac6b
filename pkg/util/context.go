package util

import (
	"context"
)

// FieldsFromContext extracts the correlation values this package stores in a context.
type FieldsFromContext struct{}

type key string

const (
	eventIDKey   = key("event-id")
	requesterKey = key("requester")
)

// Fields returns a map of the key-value pairs that this library has set into `context`.
func (f *FieldsFromContext) Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["request_id"] = GetRequestID(ctx)
	mapFields["event_id"] = GetEventID(ctx)
	mapFields["requester"] = GetRequester(ctx)

	return mapFields
}

// WithEventID returns a context with event id
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey, id)
}

// WithRequester returns a context carrying the name of the component that issued a request.
func WithRequester(ctx context.Context, requester string) context.Context {
	return context.WithValue(ctx, requesterKey, requester)
}

// GetEventID returns event id from context
// will return empty string if not present
func GetEventID(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey).(string)
	return id
}

// GetRequester returns the requester from context
// will return empty string if not present
func GetRequester(ctx context.Context) string {
	r, _ := ctx.Value(requesterKey).(string)
	return r
}
