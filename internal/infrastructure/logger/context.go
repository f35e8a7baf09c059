package logger

import "context"

type contextKey string

// RequestIDKey carries the request ID through context so SQL tracing can
// correlate queries with the originating HTTP request.
const RequestIDKey contextKey = "request_id"

// ContextWithRequestID attaches the request ID to the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context, or "" when absent.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
