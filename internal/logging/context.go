package logging

import "context"

type contextKey struct{}

// WithLogData attaches request-scoped log data to the context.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, contextKey{}, logData)
}

// GetLogData returns the request's LogData, or nil when the request did not
// pass through LoggingWrapper (e.g. in handler unit tests).
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(contextKey{}).(*LogData)
	return logData
}
