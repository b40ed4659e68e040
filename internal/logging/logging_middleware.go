package logging

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// LoggingMiddleware is the huma counterpart of LoggingWrapper. It creates the
// request's LogData, injects it into the context so handlers can attach
// fields and timings, and emits one log line per request on completion.
func LoggingMiddleware(log *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		endTimer := logData.AddTiming("duration")

		next(huma.WithValue(ctx, contextKey{}, logData))

		endTimer()

		operationID := ctx.Operation().OperationID
		entry := logData.Log().WithField("status", ctx.Status())
		if ctx.Status() >= http.StatusInternalServerError {
			entry.Errorf("Handler.%v.Error", operationID)
			return
		}
		entry.Infof("Handler.%v.Complete", operationID)
	}
}
