package logging

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Observer receives the outcome of every API operation.
type Observer func(operationID string, status int, elapsed time.Duration)

// HumaMiddleware gives each operation its own LogData and emits one
// Handler.<operation>.Complete or .Error line when it finishes.
func HumaMiddleware(log *logrus.Logger, observe Observer) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		name := "unknown"
		if op := ctx.Operation(); op != nil && op.OperationID != "" {
			name = op.OperationID
		}

		logData := NewLogData(log)
		ctx = huma.WithContext(ctx, WithLogData(ctx.Context(), logData))

		start := time.Now()
		endTimer := logData.AddTiming("duration")
		next(ctx)
		endTimer()

		status := ctx.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logData.AddData("status", status)
		if observe != nil {
			observe(name, status, time.Since(start))
		}

		if status >= http.StatusInternalServerError {
			logData.Log().Errorf("Handler.%v.Error", name)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", name)
	}
}
