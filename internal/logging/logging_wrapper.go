package logging

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// statusRecorder remembers the first status written by a plain handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// LoggingWrapper adapts a plain net/http handler that reports failure through
// its return value. It logs the same Handler.<name>.Complete/.Error lines as
// HumaMiddleware and reports the written status to observe, which may be nil.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	observe Observer,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		req = req.WithContext(WithLogData(req.Context(), logData))
		rec := &statusRecorder{ResponseWriter: w}

		start := time.Now()
		endTimer := logData.AddTiming("duration")
		err := handler(rec, req, logData)
		endTimer()

		status := rec.status
		switch {
		case status == 0 && err != nil:
			status = http.StatusInternalServerError
			http.Error(rec, http.StatusText(status), status)
		case status == 0:
			status = http.StatusOK
		}
		logData.AddData("status", status)
		if observe != nil {
			observe(loggingName, status, time.Since(start))
		}

		if err != nil {
			logData.SetError(err)
			logData.Log().Errorf("Handler.%v.Error", loggingName)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
