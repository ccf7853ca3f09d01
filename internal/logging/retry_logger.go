package logging

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

var _ retryablehttp.LeveledLogger = (*RetryLogger)(nil)

// RetryLogger adapts logrus to retryablehttp's leveled logger. Key/value
// pairs become fields; a trailing key without a value is dropped.
type RetryLogger struct {
	logger logrus.FieldLogger
}

// NewRetryLogger uses the logrus standard logger when logger is nil.
func NewRetryLogger(logger logrus.FieldLogger) *RetryLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RetryLogger{logger: logger}
}

func (l *RetryLogger) fields(keysAndValues []interface{}) logrus.FieldLogger {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.logger.WithFields(fields)
}

func (l *RetryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l *RetryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Info(msg)
}

func (l *RetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *RetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
