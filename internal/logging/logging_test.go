package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(t *testing.T) (*logrus.Logger, *bytes.Buffer) {
	t.Helper()
	logger := SetupLogging("debug")
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("loud").Level)
}

func TestLogData_FieldsAndError(t *testing.T) {
	logger, buf := captureLogger(t)
	data := NewLogData(logger)
	data.AddData("month", "2024-02")
	data.AddTiming("query")()
	data.SetError(errors.New("boom"))

	data.Log().Info("done")

	line := lastLine(t, buf)
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, "2024-02", line["month"])
	assert.Equal(t, "boom", line["error"])
	assert.Contains(t, line, "query")
}

func TestGetLogData_FallsBackWhenMissing(t *testing.T) {
	logger, _ := captureLogger(t)
	attached := NewLogData(logger)

	assert.Same(t, attached, GetLogData(WithLogData(context.Background(), attached)))
	assert.NotNil(t, GetLogData(context.Background()))
}

func TestLoggingWrapper(t *testing.T) {
	logger, buf := captureLogger(t)

	type observed struct {
		name   string
		status int
	}
	var seen []observed
	observe := func(name string, status int, _ time.Duration) {
		seen = append(seen, observed{name, status})
	}

	ok := LoggingWrapper("Ok", logger, observe, func(w http.ResponseWriter, r *http.Request, l *LogData) error {
		assert.Same(t, l, GetLogData(r.Context()))
		l.AddData("answer", 42)
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
	ok(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	line := lastLine(t, buf)
	assert.Equal(t, "Handler.Ok.Complete", line["msg"])
	assert.EqualValues(t, 42, line["answer"])
	assert.EqualValues(t, http.StatusNoContent, line["status"])
	assert.Contains(t, line, "duration")

	failing := LoggingWrapper("Fail", logger, observe, func(http.ResponseWriter, *http.Request, *LogData) error {
		return errors.New("nope")
	})
	rec := httptest.NewRecorder()
	failing(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	line = lastLine(t, buf)
	assert.Equal(t, "Handler.Fail.Error", line["msg"])
	assert.Equal(t, "error", line["loglevel"])
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.Equal(t, []observed{{"Ok", http.StatusNoContent}, {"Fail", http.StatusInternalServerError}}, seen)
}

func TestLoggingWrapper_KeepsWrittenStatusOnError(t *testing.T) {
	logger, buf := captureLogger(t)

	h := LoggingWrapper("Down", logger, nil, func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusServiceUnavailable)
		return errors.New("db down")
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	line := lastLine(t, buf)
	assert.EqualValues(t, http.StatusServiceUnavailable, line["status"])
	assert.Equal(t, "db down", line["error"])
}

func TestSentryHook_LevelsAndNoClient(t *testing.T) {
	hook := NewSentryHook(sentry.NewHub(nil, sentry.NewScope()))

	assert.ElementsMatch(t, []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}, hook.Levels())

	logger, _ := captureLogger(t)
	entry := logrus.NewEntry(logger).WithError(errors.New("boom"))
	entry.Level = logrus.ErrorLevel
	assert.NoError(t, hook.Fire(entry))
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(logrus.ErrorLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelInfo, sentryLevel(logrus.DebugLevel))
}

func TestRetryLogger_FieldsAndLevels(t *testing.T) {
	logger, buf := captureLogger(t)
	rl := NewRetryLogger(logger)

	rl.Debug("retrying request", "request", "GET /summary", "retry", 2)
	line := lastLine(t, buf)
	assert.Equal(t, "retrying request", line["msg"])
	assert.Equal(t, "debug", line["loglevel"])
	assert.Equal(t, "GET /summary", line["request"])
	assert.EqualValues(t, 2, line["retry"])

	rl.Info("informational", 7, "non-string key", "dangling")
	line = lastLine(t, buf)
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, "non-string key", line["7"])
	assert.NotContains(t, line, "dangling")

	rl.Error("giving up", "attempts", 3)
	assert.Equal(t, "error", lastLine(t, buf)["loglevel"])
}
