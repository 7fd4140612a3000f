package light

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used throughout this package. It mirrors
// the with-context style common to long-running node components: callers
// attach fields once via With and reuse the returned Logger for the
// lifetime of the component it describes.
type Logger interface {
	With(keyvals ...interface{}) Logger
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NewLogger returns a Logger backed by zerolog, writing to w.
func NewLogger(w io.Writer) Logger {
	return zerologLogger{zerolog.New(w).With().Timestamp().Logger()}
}

// NopLogger discards everything logged through it.
func NopLogger() Logger {
	return NewLogger(io.Discard)
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l zerologLogger) With(keyvals ...interface{}) Logger {
	ctx := l.logger.With()
	for i := 0; i+1 < len(keyvals); i += 2 {
		ctx = ctx.Interface(toField(keyvals[i]), keyvals[i+1])
	}
	return zerologLogger{ctx.Logger()}
}

func (l zerologLogger) Debug(msg string, keyvals ...interface{}) {
	logEvent(l.logger.Debug(), msg, keyvals)
}

func (l zerologLogger) Info(msg string, keyvals ...interface{}) {
	logEvent(l.logger.Info(), msg, keyvals)
}

func (l zerologLogger) Error(msg string, keyvals ...interface{}) {
	logEvent(l.logger.Error(), msg, keyvals)
}

func logEvent(e *zerolog.Event, msg string, keyvals []interface{}) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		e = e.Interface(toField(keyvals[i]), keyvals[i+1])
	}
	e.Msg(msg)
}

func toField(key interface{}) string {
	if s, ok := key.(string); ok {
		return s
	}
	return "field"
}
