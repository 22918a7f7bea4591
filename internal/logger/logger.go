package logger

import (
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus for structured logging with request-scoped fields
type Logger struct {
	*logrus.Entry
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithRequestID creates a logger tagged with the request correlation id.
// The id is the single key threading all log lines of one request together.
func WithRequestID(requestID string) *Logger {
	logger := New()
	if requestID == "" {
		requestID = "unknown"
	}
	return logger.WithField("request_id", requestID)
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithUser tags the logger with the acting user's id
func (l *Logger) WithUser(userID uint) *Logger {
	return l.WithField("user_id", userID)
}

// WithError tags the logger with an error field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
