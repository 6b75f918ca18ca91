package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Logger adapts logrus to core.Logger.
type Logger struct {
	entry *logrus.Entry
}

func New(out io.Writer, debug bool) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return &Logger{entry: logrus.NewEntry(l)}
}

// WithField returns a logger that tags every line with key=value.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Info(v ...interface{}) error {
	l.entry.Info(fmt.Sprint(v...))
	return nil
}

func (l *Logger) Infof(format string, v ...interface{}) error {
	l.entry.Infof(format, v...)
	return nil
}

func (l *Logger) Warning(v ...interface{}) error {
	l.entry.Warn(fmt.Sprint(v...))
	return nil
}

func (l *Logger) Warningf(format string, v ...interface{}) error {
	l.entry.Warnf(format, v...)
	return nil
}

func (l *Logger) Error(v ...interface{}) error {
	l.entry.Error(fmt.Sprint(v...))
	return nil
}

func (l *Logger) Errorf(format string, v ...interface{}) error {
	l.entry.Errorf(format, v...)
	return nil
}
