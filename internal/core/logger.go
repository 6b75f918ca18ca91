package core

// DebugMode enables [DEBUG] lines.
var DebugMode bool

// Logger matches service.Logger from kardianos/service so the service
// manager's logger can be passed straight through.
type Logger interface {
	Info(v ...interface{}) error
	Infof(format string, v ...interface{}) error
	Error(v ...interface{}) error
	Errorf(format string, v ...interface{}) error
	Warning(v ...interface{}) error
	Warningf(format string, v ...interface{}) error
}

func debugLog(logger Logger, format string, v ...interface{}) {
	if DebugMode && logger != nil {
		logger.Infof("[DEBUG] "+format, v...)
	}
}

type nopLogger struct{}

func (nopLogger) Info(v ...interface{}) error                    { return nil }
func (nopLogger) Infof(format string, v ...interface{}) error    { return nil }
func (nopLogger) Error(v ...interface{}) error                   { return nil }
func (nopLogger) Errorf(format string, v ...interface{}) error   { return nil }
func (nopLogger) Warning(v ...interface{}) error                 { return nil }
func (nopLogger) Warningf(format string, v ...interface{}) error { return nil }

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
