// Package log wraps go-logging behind a small leveled interface so the
// rest of the renderer never touches the backend setup directly.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level selects the minimum severity that reaches the sink.
type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// Every line carries a timestamp, the logger name and the severity.
var lineFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var backend logging.LeveledBackend

// Logger is what the packages in this module log through. Each named
// logger shares the process-wide sink and level.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger registered under name, creating it on first use.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all logger output to sink. Tests use this to capture
// or silence log lines.
func SetSink(sink io.Writer) {
	raw := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(raw, lineFormat)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(logging.INFO, "")
	logging.SetBackend(backend)
}

// SetLevel applies the verbosity threshold to every registered logger.
func SetLevel(level Level) {
	var target logging.Level

	switch level {
	case Debug:
		target = logging.DEBUG
	case Info:
		target = logging.INFO
	case Notice:
		target = logging.NOTICE
	case Warning:
		target = logging.WARNING
	case Error:
		target = logging.ERROR
	}

	backend.SetLevel(target, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
