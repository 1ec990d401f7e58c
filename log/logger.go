package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// Verbosity levels accepted by SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:-7s} %{module}%{color:reset} | %{message}`,
)

var (
	backend logging.LeveledBackend

	// Active verbosity; reapplied whenever the sink changes.
	currentLevel = logging.NOTICE
)

// Named leveled logger handed out to the subsystems of this module.
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

// Create a logger for the given subsystem name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Redirect log output to sink. The active verbosity carries over.
func SetSink(sink io.Writer) {
	raw := logging.NewLogBackend(sink, "", 0)
	backend = logging.AddModuleLevel(logging.NewBackendFormatter(raw, format))
	backend.SetLevel(currentLevel, "")
	logging.SetBackend(backend)
}

// Set logger verbosity.
func SetLevel(level Level) {
	switch level {
	case Debug:
		currentLevel = logging.DEBUG
	case Info:
		currentLevel = logging.INFO
	case Notice:
		currentLevel = logging.NOTICE
	case Warning:
		currentLevel = logging.WARNING
	case Error:
		currentLevel = logging.ERROR
	}

	backend.SetLevel(currentLevel, "")
}

func init() {
	SetSink(os.Stdout)
}
