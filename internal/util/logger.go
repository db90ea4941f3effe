package util

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide diagnostic logger. It writes to stderr so
// that command output on stdout stays pipeable.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = newLogger(os.Stderr)
	})
	return logger
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.WarnLevel,
		ReportTimestamp: false,
		Prefix:          "mojifix",
	})
}

// SetVerbose switches the logger between warning and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		Logger().SetLevel(log.DebugLevel)
		Logger().SetReportTimestamp(true)
		return
	}
	Logger().SetLevel(log.WarnLevel)
}

// SetLogOutput redirects diagnostic logging, mainly for tests.
func SetLogOutput(w io.Writer) {
	Logger().SetOutput(w)
}
