// Package logging holds the process-wide logger shared by all subsystems.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogger is the base logger. Subsystems derive their own entry from
// it with a logfields.LogSubsys field.
var DefaultLogger = initializeDefaultLogger()

func initializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// SetupLogging configures the default logger. debug enables debug level
// output, format is one of "text" or "json".
func SetupLogging(debug bool, format string) {
	if debug {
		DefaultLogger.SetLevel(logrus.DebugLevel)
	} else {
		DefaultLogger.SetLevel(logrus.InfoLevel)
	}

	switch format {
	case "json":
		DefaultLogger.SetFormatter(&logrus.JSONFormatter{})
	default:
		DefaultLogger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
}

// SetOutput redirects the default logger, used by tests to silence output.
func SetOutput(w io.Writer) {
	DefaultLogger.SetOutput(w)
}
