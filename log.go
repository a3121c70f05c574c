package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logger is the application-wide logger. Debug output is off unless
// --debug is given on the command line.
var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// setDebug toggles debug-level logging
func setDebug(enabled bool) {
	if enabled {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// debugLog logs a formatted message at debug level
func debugLog(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
