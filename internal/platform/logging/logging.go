// Package logging configures logrus loggers from the LOG_LEVEL and LOG_FORMAT settings.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stderr with the given level and format ("text" or "json").
// An unknown level falls back to info.
func New(level, format string) *logrus.Logger {
	logger := logrus.New()
	Configure(logger, level, format)
	return logger
}

// Configure applies level and format to an existing logger, e.g. logrus.StandardLogger().
func Configure(logger *logrus.Logger, level, format string) {
	logger.SetOutput(os.Stderr)
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}
