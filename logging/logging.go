// Package logging builds the process logger from LogSettings.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"linkrelay/config"
)

// New returns a logger writing to stderr, or to a rotated file when
// settings.File is set. Unknown levels fall back to info.
func New(settings config.LogSettings) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(Output(settings))

	if settings.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(settings.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// Output returns the writer log lines are sent to.
func Output(settings config.LogSettings) io.Writer {
	if settings.File == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   settings.File,
		MaxSize:    settings.MaxSizeMB,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAgeDays,
	}
}
