package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// package logger instance
	log = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
	}
	l.Level = logrus.InfoLevel
	return l
}

// SetLogLevelString changes the command log level.
func SetLogLevelString(level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	SetLogLevel(ll)
	return nil // OK
}

// SetLogLevel changes the command log level.
func SetLogLevel(level logrus.Level) {
	log.Level = level
}

// GetLogLevel gets the command log level.
func GetLogLevel() logrus.Level {
	return log.Level
}
