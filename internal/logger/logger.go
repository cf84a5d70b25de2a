// Package logger owns the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance. It is usable before Init with logrus
// defaults.
var Log = logrus.New()

// Init configures Log for the given environment and level.
//
// dev: colored text output. staging and prod: JSON output, which log
// aggregators can ingest directly.
func Init(env, level string) {
	Log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("invalid log level %q, defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	switch env {
	case "prod", "staging":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.WithFields(logrus.Fields{
		"env":   env,
		"level": Log.GetLevel().String(),
	}).Debug("logger initialised")
}
