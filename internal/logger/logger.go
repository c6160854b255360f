package logger

import (
	"io" // Writers
	"os" // Standard output

	"github.com/sirupsen/logrus"       // Logrus for structured logging
	"gopkg.in/natefinch/lumberjack.v2" // Rotating log files
)

// Options controls how the global logrus logger is set up
type Options struct {
	Level string // trace, debug, info, warn, error
	JSON  bool   // JSON lines instead of text
	File  string // Optional rotating log file, teed with stdout
}

// Setup configures the global logrus logger
func Setup(opts Options) {
	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine-readable output in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true}) // Human-readable output
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel // Fall back to info on unknown levels
	}
	logrus.SetLevel(level)

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File, // Log file path
			MaxSize:    10,        // Megabytes before rotation
			MaxBackups: 5,         // Rotated files to keep
			MaxAge:     30,        // Days to keep rotated files
			Compress:   true,      // Gzip rotated files
		})
	}
	logrus.SetOutput(out)
}
