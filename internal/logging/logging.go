// Package logging configures logrus for the probe's diagnostics.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TimestampFormat is used for every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// LogRotationConfig holds configuration for log rotation
type LogRotationConfig struct {
	Filename   string // Log file path
	MaxSize    int    // Maximum size in megabytes
	MaxBackups int    // Maximum number of old log files to retain
	MaxAge     int    // Maximum number of days to retain old log files
	Compress   bool   // Compress old log files
}

// DefaultLogRotationConfig returns default log rotation settings
func DefaultLogRotationConfig(logFile string) *LogRotationConfig {
	return &LogRotationConfig{
		Filename:   logFile,
		MaxSize:    10,   // 10 MB
		MaxBackups: 10,   // Keep 10 old log files
		MaxAge:     30,   // 30 days
		Compress:   true, // Compress rotated files
	}
}

// NewRotatingWriter creates a new lumberjack logger with the given configuration
func NewRotatingWriter(cfg *LogRotationConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// Options controls Setup
type Options struct {
	Level   logrus.Level
	Output  io.Writer // defaults to os.Stderr
	LogFile string    // also write to this rotating file when set
}

// Setup applies opts to logger. The returned closer releases the log file,
// if any, and is never nil.
func Setup(logger *logrus.Logger, opts Options) io.Closer {
	logger.SetLevel(opts.Level)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: TimestampFormat,
		FullTimestamp:   true,
	})

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.LogFile == "" {
		logger.SetOutput(out)
		return io.NopCloser(nil)
	}

	logWriter := NewRotatingWriter(DefaultLogRotationConfig(opts.LogFile))
	logger.SetOutput(io.MultiWriter(out, logWriter))
	logger.Debugf("Logging to file: %s (with rotation)", opts.LogFile)
	return logWriter
}
