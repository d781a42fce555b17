// Package logger holds the diagnostics logger shared by the readers and the command line.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
	// logFile is the file opened by Configure, closed once the logger stops writing to it
	logFile *os.File
)

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the level and destination of the logger, an empty filename keeps stderr.
// The level falls back to GOBEM_LOG_LEVEL, then to "warn".
func Configure(level string, filename string) (err error) {
	if level == "" {
		level = strings.ToLower(os.Getenv("GOBEM_LOG_LEVEL"))
	}

	if filename == "" {
		SetOutput(os.Stderr)
	} else {
		var file *os.File
		if file, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err != nil {
			return
		}
		SetOutput(file)
		logFile = file
	}
	Logger.SetLevel(ParseLevel(level))
	return
}

// SetOutput replaces the logger with one writing to w, keeping the current level
func SetOutput(w io.Writer) {
	if logFile != nil {
		if f, ok := w.(*os.File); !ok || f != logFile {
			logFile.Close()
			logFile = nil
		}
	}
	level := Logger.GetLevel()
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// ParseLevel converts a level name, unknown names give the warn level
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
