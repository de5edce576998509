// SPDX-License-Identifier: EPL-2.0

// Package logger is the process wide zerolog console logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Level represents logging levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel           = LevelInfo
	output       io.Writer = os.Stderr
	logFile      *os.File
	logger       zerolog.Logger
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Anything else is LevelInfo.
func ParseLevel(level string) Level {
	switch level {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetOutputFile sets the logger output to a file
func SetOutputFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	output = f
	initLogger()

	return nil
}

// SetOutput redirects the logger to w with colors disabled.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	initLogger()
}

// CloseLogFile closes the log file if it's open
func CloseLogFile() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
		output = os.Stderr
		initLogger()
	}
}

func initLogger() {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05",
		NoColor:    output != os.Stderr && output != os.Stdout,
	}

	logger = zerolog.New(consoleWriter).Level(currentLevel.zerolog()).With().Timestamp().Logger()
}

func init() {
	initLogger()
}

// SetLevel sets the log level by name, see ParseLevel.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = ParseLevel(level)
	initLogger()
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	l := logger
	return &l
}

// Debug logs a debug message
func Debug(msg string) {
	get().Debug().Msg(msg)
}

// Debugf logs a debug message with formatting
func Debugf(format string, v ...any) {
	get().Debug().Msgf(format, v...)
}

// Info logs an info message
func Info(msg string) {
	get().Info().Msg(msg)
}

// Infof logs an info message with formatting
func Infof(format string, v ...any) {
	get().Info().Msgf(format, v...)
}

// Warn logs a warning message
func Warn(msg string) {
	get().Warn().Msg(msg)
}

// Warnf logs a warning message with formatting
func Warnf(format string, v ...any) {
	get().Warn().Msgf(format, v...)
}

// Error logs an error message with the error object
func Error(msg string, err error) {
	get().Error().Err(err).Msg(msg)
}

// Errorf logs an error message with formatting and the error object
func Errorf(format string, err error, v ...any) {
	get().Error().Err(err).Msgf(format, v...)
}

// GetCurrentLevel returns the current logging level
func GetCurrentLevel() Level {
	mu.RLock()
	defer mu.RUnlock()

	return currentLevel
}
