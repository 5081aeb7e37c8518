package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

var std = NewLogger()

// Default returns the package level logger.
func Default() ILogger {
	return std
}

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func SetLevel(level string) {
	std.SetLevel(level)
}

func SetPrintCaller(b bool) {
	std.SetPrintCaller(b)
}

func WithField(key string, value any) *logrus.Entry {
	return std.WithField(key, value)
}

func Debug(args ...any) {
	std.Debug(args...)
}

func Info(args ...any) {
	std.Info(args...)
}

func Infof(format string, args ...any) {
	std.Infof(format, args...)
}

func Warn(args ...any) {
	std.Warn(args...)
}

func Error(args ...any) {
	std.Error(args...)
}

func Errorf(format string, args ...any) {
	std.Errorf(format, args...)
}

func Fatal(args ...any) {
	std.Fatal(args...)
}
