package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	WithField(key string, value any) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
	SetOutput(w io.Writer)
	SetLevel(level string)
	SetPrintCaller(b bool)
}

type logger struct {
	*logrus.Logger
}

func NewLogger() ILogger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &logger{Logger: l}
}

// SetLevel falls back to info for unknown level names.
func (l *logger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.Logger.SetLevel(lvl)
}

func (l *logger) SetPrintCaller(b bool) {
	l.Logger.SetReportCaller(b)
}

// GetRotateWriter returns a size based rotating file writer.
// An empty path writes to stdout.
func GetRotateWriter(logPath string) io.Writer {
	if logPath == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		LocalTime:  true,
	}
}
