package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel mirrors the charmbracelet levels so callers don't need to import
// the logging library directly.
type LogLevel int32

const (
	DebugLevel LogLevel = LogLevel(log.DebugLevel)
	InfoLevel  LogLevel = LogLevel(log.InfoLevel)
	WarnLevel  LogLevel = LogLevel(log.WarnLevel)
	ErrorLevel LogLevel = LogLevel(log.ErrorLevel)
	FatalLevel LogLevel = LogLevel(log.FatalLevel)
)

func (l LogLevel) String() string {
	return log.Level(l).String()
}

// ParseLogLevel accepts the usual names: debug, info, warn, error, fatal.
func ParseLogLevel(s string) (LogLevel, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return LogLevel(lvl), nil
}

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "viewgeom 📐",
	})
}

func getLogger() *logger {
	once.Do(
		func() {
			l := newLogger(os.Stderr)
			l.SetLevel(log.InfoLevel)
			singleton = &logger{l}
		})
	return singleton
}

// Logger exposes the structured logger for packages that log key/value pairs.
func Logger() *log.Logger {
	return getLogger().Logger
}

func SetLogLevel(lvl LogLevel) {
	getLogger().SetLevel(log.Level(lvl))
}

func GetLogLevel() LogLevel {
	return LogLevel(getLogger().GetLevel())
}

// RedirectLog sends all log output to w. The returned func restores the
// previous writer.
func RedirectLog(w io.Writer) func() {
	l := getLogger()
	prev := l.Logger
	next := newLogger(w)
	next.SetLevel(prev.GetLevel())
	l.Logger = next
	return func() {
		l.Logger = prev
	}
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Helper()
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Helper()
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Helper()
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Helper()
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Helper()
	getLogger().Fatalf(msg, args...)
}
