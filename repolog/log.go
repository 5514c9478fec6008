package repolog

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
)

type LogLevel int

// L is the process-wide logger. It writes warnings and errors to stderr
// until the CLI replaces it.
var L = New(WARN, os.Stderr)

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return WARN, fmt.Errorf("unknown log level %q", s)
}

type Logger struct {
	level   LogLevel
	logger  *log.Logger
	logFile *os.File
}

// New returns a logger writing to w.
func New(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
	}
}

// NewLogger logs to logFilePath, or to stderr when the path is empty so that
// command output on stdout stays clean.
func NewLogger(level LogLevel, logFilePath string) (*Logger, error) {
	if logFilePath == "" {
		return New(level, os.Stderr), nil
	}
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	l := New(level, logFile)
	l.logFile = logFile
	return l, nil
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) logMessage(level LogLevel, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if ok {
		l.logger.SetPrefix(fmt.Sprintf("[%s][%s:%d] ", level, shortFile(file), line))
	} else {
		l.logger.SetPrefix(fmt.Sprintf("[%s] ", level))
	}

	if format == "" {
		l.logger.Output(2, fmt.Sprint(v...))
	} else {
		l.logger.Output(2, fmt.Sprintf(format, v...))
	}
}

func shortFile(file string) string {
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		if j := strings.LastIndexByte(file[:i], '/'); j >= 0 {
			return file[j+1:]
		}
	}
	return file
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.logMessage(DEBUG, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.logMessage(INFO, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.logMessage(WARN, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.logMessage(ERROR, format, v...)
}
