/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package log provides structured logging built on top of logf,
// and scoping of log fields (such as call ids) through context.Context.
package log

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ssgreg/logf"
	"github.com/ssgreg/logftext"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field is a single structured log field.
type Field = logf.Field

// CloseFunc flushes buffered entries and stops the background writer of the logger.
type CloseFunc func()

// Field constructors.
var (
	String   = logf.String
	Int      = logf.Int
	Duration = logf.Duration
	Bool     = logf.Bool
	// Error makes a field with the "error" key.
	Error = logf.Error
)

// FieldLogger writes structured log entries.
// Implementations must be safe for concurrent use.
type FieldLogger interface {
	With(fs ...Field) FieldLogger
	WithLevel(level Level) FieldLogger

	Debug(msg string, fs ...Field)
	Info(msg string, fs ...Field)
	Warn(msg string, fs ...Field)
	Error(msg string, fs ...Field)
}

// LogfAdapter implements FieldLogger over logf.Logger.
type LogfAdapter struct {
	Logger *logf.Logger
}

var _ FieldLogger = (*LogfAdapter)(nil)

// NewDisabledLogger returns a logger that drops everything.
func NewDisabledLogger() FieldLogger {
	return &LogfAdapter{Logger: logf.NewDisabledLogger()}
}

// NewLogger makes a logger writing entries asynchronously according to cfg.
// The returned CloseFunc must be called before exit, otherwise the last entries may be lost.
func NewLogger(cfg *Config) (FieldLogger, CloseFunc) {
	w, closeWriter := logf.NewChannelWriter(logf.ChannelWriterConfig{
		Appender:          newAppender(cfg, newOutputWriter(cfg)),
		EnableSyncOnError: true,
	})
	logger := logf.NewLogger(toLogfLevel(cfg.Level), w).With(logf.Int("pid", os.Getpid()))
	if cfg.AddCaller {
		logger = logger.WithCaller().WithCallerSkip(1) // skip LogfAdapter frame
	}
	return &LogfAdapter{Logger: logger}, CloseFunc(closeWriter)
}

func (l *LogfAdapter) With(fs ...Field) FieldLogger {
	return &LogfAdapter{Logger: l.Logger.With(fs...)}
}

// WithLevel returns a logger that additionally drops entries below level.
// It can only make the logger stricter.
func (l *LogfAdapter) WithLevel(level Level) FieldLogger {
	return &LogfAdapter{Logger: l.Logger.WithLevel(toLogfLevel(level))}
}

func (l *LogfAdapter) Debug(msg string, fs ...Field) { l.Logger.Debug(msg, fs...) }
func (l *LogfAdapter) Info(msg string, fs ...Field)  { l.Logger.Info(msg, fs...) }
func (l *LogfAdapter) Warn(msg string, fs ...Field)  { l.Logger.Warn(msg, fs...) }
func (l *LogfAdapter) Error(msg string, fs ...Field) { l.Logger.Error(msg, fs...) }

func toLogfLevel(level Level) logf.Level {
	switch level {
	case LevelDebug:
		return logf.LevelDebug
	case LevelWarn:
		return logf.LevelWarn
	case LevelError:
		return logf.LevelError
	default:
		return logf.LevelInfo
	}
}

func newOutputWriter(cfg *Config) io.Writer {
	switch cfg.Output {
	case OutputStderr:
		return os.Stderr
	case OutputFile:
		rotation := cfg.File.Rotation
		return &lumberjack.Logger{
			Filename:   expandPathPlaceholders(cfg.File.Path),
			MaxSize:    int(rotation.MaxSize / (1024 * 1024)), // in megabytes
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAgeDays,
			Compress:   rotation.Compress,
			LocalTime:  rotation.LocalTimeInNames,
		}
	default:
		return os.Stdout
	}
}

func newAppender(cfg *Config, w io.Writer) logf.Appender {
	var encodeError logf.ErrorEncoder
	if cfg.Error.NoVerbose || cfg.Error.VerboseSuffix != "" {
		encodeError = logf.NewErrorEncoder(logf.ErrorEncoderConfig{
			NoVerboseField:     cfg.Error.NoVerbose,
			VerboseFieldSuffix: cfg.Error.VerboseSuffix,
		})
	}

	if cfg.Format == FormatText {
		noColor := cfg.NoColor
		return logftext.NewAppender(w, logftext.EncoderConfig{
			NoColor:     &noColor,
			EncodeTime:  logf.RFC3339NanoTimeEncoder,
			EncodeError: encodeError,
		})
	}
	return logf.NewWriteAppender(w, logf.NewJSONEncoder(logf.JSONEncoderConfig{
		FieldKeyTime: "time",
		EncodeTime:   logf.RFC3339NanoTimeEncoder,
		EncodeError:  encodeError,
	}))
}

// expandPathPlaceholders substitutes {{pid}} and {{starttime}} in a log file path,
// so several processes can write to separate files.
func expandPathPlaceholders(path string) string {
	return strings.NewReplacer(
		"{{pid}}", strconv.Itoa(os.Getpid()),
		"{{starttime}}", time.Now().Format("200601021504"),
	).Replace(path)
}
