package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logs go to stderr; stdout carries the report output.
var globalLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

var once sync.Once

// InitLogging configures the global zerolog logger. Level falls back to info
// when the given name is not a zerolog level.
func InitLogging(logFilePath, level string) {
	once.Do(func() {
		var writers []io.Writer
		writers = append(writers, os.Stderr)

		if logFilePath != "" {
			file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
			if err != nil {
				// We can't use the logger yet, so just print to stderr
				os.Stderr.WriteString("Failed to open log file: " + err.Error() + "\n")
			} else {
				writers = append(writers, file)
			}
		}

		lvl, err := zerolog.ParseLevel(level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}

		multi := zerolog.MultiLevelWriter(writers...)
		logger := zerolog.New(multi).With().Timestamp().Logger().Level(lvl)
		globalLogger = logger
		log.Logger = logger
	})
}

// WithLogger returns a new context containing the logger with additional fields.
func WithLogger(ctx context.Context, fields map[string]interface{}) context.Context {
	l := getLogger(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// getLogger extracts the zerolog logger from the context, falling back to the global logger.
func getLogger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	// zerolog.Ctx returns a disabled logger if none is in context
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// DebugLog logs a debug level message.
func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Debug().Msgf(msg, args...)
}

// InfoLog logs an info level message.
func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Info().Msgf(msg, args...)
}

// WarnLog logs a warning level message. A trailing error argument is also
// attached with Err.
func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	withErr(getLogger(ctx).Warn(), args).Msgf(msg, args...)
}

// ErrorLog logs an error level message. A trailing error argument is also
// attached with Err.
func ErrorLog(ctx context.Context, msg string, args ...interface{}) {
	withErr(getLogger(ctx).Error(), args).Msgf(msg, args...)
}

func withErr(ev *zerolog.Event, args []interface{}) *zerolog.Event {
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			return ev.Err(err)
		}
	}
	return ev
}
