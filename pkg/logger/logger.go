// Package logger configures the process-wide structured logger: zap for
// encoding and output, exposed to the rest of the code as a logr.Logger.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/csvx/pkg/settings"
)

type loggerContextKey struct{}

// Structured field keys shared by every log entry.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
	QueryKey       = "query"
	FileKey        = "file"
)

// DefaultOutput is the sink used when Options.OutputPath is empty.
const DefaultOutput = "stderr"

// Options selects the minimum level and destination of the global logger.
// Level follows zapcore: -1 debug, 0 info, 1 warn, 2 error.
type Options struct {
	Level      int8
	OutputPath string // file path, "stderr" or "stdout"
}

var (
	once sync.Once

	// globalZapLogger is kept for Sync().
	globalZapLogger *zap.Logger

	// globalLogrLogger is the fallback of FromContext.
	globalLogrLogger *logr.Logger

	closeSink func()

	defaultNoopLogger logr.Logger = logr.Discard()
)

// Setup initializes the global logger from opts. Only the first call takes
// effect; later calls return the logger built by the first one.
func Setup(opts Options) (*logr.Logger, error) {
	var setupErr error
	once.Do(func() {
		path := strings.TrimSpace(opts.OutputPath)
		if path == "" {
			path = DefaultOutput
		}
		sink, closeFn, err := zap.Open(path)
		if err != nil {
			setupErr = fmt.Errorf("open log output %q: %w", path, err)
			return
		}
		closeSink = closeFn

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		goVersion := "unknown"
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			goVersion = buildInfo.GoVersion
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			sink,
			zap.NewAtomicLevelAt(zapcore.Level(opts.Level)),
		).With(
			[]zapcore.Field{
				zap.String(CommitKey, settings.VersionInformation.Commit),
				zap.String(VersionKey, settings.VersionInformation.BuildVersion),
				zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
				zap.String(GoVersionKey, goVersion),
			},
		)

		globalZapLogger = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)

		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if setupErr != nil {
		return &defaultNoopLogger, setupErr
	}
	if globalLogrLogger == nil {
		return &defaultNoopLogger, nil
	}
	return globalLogrLogger, nil
}

// WithLogger returns a context carrying log. The original context is returned
// when it already holds the same logger.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		if lp == log {
			return ctx
		}
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the context logger, else the global logger, else a
// no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	} else if log := globalLogrLogger; log != nil {
		return log
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries and closes a file sink. Call it before exit.
func Sync() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
	if closeSink != nil {
		closeSink()
		closeSink = nil
	}
}

// isIgnorableSyncError reports Sync errors from stderr being a pipe or a
// console. On Windows these arrive as "The handle is invalid".
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a copy of lgr carrying keysAndValues.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
