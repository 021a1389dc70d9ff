package logs

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger  *zap.SugaredLogger
	logFile *os.File
	mu      sync.Mutex
)

// Options controls how Initialize builds the logger.
type Options struct {
	Level    string // debug, info, warn, error
	Encoding string // console or json
}

// Until Initialize is called nothing is written anywhere.
func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize points the logger at logDir/debug.log.
func Initialize(logDir string, opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		logDir = "."
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Warnw("failed to open log file", "path", logPath, "error", err)
		return err
	}

	if logFile != nil {
		_ = Logger.Sync()
		logFile.Close()
	}

	logFile = f
	Logger = newLogger(zapcore.AddSync(f), opts).With("app", "taskboard")

	Logger.Infow("logger initialized", "path", logPath)
	return nil
}

// SetLogger replaces the package logger. Tests use it to observe output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	Logger = l.Sugar()
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = Logger.Sync()
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		Logger = zap.NewNop().Sugar()
		return err
	}
	return nil
}

func newLogger(sink zapcore.WriteSyncer, opts Options) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			level = zapcore.InfoLevel
		}
	}

	var encoder zapcore.Encoder
	switch opts.Encoding {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(sink), level)
	return zap.New(core, zap.AddCaller()).Sugar()
}
