package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string    // debug|info|warn|error
	FilePath    string    // path template, e.g. "logs/{start}.log" or "" (no file)
	ConsoleOnly bool      // if true, do not write to the file
	HideSecrets bool      // if true, seeds are redacted in every sink
	Console     io.Writer // defaults to stderr; stdout belongs to match output
}

var StartTime = time.Now()

var (
	mu      sync.Mutex
	global  = zap.NewNop()
	sugar   = global.Sugar()
	fileOut *os.File
)

// Init initializes the global logger.
// Cfg.FilePath may contain {start} and {pid}; if empty, or cfg.ConsoleOnly=true, no file is written.
func Init(cfg Config) error {
	level := parseLevel(cfg.Level)

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "lvl",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleEncCfg := encCfg
	consoleEncCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncCfg)

	fileEncCfg := encCfg
	fileEncCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	fileEncoder := zapcore.NewConsoleEncoder(fileEncCfg)

	var console io.Writer = os.Stderr
	if cfg.Console != nil {
		console = cfg.Console
	}

	var cores []zapcore.Core
	cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(console)), level))

	var f *os.File
	if cfg.FilePath != "" && !cfg.ConsoleOnly {
		resolved := resolvePath(cfg.FilePath)
		if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}
		var err error
		f, err = os.OpenFile(resolved, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(f), level))
	}

	core := zapcore.NewTee(cores...)
	if cfg.HideSecrets {
		core = NewMaskingCore(core)
	}
	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.PanicLevel),
	)

	mu.Lock()
	defer mu.Unlock()
	if fileOut != nil {
		_ = fileOut.Close()
	}
	fileOut = f
	global = logger
	sugar = logger.Sugar()
	zap.ReplaceGlobals(logger)
	return nil
}

// Close syncs and closes the file (if open).
func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = global.Sync()
	if fileOut != nil {
		_ = fileOut.Sync()
		_ = fileOut.Close()
		fileOut = nil
	}
}

// Set installs l as the global logger. Tests use it with zaptest/observer.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
	sugar = l.Sugar()
}

func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return global
}

func S() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return sugar
}

func With(name string) *zap.SugaredLogger     { return S().Named(name) }
func WithFields(kv ...any) *zap.SugaredLogger { return S().With(kv...) }

func resolvePath(tmpl string) string {
	repl := map[string]string{
		"{start}": StartTime.Format("2006-01-02_15-04-05"),
		"{pid}":   fmt.Sprintf("%d", os.Getpid()),
	}
	path := tmpl
	for k, v := range repl {
		path = strings.ReplaceAll(path, k, v)
	}
	return path
}

func parseLevel(lvl string) zapcore.LevelEnabler {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
