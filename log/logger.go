// Package log enhanced zap logger
package log

import (
	"fmt"
	"math/rand"

	"github.com/Laisky/errors/v2"
	zap "github.com/Laisky/zap"
	"github.com/Laisky/zap/zapcore"
)

// SampleRateDenominator sample rate = sample / SampleRateDenominator
const SampleRateDenominator = 1000

// Shared logger of gsss, console encoding and info level by default
var Shared Logger

// Level logger level
type Level string

const (
	// LevelDebug Logger level debug
	LevelDebug Level = "debug"
	// LevelInfo Logger level info
	LevelInfo Level = "info"
	// LevelWarn Logger level warn
	LevelWarn Level = "warn"
	// LevelError Logger level error
	LevelError Level = "error"
)

func (l Level) zap() (zapcore.Level, error) {
	switch l {
	case LevelDebug:
		return zap.DebugLevel, nil
	case LevelInfo:
		return zap.InfoLevel, nil
	case LevelWarn:
		return zap.WarnLevel, nil
	case LevelError:
		return zap.ErrorLevel, nil
	default:
		return 0, errors.Errorf("invalid level: %q", string(l))
	}
}

// Encoding logger output format
type Encoding string

const (
	// EncodingConsole human readable lines
	EncodingConsole Encoding = "console"
	// EncodingJSON one json object per line
	EncodingJSON Encoding = "json"
)

// Logger zap logger whose level could be changed at runtime
type Logger interface {
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	Sync() error

	// ChangeLevel change level of logger, its parent and its children
	ChangeLevel(level Level) error
	// DebugSample emit debug log with probability sample/SampleRateDenominator
	DebugSample(sample int, msg string, fields ...zapcore.Field)
	Named(s string) Logger
	With(fields ...zapcore.Field) Logger
}

type logger struct {
	*zap.Logger

	// zap logger do not expose api to change log's level,
	// so all loggers derived from one New share this pointer.
	level zap.AtomicLevel
}

type option struct {
	name     string
	level    zapcore.Level
	encoding Encoding
	outputs  []string
}

// Option optional arguments for New
type Option func(*option) error

// WithName set logger name
func WithName(name string) Option {
	return func(o *option) error {
		o.name = name
		return nil
	}
}

// WithLevel set logger level
func WithLevel(level Level) Option {
	return func(o *option) (err error) {
		o.level, err = level.zap()
		return err
	}
}

// WithEncoding set logger encoding
func WithEncoding(encoding Encoding) Option {
	return func(o *option) error {
		switch encoding {
		case EncodingConsole, EncodingJSON:
			o.encoding = encoding
			return nil
		default:
			return errors.Errorf("invalid encoding: %q", string(encoding))
		}
	}
}

// WithOutputPaths write logs to paths instead of stderr,
// like "stdout" or a file path
func WithOutputPaths(paths ...string) Option {
	return func(o *option) error {
		if len(paths) == 0 {
			return errors.Errorf("output paths should not be empty")
		}

		o.outputs = paths
		return nil
	}
}

// New create new logger
func New(opts ...Option) (Logger, error) {
	opt := &option{
		name:     "gsss",
		level:    zap.InfoLevel,
		encoding: EncodingConsole,
		outputs:  []string{"stderr"},
	}
	for _, f := range opts {
		if err := f(opt); err != nil {
			return nil, err
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opt.encoding == EncodingConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(opt.level),
		Encoding:         string(opt.encoding),
		EncoderConfig:    encoderCfg,
		OutputPaths:      opt.outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}

	return &logger{
		Logger: zl.Named(opt.name),
		level:  cfg.Level,
	}, nil
}

func (l *logger) ChangeLevel(level Level) error {
	lvl, err := level.zap()
	if err != nil {
		return err
	}

	l.level.SetLevel(lvl)
	l.Debug("set logger level", zap.String("level", string(level)))
	return nil
}

// DebugSample sample could be [0, 1000],
// less than 0 means never, great than 1000 means certainly
func (l *logger) DebugSample(sample int, msg string, fields ...zapcore.Field) {
	if rand.Intn(SampleRateDenominator) >= sample {
		return
	}

	l.Debug(msg, fields...)
}

func (l *logger) Named(s string) Logger {
	return &logger{
		Logger: l.Logger.Named(s),
		level:  l.level,
	}
}

func (l *logger) With(fields ...zapcore.Field) Logger {
	return &logger{
		Logger: l.Logger.With(fields...),
		level:  l.level,
	}
}

func init() {
	var err error
	if Shared, err = New(); err != nil {
		panic(fmt.Sprintf("create logger: %+v", err))
	}
}
