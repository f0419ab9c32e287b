// Package logging builds the zap logger used by the CLI from configuration.
//
// The console core writes to the given sink (stderr in the CLI) in the
// configured format. When a log file is set, a second JSON core writes to it
// through lumberjack, which rotates by size and age.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alnah/go-html2pdf/internal/config"
)

// ErrInvalidLevel is returned for an unparseable log level.
var ErrInvalidLevel = errors.New("invalid log level")

// Rotation defaults applied when the config leaves them at zero.
const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// New returns a logger writing to console and, if cfg.File is set, to a
// rotating file. The logger is named "html2pdf".
func New(cfg config.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(cfg.Format), console, level),
	}

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(cfg.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(cfg.MaxAgeDays, defaultMaxAgeDays),
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder(config.LogFormatJSON), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("html2pdf"), nil
}

// ParseLevel parses a level name. Empty means warn.
func ParseLevel(s string) (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if s == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if strings.EqualFold(format, config.LogFormatJSON) {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}

	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(name + ".")
	}
	return zapcore.NewConsoleEncoder(ec)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
