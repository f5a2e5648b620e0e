package main

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a JSON logger writing to w. Debug entries are dropped unless
// verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core).With(zap.String("app", "formdump"))
}

func loggerFrom(c *cli.Context) *zap.Logger {
	return newLogger(c.App.ErrWriter, c.Bool(verboseFlag))
}
