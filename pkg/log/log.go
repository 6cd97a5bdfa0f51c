package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

type FileSink struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

func InitProd(sink *FileSink) *zap.Logger {
	return initLogger(zap.NewProductionConfig(), sink)
}

func InitDev(sink *FileSink) *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig(), sink)
}

func initLogger(config zap.Config, sink *FileSink) *zap.Logger {
	var err error
	logger, err = config.Build(zap.AddStacktrace(zap.WarnLevel))
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}

	if sink != nil && len(sink.Path) > 0 {
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   sink.Path,
			MaxSize:    sink.MaxSizeMB,
			MaxBackups: sink.MaxBackups,
		})
		// Files always get JSON regardless of the console encoding.
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), writer, config.Level)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	_ = logger.Sync()
}
