package utils

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"path"
	"path/filepath"
	"time"
)

const logFileTimestampLayout = "20060102_150405"

// LogFileName names a run-scoped log file, e.g. report_20220113_093000.log
func LogFileName(command string, at time.Time) string {
	return fmt.Sprintf("%s_%s.log", command, at.Format(logFileTimestampLayout))
}

// SetupLogger tees everything at debug level into logFilePath and info (or debug) to the console.
// The returned function flushes and closes the log file.
func SetupLogger(logFilePath string, isDebug bool) (*zap.SugaredLogger, func() error, error) {
	err := os.MkdirAll(filepath.Dir(logFilePath), 0750)

	if err != nil {
		return nil, nil, err
	}

	logFile, err := os.OpenFile(path.Clean(logFilePath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)

	if err != nil {
		return nil, nil, err
	}

	consoleLevel := zapcore.InfoLevel

	if isDebug {
		consoleLevel = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(false)), zapcore.Lock(os.Stderr), consoleLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(true)), zapcore.AddSync(logFile), zapcore.DebugLevel),
	)

	logger := zap.New(core).Sugar()

	closer := func() error {
		// Syncing stderr fails on some terminals, only the file matters here
		_ = logger.Sync()
		return logFile.Close()
	}

	return logger, closer, nil
}

func encoderConfig(withTime bool) zapcore.EncoderConfig {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	}

	if withTime {
		encoderConfig.TimeKey = "time"
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("[2006-01-02 15:04:05]")
	}

	return encoderConfig
}
