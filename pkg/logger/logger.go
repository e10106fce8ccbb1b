package logger

import (
	"execdash/pkg/constants"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
)

// NewLogger builds the root application logger. When logFile is set the output is
// duplicated into a size rotated file next to stderr.
func NewLogger(name string, level string, logFile string) hclog.Logger {
	var output io.Writer = os.Stderr

	if logFile != "" {
		output = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    constants.LogFileMaxSizeMb,
			MaxBackups: constants.LogFileMaxBackups,
			Compress:   true,
		})
	}

	if level == "" {
		level = "INFO"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.LevelFromString(level),
		Output: output,
	})
}
