package log

import (
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/teewear/storefront/internal/config"
)

// Get builds a logger writing to stdout and the rotated file at filepath.
// Each call honors its own cfg, so a service can re-acquire a logger with its
// loaded configuration after the bootstrap one.
func Get(filepath string, cfg config.Application) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Microsecond
	zerolog.ErrorFieldName = "error"
	zerolog.ErrorStackFieldName = "stack-trace"
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimestampFieldName = "timestamp"

	logLevel := zerolog.InfoLevel
	if cfg.Env == "development" {
		logLevel = zerolog.TraceLevel
	}

	fileWriter := &lumberjack.Logger{
		Filename: filepath,
		Compress: true,
	}
	output := zerolog.MultiLevelWriter(os.Stdout, fileWriter)

	logger := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Caller().
		Stack().
		Int("pid", os.Getpid()).
		Logger()

	logger.Info().
		Str(KeyTag, "log Get").
		Str(KeyProcess, "init logger").
		Msg("initialized logger")

	return logger
}
