package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/app/appcontext"
)

const logDir = "logs"

// Configure replaces the global logger. Servers also log to a rotated
// logs/app.log; CLI commands only log to stdout.
func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var stdout io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339Nano,
	}
	if conf.LogJsonStdout {
		stdout = os.Stdout
	}

	writers := []io.Writer{stdout}
	if conf.AppContext.Env == appcontext.EnvServer {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "app.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	level := zerolog.DebugLevel
	if conf.DevMode {
		level = zerolog.TraceLevel
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Str("env", conf.AppContext.Env.String()).
		Logger().
		Level(level)
}
