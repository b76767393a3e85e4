package logger

import (
	"io"
	"os"
	"strings"

	"clinic-appointment/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New configures the standard logrus logger from cfg and returns it.
// Output always goes to stdout and, when enabled, to a rotating file.
func New(cfg config.LogConfig, env string) *logrus.Logger {
	log := logrus.StandardLogger()
	Configure(log, cfg, env)
	return log
}

func Configure(log *logrus.Logger, cfg config.LogConfig, env string) {
	if strings.EqualFold(cfg.Format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetReportCaller(env == "development" && level >= logrus.DebugLevel)

	writers := []io.Writer{os.Stdout}
	if cfg.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}
	log.SetOutput(io.MultiWriter(writers...))
}
