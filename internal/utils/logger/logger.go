package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"
	"neovideo/internal/app/server/config"
	"neovideo/internal/utils/logger/slogpretty"
)

// New создает логгер под окружение: local - цветной вывод, dev - JSON debug, prod - JSON info
func New(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog()
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

// NewWithLevel как New, но с явным уровнем из LOG_LEVEL (пустой - по окружению)
func NewWithLevel(env, level string) *slog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok {
		return New(env)
	}
	return NewWriter(env, lvl, os.Stdout)
}

// NewWriter пишет в out; CLI передает os.Stderr, чтобы не смешивать логи с выводом команд
func NewWriter(env string, level slog.Level, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if env == config.EnvLocal || env == "" {
		return slog.New(slogpretty.PrettyHandlerOptions{SlogOpts: opts}.NewPrettyHandler(out))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// ParseLevel разбирает debug/info/warn/error
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
