package logger

import (
	"log/slog"
	"os"
)

// JSONLogger is usable before InitLogger runs (config loading logs
// through it); InitLogger narrows the level and tags the app name.
var JSONLogger *slog.Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

func InitLogger(appName string, level string) error {
	var slevel slog.Level
	if err := slevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	JSONLogger = slog.New(slog.NewJSONHandler(
		os.Stdout,
		&slog.HandlerOptions{
			Level: slevel,
		},
	)).With(slog.String("app", appName))

	return nil
}
