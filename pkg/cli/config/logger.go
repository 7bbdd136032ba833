package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/roomlab/roomboard/pkg/utils/logging"
)

// Logger holds CLI flags for logging configuration
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("ROOMBOARD_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console or json)",
			Category:    "Logging",
			Value:       "console",
			Sources:     cli.EnvVars("ROOMBOARD_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stdout, stderr or file path)",
			Category:    "Logging",
			Value:       "stdout",
			Sources:     cli.EnvVars("ROOMBOARD_LOG_OUTPUT"),
			Destination: &l.output,
		},
	}
}

func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
	)
}

// Configure builds the process-wide logger. The returned closer releases the
// output file when one is used.
func (l *Logger) Configure() (func(), error) {
	var level slog.Level
	switch l.level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("invalid log level", goerr.V("level", l.level))
	}

	closer := func() {}
	var w *os.File
	switch l.output {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(l.output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.output))
		}
		w = f
		closer = func() {
			_ = f.Close()
		}
	}

	logger, err := logging.New(w, level, logging.Format(l.format))
	if err != nil {
		closer()
		return nil, err
	}
	logging.SetDefault(logger)

	return closer, nil
}
