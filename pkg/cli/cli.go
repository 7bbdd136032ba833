package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/roomlab/roomboard/pkg/cli/config"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "roomboard",
		Usage:   "Meeting room calendar dashboard",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// A missing .env is fine; any other read failure is not.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return ctx, err
			}

			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting roomboard", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
