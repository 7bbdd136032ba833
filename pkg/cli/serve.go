package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/roomlab/roomboard/pkg/cli/config"
	httpctrl "github.com/roomlab/roomboard/pkg/controller/http"
	"github.com/roomlab/roomboard/pkg/service/calendar"
	"github.com/roomlab/roomboard/pkg/usecase"
	"github.com/roomlab/roomboard/pkg/utils/logging"
	"github.com/roomlab/roomboard/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var calendarRetries int64
	var googleCfg config.Google
	var repoCfg config.Repository
	var roomsCfg config.Rooms

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ROOMBOARD_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for the application (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("ROOMBOARD_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.Int64Flag{
			Name:        "calendar-retries",
			Usage:       "Total attempts for a calendar API call",
			Value:       3,
			Sources:     cli.EnvVars("ROOMBOARD_CALENDAR_RETRIES"),
			Destination: &calendarRetries,
		},
	}

	// Add shared config flags
	flags = append(flags, googleCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, roomsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			oauthCfg, err := googleCfg.Configure(baseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Google OAuth")
			}

			rooms, err := roomsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load rooms configuration")
			}
			logging.Default().Info("Rooms configured", "count", len(rooms), "google", googleCfg)
			if len(rooms) > 1 {
				logging.Default().Warn("multiple rooms configured, the dashboard serves the first",
					"room", rooms[0].ID)
			}

			calendarSvc := calendar.New(calendar.WithRetries(int(calendarRetries)))

			uc := usecase.New(repo, googleCfg.ClientID(),
				usecase.WithOAuthConfig(oauthCfg),
				usecase.WithCalendarSource(calendarSvc),
			)

			httpHandler := httpctrl.New(uc, googleCfg.ClientID(),
				httpctrl.WithRooms(rooms),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
