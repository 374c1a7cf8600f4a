// Command remindctl evaluates deadline reminders against a local-storage
// export without the API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/KasumiMercury/situgas/internal/config"
	"github.com/KasumiMercury/situgas/internal/observability/logging"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "remindctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type flags struct {
	file     string
	logLevel string
	json     bool
}

func newApp() *cli.Command {
	f := &flags{}

	app := &cli.Command{
		Name:    "remindctl",
		Usage:   "Evaluate task deadline reminders from a local export",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the exported tasks (.json, .yaml or .yml)",
				Required:    true,
				Destination: &f.file,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Value:       "warn",
				Usage:       "debug, info, warn or error",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Destination: &f.logLevel,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print notifications as JSON lines",
				Destination: &f.json,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			slog.SetDefault(logging.NewLogger(c.Root().ErrWriter, logging.HandlerConfig{
				Service:       logging.ServiceInfo{Name: "remindctl", Version: version},
				Environment:   logging.EnvDev,
				DefaultModule: logging.Module("remindctl"),
				Level:         config.ParseLogLevel(f.logLevel),
			}))
			return ctx, nil
		},
	}

	app.Commands = []*cli.Command{
		newEvaluateCmd(f),
		newWatchCmd(f),
	}

	return app
}
