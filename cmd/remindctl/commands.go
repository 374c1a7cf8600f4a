package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/infra/repository"
	"github.com/KasumiMercury/situgas/internal/service/notify"
	"github.com/KasumiMercury/situgas/internal/service/scheduler"
	"github.com/KasumiMercury/situgas/internal/service/taskstore"
)

// localUser keys the single in-memory session an export represents.
const localUser = "local"

func newEvaluateCmd(f *flags) *cli.Command {
	var at string

	return &cli.Command{
		Name:      "evaluate",
		Usage:     "Print the notifications the tasks produce at one instant",
		UsageText: "remindctl --file tasks.json evaluate [--at 2024-03-10T12:00:00Z]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "at",
				Usage:       "evaluation time in RFC3339, defaults to now",
				Destination: &at,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				now = parsed
			}

			state := repository.NewMemoryState(time.Hour)
			svc := notify.NewService(taskstore.NewLocalFile(f.file), state, state, nil)

			result, err := svc.Poll(ctx, localUser, now)
			if err != nil {
				return err
			}

			out := c.Root().Writer
			if len(result.Emitted) == 0 && !f.json {
				fmt.Fprintf(out, "No notifications (%d tasks evaluated)\n", result.Evaluated)
				return nil
			}
			return newPrinter(out, f.json).print(result.Emitted)
		},
	}
}

func newWatchCmd(f *flags) *cli.Command {
	var interval time.Duration

	return &cli.Command{
		Name:      "watch",
		Usage:     "Poll the export on an interval and print new notifications",
		UsageText: "remindctl --file tasks.json watch [--interval 1m]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Value:       time.Minute,
				Usage:       "poll interval",
				Destination: &interval,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			state := repository.NewMemoryState(24 * time.Hour)
			printer := newPrinter(c.Root().Writer, f.json)
			svc := notify.NewService(taskstore.NewLocalFile(f.file), state, state, nil, printer)

			if err := svc.StartSession(ctx, localUser, time.Now()); err != nil {
				return err
			}

			slog.InfoContext(ctx, "watching export",
				slog.String("file", f.file),
				slog.Duration("interval", interval),
			)

			return scheduler.New(svc, interval, 1, nil).Run(ctx)
		},
	}
}

// printer writes notifications to the terminal. It doubles as a sink for
// the watch loop.
type printer struct {
	out  io.Writer
	json bool
}

func newPrinter(out io.Writer, asJSON bool) *printer {
	return &printer{out: out, json: asJSON}
}

func (p *printer) Name() string {
	return "stdout"
}

func (p *printer) Publish(_ context.Context, _ string, notifications []domain.Notification) error {
	return p.print(notifications)
}

func (p *printer) print(notifications []domain.Notification) error {
	if p.json {
		enc := json.NewEncoder(p.out)
		for _, n := range notifications {
			if err := enc.Encode(n); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for _, n := range notifications {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			n.Severity, n.TaskTitle, n.Message, n.Deadline.Format(time.RFC3339))
	}
	return w.Flush()
}
