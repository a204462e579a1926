package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func eventCommand() *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Manage calendar events",
		Commands: []*cli.Command{
			eventListCommand(),
		},
	}
}

func eventListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List upcoming events",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			events, err := repo.LoadEvents(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load events")
			}

			for _, ev := range events {
				fmt.Fprintf(c.Root().Writer, "%s\t%s %s\t%s\n", ev.ID, ev.Date, ev.Time, ev.Title)
			}
			return nil
		},
	}
}
