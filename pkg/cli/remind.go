package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/concierge/pkg/usecase/reminder"
)

func remindCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "remind",
		Usage: "Run one reminder scan and print due items",
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

			tasks, err := repo.LoadTasks(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load tasks")
			}
			goals, err := repo.LoadGoals(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load goals")
			}

			for _, notice := range reminder.Scan(tasks, goals, time.Now(), int(cfg.thresholdDays)) {
				fmt.Fprintf(c.Root().Writer, "%s\n", notice)
			}
			return nil
		},
	}
}
