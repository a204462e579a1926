package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/concierge/pkg/model"
)

func goalCommand() *cli.Command {
	return &cli.Command{
		Name:  "goal",
		Usage: "Manage personal goals",
		Commands: []*cli.Command{
			goalListCommand(),
			goalStatusCommand(),
			goalProgressCommand(),
		},
	}
}

func goalListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List goals by target date",
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

			goals, err := repo.LoadGoals(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load goals")
			}

			for _, g := range goals {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%d%%\t%s\t%s\n",
					g.ID, g.Status, g.Progress, g.TargetDate, g.Title)
			}
			return nil
		},
	}
}

// goalStatusCommand updates a goal's status directly; status changes are not
// confirmation-gated.
func goalStatusCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "status",
		Usage:     "Set a goal's status (not_started, in_progress, completed, on_hold, cancelled)",
		ArgsUsage: "<goal-id> <status>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 2 {
				return goerr.New("goal-id and status are required")
			}
			goalID := model.GoalID(c.Args().Get(0))
			status := model.GoalStatus(c.Args().Get(1))
			if err := status.Validate(); err != nil {
				return err
			}

			return updateGoal(ctx, &cfg, c, goalID, func(g *model.Goal) {
				g.Status = status
			})
		},
	}
}

func goalProgressCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "progress",
		Usage:     "Set a goal's progress percentage",
		ArgsUsage: "<goal-id> <0-100>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 2 {
				return goerr.New("goal-id and progress are required")
			}
			goalID := model.GoalID(c.Args().Get(0))

			progress, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return goerr.Wrap(err, "progress must be an integer")
			}
			if err := model.ValidateProgress(progress); err != nil {
				return err
			}

			return updateGoal(ctx, &cfg, c, goalID, func(g *model.Goal) {
				g.Progress = progress
			})
		},
	}
}

func updateGoal(ctx context.Context, cfg *config, c *cli.Command, id model.GoalID, apply func(*model.Goal)) error {
	ctx, err := cfg.setup(ctx)
	if err != nil {
		return err
	}

	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return err
	}

	goals, err := repo.LoadGoals(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load goals")
	}

	for _, g := range goals {
		if g.ID != id {
			continue
		}
		apply(g)
		if err := repo.SaveGoals(ctx, goals); err != nil {
			return goerr.Wrap(err, "failed to save goals")
		}
		fmt.Fprintf(c.Root().Writer, "Goal updated: %s\n", g.ID)
		return nil
	}

	return goerr.New("goal not found", goerr.V("goal_id", id))
}
