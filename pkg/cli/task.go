package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/usecase/assistant"
)

func taskCommand() *cli.Command {
	return &cli.Command{
		Name:  "task",
		Usage: "Manage recurring tasks",
		Commands: []*cli.Command{
			taskListCommand(),
			taskDoneCommand(),
			taskEditCommand(),
		},
	}
}

func taskListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List recurring tasks",
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

			for _, task := range tasks {
				mark := " "
				if task.Completed {
					mark = "x"
				}
				due := task.DueDate
				if due == "" {
					due = "-"
				}
				fmt.Fprintf(c.Root().Writer, "[%s]\t%s\t%s\t%s\t%s\n", mark, task.ID, task.Title, task.Recurrence, due)
			}
			return nil
		},
	}
}

// taskDoneCommand toggles a task's completion through the confirmation
// coordinator, the same gate the chat intents go through. The action has no
// source intent, so no oracle round trip happens.
func taskDoneCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "done",
		Usage:     "Toggle completion of a task (asks for confirmation)",
		ArgsUsage: "<task-id>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return goerr.New("task-id is required")
			}
			taskID := model.TaskID(c.Args().Get(0))

			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			conv := assistant.NewConversation()
			coord := assistant.NewCoordinator(repo, nil, conv)

			prompt, ok := coord.ProposeToggle(ctx, taskID)
			if !ok {
				return goerr.New("task not found", goerr.V("task_id", taskID))
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "%s [y/N] ", prompt)

			scanner := bufio.NewScanner(os.Stdin)
			confirmed := false
			if scanner.Scan() {
				answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
				confirmed = answer == "y" || answer == "yes"
			}

			if confirmed {
				err = coord.Confirm(ctx)
			} else {
				err = coord.Cancel(ctx)
			}
			if err != nil {
				return err
			}

			for _, msg := range conv.Messages() {
				fmt.Fprintf(w, "%s\n", msg.Content)
			}
			return nil
		},
	}
}

// taskEditCommand is the direct edit path: title, recurrence and due date
// changes do not go through the confirmation pipeline.
func taskEditCommand() *cli.Command {
	var (
		cfg        config
		title      string
		recurrence string
		dueDate    string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Usage:       "New title",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "recurrence",
			Usage:       "New recurrence (daily, weekly, monthly)",
			Destination: &recurrence,
		},
		&cli.StringFlag{
			Name:        "due-date",
			Usage:       "New due date (YYYY-MM-DD), or 'none' to clear",
			Destination: &dueDate,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a task directly",
		ArgsUsage: "<task-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return goerr.New("task-id is required")
			}
			taskID := model.TaskID(c.Args().Get(0))

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

			for _, task := range tasks {
				if task.ID != taskID {
					continue
				}

				if title != "" {
					task.Title = title
				}
				if recurrence != "" {
					if err := model.Recurrence(recurrence).Validate(); err != nil {
						return err
					}
					task.Recurrence = model.Recurrence(recurrence)
				}
				switch dueDate {
				case "":
				case "none":
					task.DueDate = ""
				default:
					task.DueDate = dueDate
				}

				if err := repo.SaveTasks(ctx, tasks); err != nil {
					return goerr.Wrap(err, "failed to save tasks")
				}

				fmt.Fprintf(c.Root().Writer, "Task updated: %s\n", task.ID)
				return nil
			}

			return goerr.New("task not found", goerr.V("task_id", taskID))
		},
	}
}
