package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/concierge/pkg/usecase/assistant"
)

func billCommand() *cli.Command {
	return &cli.Command{
		Name:  "bill",
		Usage: "Manage bill payments",
		Commands: []*cli.Command{
			billListCommand(),
		},
	}
}

func billListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List payments, most recent first",
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

			payments, err := repo.LoadPayments(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load payments")
			}

			for _, p := range payments {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\t%s\n",
					p.PaidAt.Format("2006-01-02"), assistant.FormatCurrency(p.Amount), p.Biller, p.ID)
			}
			return nil
		},
	}
}
