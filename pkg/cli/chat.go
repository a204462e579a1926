package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/usecase/assistant"
)

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the concierge",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			session := assistant.New(assistant.NewInput{
				Repo:                  repo,
				Gemini:                gemini,
				ReminderThresholdDays: int(cfg.thresholdDays),
			})

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to open terminal")
			}
			defer rl.Close()

			w := c.Root().Writer
			fmt.Fprintf(w, "Concierge ready. Type 'exit' to quit.\n")

			// Rendered message count; everything past this is new.
			seen := 0
			render := func() {
				messages := session.Conversation().Messages()
				for _, msg := range messages[seen:] {
					printMessage(w, msg)
				}
				seen = len(messages)
			}

			session.ScanReminders(ctx)
			render()

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" {
					break
				}

				// The spinner doubles as the busy flag: no new input is read
				// while the oracle call is in flight.
				prompt, err := withSpinner(func() (string, error) {
					return session.Send(ctx, line)
				})
				if err != nil {
					fmt.Fprintf(w, "! %v\n", err)
					continue
				}
				render()

				if prompt != "" {
					confirmed, err := askYesNo(rl, prompt)
					if err != nil {
						break
					}
					_, err = withSpinner(func() (string, error) {
						if confirmed {
							return "", session.Coordinator().Confirm(ctx)
						}
						return "", session.Coordinator().Cancel(ctx)
					})
					if err != nil {
						fmt.Fprintf(w, "! %v\n", err)
					}
					render()
				}

				session.ScanReminders(ctx)
				render()
			}

			fmt.Fprintf(w, "\nGoodbye.\n")
			return nil
		},
	}
}

func printMessage(w io.Writer, msg model.Message) {
	switch msg.Role {
	case model.RoleUser:
		// The user already typed it at the prompt.
	default:
		fmt.Fprintf(w, "%s\n", msg.Content)
		for _, src := range msg.Sources {
			fmt.Fprintf(w, "  [%s] %s\n", src.Title, src.URI)
		}
	}
}

func withSpinner(fn func() (string, error)) (string, error) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " thinking..."
	sp.Start()
	defer sp.Stop()
	return fn()
}

func askYesNo(rl *readline.Instance, prompt string) (bool, error) {
	rl.SetPrompt(prompt + " [y/N] ")
	defer rl.SetPrompt("> ")

	line, err := rl.Readline()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
