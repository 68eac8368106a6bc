package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/repl"
)

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start interactive mode",
		Action: runREPL,
	}
}

func runREPL(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	flags := ParseGlobalFlags(c)

	opts := []repl.Option{
		repl.WithPrompt(s.client.Addr() + "> "),
		repl.WithHistory(repl.NewHistory(flags.History)),
	}
	if c.App.Reader != nil {
		opts = append(opts, repl.WithIO(c.App.Reader, s.out))
	}

	return repl.New(func(args []string) error {
		return s.do(args...)
	}, opts...).Run()
}
