package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Server configuration parameters",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get a parameter as a [name, value] pair",
				ArgsUsage: "PARAM",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("config get: expected PARAM")
					}
					return runOnce(c, "CONFIG", "GET", c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Set a parameter",
				ArgsUsage: "PARAM VALUE",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("config set: expected PARAM VALUE")
					}
					return runOnce(c, "CONFIG", "SET", c.Args().Get(0), c.Args().Get(1))
				},
			},
		},
	}
}
