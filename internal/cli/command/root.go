package command

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

const metaConfig = "cliConfig"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "respkv command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
			ConfigCommand(),
			REPLCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("load cli config: %w", err)
			}
			if c.App.Metadata == nil {
				c.App.Metadata = make(map[string]any)
			}
			c.App.Metadata[metaConfig] = cfg
			return nil
		},
		Action: runREPL,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "respkv server address (host:port)",
			EnvVars: []string{"RESPKV_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: plain, json, yaml",
			EnvVars: []string{"RESPKV_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Dial and command timeout",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "CLI config file (default ~/.respkv/cli.yaml)",
		},
	}
}

// GlobalFlags defines flags available to all commands, with CLI config
// file values filled in for unset flags.
type GlobalFlags struct {
	Server  string
	Output  string
	Timeout time.Duration
	History string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	cfg := cliConfig(c)

	flags := &GlobalFlags{
		Server:  cfg.Server,
		Output:  cfg.Output,
		Timeout: cfg.Timeout,
		History: cfg.HistoryFile,
	}
	if c.IsSet("server") {
		flags.Server = c.String("server")
	}
	if c.IsSet("output") {
		flags.Output = c.String("output")
	}
	if c.IsSet("timeout") {
		flags.Timeout = c.Duration("timeout")
	}
	return flags
}

func cliConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// session is one connection plus the output settings of an invocation.
type session struct {
	client    *connection.Client
	formatter output.Formatter
	out       io.Writer
}

func newSession(c *cli.Context) (*session, error) {
	flags := ParseGlobalFlags(c)

	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return nil, err
	}

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}

	return &session{
		client:    connection.NewClient(flags.Server, connection.WithTimeout(flags.Timeout)),
		formatter: output.NewFormatter(format),
		out:       out,
	}, nil
}

// do sends args and prints the reply. Server error replies are printed,
// not returned.
func (s *session) do(args ...string) error {
	reply, err := s.client.Do(args...)
	if err != nil {
		return err
	}
	return s.formatter.Format(s.out, reply)
}

func (s *session) Close() error {
	return s.client.Close()
}

// runOnce opens a session, sends one command and closes it.
func runOnce(c *cli.Context, args ...string) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.do(args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
