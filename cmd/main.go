package main

import (
	"context"
	"os"

	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Configuration is loaded before any subcommand runs and the
// stores are released after it returns.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "mindflow",
		Usage:   "Track habits, journal notes and earn achievements from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.configure,
		After:    func(ctx context.Context, cmd *cli.Command) error { return r.Close() },
		Commands: r.register(),
	}
}
