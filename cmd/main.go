package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songpick/internal/shared"
)

// exitAborted is the conventional exit status after SIGINT.
const exitAborted = 130

func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "songpick",
		Usage:    "Pick the songs of a song list out of a local music library",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   runner.before,
		Commands: runner.register(),
	}
}

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(runner).Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrAborted) {
			runner.logger.Warn("aborted, files copied so far were kept")
			stop()
			os.Exit(exitAborted)
		}
		runner.logger.Fatalf("application error: %v", err)
	}
}
