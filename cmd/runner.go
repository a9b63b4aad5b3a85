package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/desertthunder/songpick/internal/formatter"
	"github.com/desertthunder/songpick/internal/metadata"
	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/tasks"
)

// progressInterval throttles plain progress lines; messages are always written.
const progressInterval = 250 * time.Millisecond

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config        *shared.Config
	configPath    string
	logger        *log.Logger
	output        io.Writer
	extractor     metadata.Extractor
	ownsExtractor bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Extractor  metadata.Extractor // Defaults to the tag backend when one is compiled in
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		extractor:  opts.Extractor,
	}
	if r.extractor == nil {
		r.extractor = metadata.Default(opts.Logger)
		r.ownsExtractor = true
	}
	return r
}

// SetLogger replaces the logger used by the runner and the tasks it starts.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if r.ownsExtractor {
		r.extractor = metadata.Default(l)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		pickCommand, generateCommand, compareCommand, analyzeCommand, inspectCommand, duplicatesCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before loads the configuration file and applies the logging flags ahead of every command.
//
// A missing config file is only an error when --config was given explicitly.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	if path != "" {
		switch {
		case shared.FileExists(path):
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			r.config = config
		case cmd.IsSet("config"):
			return ctx, fmt.Errorf("%w: config file %s", shared.ErrNotFound, path)
		default:
			r.logger.Debug("config file not found, using defaults", "path", path)
		}
	}

	logFile := r.config.Log.File
	if cmd.IsSet("log-file") {
		logFile = cmd.String("log-file")
	}
	if logFile != "" {
		logger, err := shared.NewFileLogger(logFile)
		if err != nil {
			return ctx, err
		}
		r.SetLogger(logger)
	}

	levelName := r.config.Log.Level
	if cmd.IsSet("log-level") {
		levelName = cmd.String("log-level")
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

// withProgress runs fn with a reporter whose updates are printed by a consumer goroutine.
//
// Returns once fn has returned and every update has been written.
func (r *Runner) withProgress(fn func(rep tasks.Reporter) error) error {
	updates := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})

	go func() {
		defer close(drained)
		r.printUpdates(updates)
	}()

	err := fn(tasks.NewChannelReporter(updates, nil))
	close(updates)
	<-drained
	return err
}

func (r *Runner) printUpdates(updates <-chan tasks.ProgressUpdate) {
	throttle := rate.Sometimes{First: 1, Interval: progressInterval}
	for update := range updates {
		if update.IsMessage() {
			r.writePlain("%s\n", update.Message)
			continue
		}
		if update.Total == 0 {
			continue
		}

		line := fmt.Sprintf("[%s] %d/%d\n", update.Phase, update.Step, update.Total)
		if update.Step == update.Total {
			r.writePlain("%s", line)
			continue
		}
		throttle.Do(func() { r.writePlain("%s", line) })
	}
}

// writeEncoded writes v as JSON or YAML. Both encodings end with a newline.
func (r *Runner) writeEncoded(format string, v any) error {
	data, err := formatter.Encode(format, v)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// requireArg returns the named string argument or an error naming it.
func requireArg(cmd *cli.Command, name string) (string, error) {
	value := cmd.StringArg(name)
	if value == "" {
		return "", fmt.Errorf("%w: missing <%s> argument", shared.ErrInvalidArgument, name)
	}
	return value, nil
}
