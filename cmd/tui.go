package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/tasks"
	"github.com/desertthunder/songpick/internal/ui"
)

// tuiLogPath receives logs while the terminal view owns the screen.
var tuiLogPath = filepath.Join("tmp", "songpick-tui.log")

// pickTUI runs a pick inside the interactive terminal view.
func (r *Runner) pickTUI(ctx context.Context, opts tasks.PickOptions) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, tasks.NewScanner(fileLogger, r.extractor), opts)
	defer model.Stop()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	result, err := model.Result()
	if result != nil {
		r.writePickSummary(result)
	}
	return err
}
