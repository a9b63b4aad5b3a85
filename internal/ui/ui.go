package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ConfirmView ViewState = iota
	ScanView
	ResultView
)

// maxLogLines caps the messages shown while scanning.
const maxLogLines = 8

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	scanner      *tasks.Scanner
	opts         tasks.PickOptions
	width        int
	height       int
	progressChan chan tasks.ProgressUpdate
	outcome      chan scanOutcome
	done         chan struct{}
	stopOnce     sync.Once
	phase        tasks.Phase
	found        int
	total        int
	log          []string
	aborting     bool
	bar          progress.Model
	result       *tasks.ScanResult
	err          error
	unfound      list.Model
	help         help.Model
	keys         keyMap
}

// NewModel creates a TUI model that runs scanner with opts once the user confirms.
func NewModel(ctx context.Context, scanner *tasks.Scanner, opts tasks.PickOptions) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		view:    ConfirmView,
		scanner: scanner,
		opts:    opts,
		done:    make(chan struct{}),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init implements [tea.Model]; nothing runs until the scan is confirmed.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Result returns the finished scan and its error. Both are nil until the scan completes.
func (m *Model) Result() (*tasks.ScanResult, error) {
	return m.result, m.err
}

// Stop cancels a running scan and stops forwarding its progress. Safe to call more than once.
func (m *Model) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		close(m.done)
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(msg.Width-4, 60))
		if m.view == ResultView {
			m.unfound.SetSize(msg.Width-4, msg.Height-12)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ScanView:
			return m.handleScanKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.applyProgress(msg.data.(tasks.ProgressUpdate))
			return m, m.waitForProgress()
		case MsgScanComplete:
			m.complete(msg.data.(scanOutcome))
			return m, nil
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	case ScanView:
		return m.renderScan()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.start):
		m.view = ScanView
		return m, m.startScan()
	case key.Matches(msg, m.keys.no, m.keys.quit):
		m.Stop()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleScanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.abort) && !m.aborting {
		m.aborting = true
		m.cancel()
		m.appendLog("Aborting after the current file...")
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.unfound, cmd = m.unfound.Update(msg)
	return m, cmd
}

func (m *Model) startScan() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 64)
	m.outcome = make(chan scanOutcome, 1)
	rep := tasks.NewChannelReporter(m.progressChan, m.done)

	go func(ch chan tasks.ProgressUpdate, out chan<- scanOutcome) {
		result, err := m.scanner.Run(m.ctx, rep, m.opts)
		out <- scanOutcome{result: result, err: err}
		close(ch)
	}(m.progressChan, m.outcome)

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	ch, out := m.progressChan, m.outcome
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			o := <-out
			return scanCompleteMsg(o.result, o.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) applyProgress(u tasks.ProgressUpdate) {
	m.phase = u.Phase
	if u.IsMessage() {
		m.appendLog(u.Message)
		return
	}
	m.found, m.total = u.Step, u.Total
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *Model) complete(o scanOutcome) {
	m.result, m.err = o.result, o.err
	m.view = ResultView
	if m.result != nil {
		m.unfound = list.New(unfoundItems(m.result.Unfound), list.NewDefaultDelegate(), max(m.width-4, 20), max(m.height-12, 10))
		m.unfound.Title = "Not found"
	}
}

func (m *Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.found) / float64(m.total)
}

func (m *Model) phaseLabel() string {
	switch m.phase {
	case tasks.ParseList:
		return "Reading song list..."
	case tasks.ScanLibrary:
		return fmt.Sprintf("Searching library (%d/%d found)", m.found, m.total)
	case tasks.Summarize:
		return "Summarizing..."
	default:
		return "Processing..."
	}
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Pick songs from your library?")

	matching := "file names"
	if m.opts.UseMetadata {
		matching = "metadata first, then file names"
	}
	info := fmt.Sprintf("Song list: %s\nLibrary:   %s\nOutput:    %s\nMatching:  %s\n",
		m.opts.ListPath, m.opts.Library, m.opts.Output, matching)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.start, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderScan() string {
	title := styles.title.Render("Picking songs")

	var log string
	if len(m.log) > 0 {
		log = styles.box.Render(strings.Join(m.log, "\n"))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.abort})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n\n%s", title, m.phaseLabel(), m.bar.ViewAs(m.percent()), log, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil && !errors.Is(m.err, shared.ErrAborted) {
		return styles.err.Render(fmt.Sprintf("Pick failed: %v\n\nPress q to quit", m.err))
	}
	if m.result == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Search complete")
	if m.result.State == tasks.Aborted {
		title = styles.warn.Render("Scan aborted, copied files were kept")
	}

	info := fmt.Sprintf("\nCopied: %d\nAlready in output: %d\nFound: %d/%d\nFiles scanned: %d",
		m.result.Copied, m.result.Existing, m.result.Found, m.result.Total, m.result.FilesScanned)

	unfound := "\n\n" + styles.ok.Render("Every song was found")
	if len(m.result.Unfound) > 0 {
		unfound = "\n\n" + m.unfound.View()
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, unfound, helpView)
}
