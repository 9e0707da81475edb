package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/reciprocal"
	"github.com/agbru/recipsum/internal/sysmon"
)

// Layout constants.
const (
	StrategiesPanelWidthPercent = 60
	sampleInterval              = 500 * time.Millisecond
)

// run is the state of one benchmark generation. Rerun cancels the current
// generation and starts the next one; messages tagged with an older
// generation are ignored.
type run struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header     HeaderModel
	strategies StrategiesModel
	metrics    MetricsModel
	spinner    spinner.Model
	help       help.Model
	keymap     KeyMap

	run

	parentCtx context.Context
	summers   []reciprocal.Summer
	input     []float64
	config    config.AppConfig
	execOpts  []orchestration.ExecOption
	ref       *programRef
	paused    bool
	failed    bool
	width     int
	height    int
}

// NewModel creates the dashboard for benchmarking strategies on input.
func NewModel(parentCtx context.Context, strategies []reciprocal.Summer, input []float64, cfg config.AppConfig, version string, opts ...orchestration.ExecOption) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:     NewHeaderModel(version),
		strategies: NewStrategiesModel(strategies),
		metrics:    NewMetricsModel(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		run: run{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		summers:   strategies,
		input:     input,
		config:    cfg,
		execOpts:  opts,
		ref:       &programRef{},
	}
}

// Init starts the first generation, the sampler and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmds(), m.spinner.Tick)
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.summers, m.input, m.config, m.generation, m.execOpts),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles every message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Generation == m.generation && !m.paused {
			m.strategies.SetProgress(msg.StrategyIndex, msg.Value, msg.AverageProgress)
			m.metrics.SetETA(msg.ETA)
		}
		return m, nil

	case ProgressDoneMsg:
		if msg.Generation == m.generation {
			m.metrics.SetETA(0)
		}
		return m, nil

	case ResultsMsg:
		if msg.Generation == m.generation {
			m.strategies.SetResults(msg.Results)
		}
		return m, nil

	case SummaryMsg:
		if msg.Generation == m.generation {
			m.strategies.SetSummary(msg)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.strategies.SetError(msg.Err)
			m.failed = true
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case BenchmarkCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.done = true
			m.exitCode = apperrors.HandleCalculationError(msg.Err, m.header.Elapsed(), io.Discard, nil)
			m.header.SetDone()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Rerun):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.done = false
		m.failed = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		m.header.Reset()
		m.strategies.Reset()
		m.metrics.Reset()
		return m, tea.Batch(m.startCmds(), m.spinner.Tick)

	case key.Matches(msg, m.keymap.Up):
		m.strategies.Move(-1)
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.strategies.Move(1)
		return m, nil
	}
	return m, nil
}

func (m *Model) layout() {
	left := m.width * StrategiesPanelWidthPercent / 100
	m.header.SetWidth(m.width)
	m.strategies.SetWidth(left)
	m.metrics.SetWidth(m.width - left)
	m.help.Width = m.width
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.strategies.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

func (m Model) footerView() string {
	var status string
	switch {
	case m.failed:
		status = errorStyle.Render("Failed")
	case m.done && m.exitCode != apperrors.ExitSuccess:
		status = warningStyle.Render("Finished with errors")
	case m.done:
		status = successStyle.Render("Done")
	case m.paused:
		status = warningStyle.Render("Paused")
	default:
		status = m.spinner.View() + " Running"
	}
	return " " + status + "  " + m.help.View(m.keymap)
}

// ExitCode returns the exit code of the last finished generation.
func (m Model) ExitCode() int { return m.exitCode }

// Run shows the dashboard while benchmarking strategies on input and
// returns the exit code of the last generation.
func Run(ctx context.Context, strategies []reciprocal.Summer, input []float64, cfg config.AppConfig, version string, opts ...orchestration.ExecOption) int {
	initTUIStyles()

	model := NewModel(ctx, strategies, input, cfg, version, opts...)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, io.Discard, nil)
	}
	return apperrors.ExitSuccess
}

func startBenchmarkCmd(ref *programRef, ctx context.Context, strategies []reciprocal.Summer, input []float64, cfg config.AppConfig, gen uint64, opts []orchestration.ExecOption) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		presenter := &TUIResultPresenter{ref: ref, gen: gen}
		results := orchestration.ExecuteStrategies(ctx, strategies, input, cfg, reporter, io.Discard, opts...)
		code := orchestration.AnalyzeResults(results, cfg, presenter, io.Discard)
		return BenchmarkCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			HeapAlloc:    ms.HeapAlloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
