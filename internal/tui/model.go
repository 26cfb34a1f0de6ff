// Package tui provides a terminal preview of the overlay: the same overlay
// manager and frame driver as igtd, drawn on terminal cells by bubbletea.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/igt/internal/config"
	"github.com/jmylchreest/igt/internal/host"
	"github.com/jmylchreest/igt/internal/input"
	"github.com/jmylchreest/igt/internal/overlay"
)

// Options configures the preview.
type Options struct {
	Store  *config.Store
	Logger *slog.Logger
	Clock  overlay.Clock // nil for the system clock
}

// Model is the preview's bubbletea model.
type Model struct {
	driver   *host.Driver
	queue    *input.Queue
	canvas   *Canvas
	keys     KeyMap
	help     help.Model
	interval time.Duration

	showHelp bool
	ready    bool
}

type frameMsg time.Time

// New builds the overlay stack on a terminal canvas. The stopwatch host is
// attached and started on the first frame.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = config.NewStore(nil, config.ConfigPath())
	}

	cfg := store.Snapshot()
	kb := cfg.Keybinds
	bindings := input.ParseBindings(kb.Disabled, kb.Toggle, kb.Move, kb.Reset, logger)

	canvas := NewCanvas()
	queue := input.NewQueue()
	manager := overlay.NewManager(canvas, store, overlay.NewSession(), logger)
	driver := host.NewDriver(manager, store, queue, bindings, logger)
	if opts.Clock != nil {
		driver.SetClock(opts.Clock)
	}

	queue.Push(input.Command{Kind: input.CommandHostReady, Text: host.SourceStopwatch})
	queue.Push(input.Command{Kind: input.CommandStopwatch, Text: "start"})

	return Model{
		driver:   driver,
		queue:    queue,
		canvas:   canvas,
		keys:     NewKeyMap(bindings),
		help:     help.New(),
		interval: cfg.Display.FrameInterval.Duration(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case frameMsg:
		m.driver.Frame()
		return m, m.tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.StartPause):
		action := "start"
		if m.driver.Stopwatch().Running() {
			action = "pause"
		}
		m.queue.Push(input.Command{Kind: input.CommandStopwatch, Text: action})
		return m, nil
	case key.Matches(msg, m.keys.ResetClock):
		m.queue.Push(input.Command{Kind: input.CommandStopwatch, Text: "reset"})
		return m, nil
	}

	if k, ok := input.KeyFromTerminal(msg.String()); ok {
		m.queue.PressKey(k)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	pos := m.canvas.ScreenPoint(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.queue.MouseDown(pos)
		}
	case tea.MouseActionMotion:
		m.queue.MouseMove(pos)
	case tea.MouseActionRelease:
		m.queue.MouseUp(pos)
	}
}

// View renders the canvas and a status line.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.canvas.Render() + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	st := m.driver.Status()

	mode := "run"
	if st.MoveMode {
		mode = "move"
	}
	if st.Dragging {
		mode = "drag"
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	modeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if st.MoveMode {
		modeStyle = modeStyle.Foreground(lipgloss.Color(overlay.TextColorMoveMode.Hex()))
	}

	return modeStyle.Render(mode) + " " +
		dim.Render(st.Text) + "  " +
		m.help.ShortHelpView(m.keys.ShortHelp())
}

// Run starts the preview and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
