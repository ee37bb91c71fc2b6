package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/loop"
)

// Model is the Bubble Tea model for a pong session.
type Model struct {
	loop     *loop.Loop
	keys     KeyMap
	help     help.Model
	holds    *holdTracker
	screen   *core.Screen
	palette  *palette
	logger   *log.Logger
	tickRate int
	width    int
	height   int
	status   string
	now      func() time.Time
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer renders with r instead of lipgloss' default renderer.
// SSH sessions pass a renderer bound to the session's terminal.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) { m.palette = newPalette(r) }
}

// WithModelLogger sets the logger for session events.
func WithModelLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// NewModel creates a model driving lp.
func NewModel(lp *loop.Loop, cfg config.Config, opts ...ModelOption) Model {
	def := core.DefaultConfig()
	m := Model{
		loop:     lp,
		keys:     NewKeyMap(cfg.Keys),
		help:     help.New(),
		holds:    newHoldTracker(cfg.HoldDuration()),
		palette:  newPalette(nil),
		logger:   logging.Discard(),
		tickRate: cfg.TickRate,
		width:    def.ScreenW,
		height:   def.ScreenH,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.screen = core.NewScreen(m.width, m.fieldHeight())
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.width, m.fieldHeight())
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.loop.TogglePause()

	case key.Matches(msg, m.keys.Restart):
		m.loop.Restart()
		m.setStatus("")

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.setStatus("screenshot failed")
		} else {
			m.setStatus("saved " + path)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.width, m.fieldHeight())

	case key.Matches(msg, m.keys.Down):
		m.press(core.KeyDown)

	case key.Matches(msg, m.keys.Up):
		m.press(core.KeyUp)
	}

	return m, nil
}

// setStatus replaces the status text and refits the field to what is left
// below the footer.
func (m *Model) setStatus(s string) {
	m.status = s
	m.screen.Resize(m.width, m.fieldHeight())
}

func (m Model) press(k core.Key) {
	if m.holds.Press(k, m.now()) {
		m.loop.KeyDown(k)
	}
}

// handleTick releases keys that stopped repeating, then steps the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, k := range m.holds.Expire(now) {
		m.loop.KeyUp(k)
	}
	m.loop.Tick()
	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current frame as plain text to ~/.pong/screenshots.
func (m Model) saveScreenshot() (string, error) {
	Rasterize(m.screen, m.loop.Frame(), pong.Background)

	base, err := config.Dir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("pong_%s_%d.txt", timestamp, m.loop.Game().Tick()))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// footer renders the status line and the help view.
func (m Model) footer() string {
	snap := m.loop.Snapshot()

	parts := []string{fmt.Sprintf("tick %d", snap.Tick), fmt.Sprintf("speed %.2f", snap.Speed())}
	if held := m.loop.Held(); len(held) > 0 {
		names := make([]string, len(held))
		for i, k := range held {
			names[i] = string(k)
		}
		parts = append(parts, "held "+strings.Join(names, "+"))
	}
	if m.loop.Paused() {
		parts = append(parts, "PAUSED")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	statusStyle := m.palette.r.NewStyle().Foreground(lipgloss.Color("241")).Width(m.width)
	return statusStyle.Render(strings.Join(parts, "  ")) + "\n" + m.help.View(m.keys)
}

func (m Model) fieldHeight() int {
	return max(m.height-lipgloss.Height(m.footer()), 0)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Rasterize(m.screen, m.loop.Frame(), pong.Background)
	if m.loop.Paused() {
		m.screen.DrawTextCentered(m.screen.Height()/2, "PAUSED", core.ColorWhite)
	}
	return m.palette.render(m.screen) + "\n" + m.footer()
}

// Run starts a full-screen terminal session driving lp until the user quits.
func Run(lp *loop.Loop, cfg config.Config, opts ...ModelOption) error {
	p := tea.NewProgram(
		NewModel(lp, cfg, opts...),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
