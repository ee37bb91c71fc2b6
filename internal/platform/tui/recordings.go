package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// maxRecordings is the number of recordings loaded into the browser.
const maxRecordings = 100

// RecordingStore is the part of storage.Store the browser needs.
type RecordingStore interface {
	RecentRecordings(limit int) ([]storage.Recording, error)
	DeleteRecording(id int64) error
}

// RecordingsKeyMap defines the key bindings for the recordings browser.
type RecordingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Replay, k.Delete, k.Quit},
	}
}

// DefaultRecordingsKeyMap returns default key bindings.
func DefaultRecordingsKeyMap() RecordingsKeyMap {
	return RecordingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordingsModel is the Bubble Tea model for browsing saved recordings.
type RecordingsModel struct {
	store    RecordingStore
	recs     []storage.Recording
	table    table.Model
	help     help.Model
	keys     RecordingsKeyMap
	width    int
	height   int
	err      error
	selected int64
	quitting bool
}

// NewRecordingsModel creates a browser over store.
func NewRecordingsModel(store RecordingStore, width, height int) RecordingsModel {
	m := RecordingsModel{
		store:  store,
		keys:   DefaultRecordingsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *RecordingsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Source", Width: 9},
		{Title: "Ticks", Width: 8},
		{Title: "Length", Width: 8},
		{Title: "Hash", Width: 17},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the recordings from the store.
func (m *RecordingsModel) load() {
	recs, err := m.store.RecentRecordings(maxRecordings)
	m.recs, m.err = recs, err
	m.table.SetRows(RecordingRows(m.recs))
}

// RecordingRows formats recordings as table rows.
func RecordingRows(recs []storage.Recording) []table.Row {
	rows := make([]table.Row, len(recs))
	for i, r := range recs {
		length := "-"
		if r.TickRate > 0 {
			d := time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate)
			length = d.Round(100 * time.Millisecond).String()
		}
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Source,
			strconv.FormatUint(r.Ticks, 10),
			length,
			fmt.Sprintf("%016x", r.FinalHash),
			date,
		}
	}
	return rows
}

// Init initializes the browser.
func (m RecordingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RecordingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if rec, ok := m.current(); ok {
				m.selected = rec.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if rec, ok := m.current(); ok {
				if err := m.store.DeleteRecording(rec.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(RecordingRows(m.recs))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RecordingsModel) current() (storage.Recording, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.recs) {
		return storage.Recording{}, false
	}
	return m.recs[i], true
}

// View renders the browser.
func (m RecordingsModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("RECORDINGS"))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.recs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No recordings yet.\nPlay with --record to save one!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the ID chosen for replay, or 0.
func (m RecordingsModel) Selected() int64 {
	return m.selected
}

// RunRecordings runs the browser and returns the recording chosen for
// replay, or 0 when the user quit.
func RunRecordings(store RecordingStore) (int64, error) {
	p := tea.NewProgram(
		NewRecordingsModel(store, 80, 24),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(RecordingsModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
