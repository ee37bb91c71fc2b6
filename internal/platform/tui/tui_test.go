package tui

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapFromConfig(t *testing.T) {
	cfg := config.Default().Keys
	cfg.Up = []string{"k"}
	km := NewKeyMap(cfg)

	tests := []struct {
		msg     string
		binding key.Binding
		want    bool
	}{
		{"k", km.Up, true},
		{"w", km.Up, false},
		{"down", km.Down, true},
		{"s", km.Down, true},
		{"p", km.Pause, true},
		{"r", km.Restart, true},
		{"q", km.Quit, true},
		{"esc", km.Quit, true},
		{"ctrl+c", km.Quit, true},
	}
	for _, tc := range tests {
		if got := key.Matches(keyMsg(tc.msg), tc.binding); got != tc.want {
			t.Errorf("%q matches %q = %v, expected %v", tc.msg, tc.binding.Help().Desc, got, tc.want)
		}
	}

	if km.Up.Help().Key != "k" || km.Down.Help().Key != "down/s" {
		t.Errorf("help keys = %q, %q", km.Up.Help().Key, km.Down.Help().Key)
	}
}

func TestHoldTracker(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := newHoldTracker(100 * time.Millisecond)

	if !h.Press(core.KeyDown, t0) {
		t.Fatal("first press should report a new hold")
	}
	// The first press outlasts the terminal's repeat delay
	if got := h.Expire(t0.Add(400 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("released %v before the repeat delay", got)
	}

	if h.Press(core.KeyDown, t0.Add(450*time.Millisecond)) {
		t.Error("repeat should not report a new hold")
	}
	if got := h.Expire(t0.Add(520 * time.Millisecond)); len(got) != 0 {
		t.Errorf("released %v while repeats keep arriving", got)
	}

	got := h.Expire(t0.Add(550 * time.Millisecond))
	if !reflect.DeepEqual(got, []core.Key{core.KeyDown}) {
		t.Errorf("Expire() = %v, expected [down]", got)
	}
	if h.Held(core.KeyDown) {
		t.Error("key should no longer be held")
	}
	if !h.Press(core.KeyDown, t0.Add(time.Second)) {
		t.Error("press after release should report a new hold")
	}
}

func TestHoldTrackerBothKeys(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := newHoldTracker(repeatDelay)
	h.Press(core.KeyUp, t0)
	h.Press(core.KeyDown, t0)

	got := h.Expire(t0.Add(repeatDelay))
	want := []core.Key{core.KeyDown, core.KeyUp}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expire() = %v, expected %v", got, want)
	}
}

func TestRasterizeFillsAndOverdraws(t *testing.T) {
	s := core.NewScreen(10, 5)
	cmds := []core.DrawCommand{
		{Rect: core.RectF{W: 20, H: 20}, Color: core.ColorWhite},
		{Rect: core.RectF{W: 2, H: 4}, Color: core.ColorRed},
	}

	Rasterize(s, cmds, core.ColorBlack)

	if c := s.GetCell(0, 0); c.Color != core.ColorRed || c.Rune != fullBlock {
		t.Errorf("cell (0,0) = %+v, expected a red block", c)
	}
	for _, p := range [][2]int{{1, 0}, {0, 1}, {9, 4}} {
		if c := s.GetCell(p[0], p[1]); c.Color != core.ColorWhite || c.Rune != fullBlock {
			t.Errorf("cell %v = %+v, expected a white block", p, c)
		}
	}
}

func TestRasterizeLetterboxes(t *testing.T) {
	s := core.NewScreen(20, 5)
	cmds := []core.DrawCommand{{Rect: core.RectF{W: 20, H: 20}, Color: core.ColorWhite}}

	Rasterize(s, cmds, core.ColorBlack)

	// Cell aspect 2:1 makes the square field 10 columns wide, centred
	if c := s.GetCell(4, 2); c.Rune != ' ' || c.Color != core.ColorBlack {
		t.Errorf("letterbox cell = %+v, expected blank background", c)
	}
	if c := s.GetCell(5, 2); c.Rune != fullBlock {
		t.Errorf("first field column = %+v, expected a block", c)
	}
	if c := s.GetCell(14, 2); c.Rune != fullBlock {
		t.Errorf("last field column = %+v, expected a block", c)
	}
	if c := s.GetCell(15, 2); c.Rune != ' ' {
		t.Errorf("right letterbox = %+v, expected blank", c)
	}
}

func TestRasterizePongFrame(t *testing.T) {
	s := core.NewScreen(80, 24)
	Rasterize(s, pong.New().DrawList(), pong.Background)

	counts := map[core.Color]int{}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c.Rune == fullBlock {
				counts[c.Color]++
			}
		}
	}
	for _, c := range []core.Color{core.ColorWhite, core.ColorRed, core.ColorBlue, core.ColorBlack, core.ColorGray} {
		if counts[c] == 0 {
			t.Errorf("no cells drawn in %s", c.Hex())
		}
	}
}

func TestRasterizeEmpty(t *testing.T) {
	s := core.NewScreen(4, 2)
	Rasterize(s, nil, core.ColorBlack)
	if s.String() != "    \n    " {
		t.Errorf("empty frame = %q", s.String())
	}
	Rasterize(core.NewScreen(0, 0), pong.New().DrawList(), core.ColorBlack)
}

func TestRenderScreenPlainProfile(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	s := core.NewScreen(10, 5)
	Rasterize(s, []core.DrawCommand{{Rect: core.RectF{W: 4, H: 4}, Color: core.ColorRed}}, core.ColorBlack)

	if got := RenderScreen(r, s); got != s.String() {
		t.Errorf("ascii render = %q, expected %q", got, s.String())
	}
}

func newTestModel(t *testing.T) (Model, *loop.Loop, *time.Time) {
	t.Helper()
	lp := loop.New(pong.New())
	m := NewModel(lp, config.Default(), WithRenderer(lipgloss.NewRenderer(io.Discard)))
	clock := time.Unix(5000, 0)
	m.now = func() time.Time { return clock }
	return m, lp, &clock
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelHeldKeyMovesUntilExpiry(t *testing.T) {
	m, lp, clock := newTestModel(t)

	m = update(m, keyMsg("down"))
	m = update(m, TickMsg(*clock))
	if y := lp.Game().Player.Y; y != 51 {
		t.Fatalf("player.Y = %v after one held tick, expected 51", y)
	}

	m = update(m, TickMsg(clock.Add(time.Second)))
	if y := lp.Game().Player.Y; y != 51 {
		t.Errorf("player.Y = %v after the hold expired, expected 51", y)
	}
	if len(lp.Held()) != 0 {
		t.Errorf("held = %v, expected none", lp.Held())
	}
}

func TestModelPauseRestartQuit(t *testing.T) {
	m, lp, clock := newTestModel(t)

	m = update(m, TickMsg(*clock))
	m = update(m, keyMsg("p"))
	m = update(m, TickMsg(*clock))
	if lp.Game().Tick() != 1 || !lp.Paused() {
		t.Errorf("tick = %d paused = %v, expected 1 and paused", lp.Game().Tick(), lp.Paused())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}

	m = update(m, keyMsg("r"))
	if lp.Paused() || lp.Game().Tick() != 0 {
		t.Error("restart should reset and unpause")
	}

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelViewFitsWindow(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 60, Height: 20})

	view := m.View()
	if h := lipgloss.Height(view); h != 20 {
		t.Errorf("view height = %d, expected 20", h)
	}
	if !strings.Contains(view, "tick 0") {
		t.Error("status line missing")
	}

	m = update(m, keyMsg("?"))
	if h := lipgloss.Height(m.View()); h != 20 {
		t.Errorf("view height with full help = %d, expected 20", h)
	}
}

func TestModelPausedBanner(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 60, Height: 20})

	m.View()
	mid := m.screen.Height() / 2
	if strings.Contains(m.screen.Row(mid), "PAUSED") {
		t.Error("banner drawn while running")
	}

	m = update(m, keyMsg("p"))
	m.View()
	if row := m.screen.Row(mid); !strings.Contains(row, "PAUSED") {
		t.Errorf("row %d = %q, expected the PAUSED banner", mid, row)
	}
}

func TestModelStatusKeepsViewHeight(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m, _, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 30, Height: 20})
	before := lipgloss.Height(m.footer())

	m = update(m, keyMsg("ctrl+s"))
	if !strings.HasPrefix(m.status, "saved "+home) {
		t.Fatalf("status = %q, expected a saved screenshot path", m.status)
	}
	if lipgloss.Height(m.footer()) <= before {
		t.Fatalf("footer height %d should grow past %d for a wrapped path", lipgloss.Height(m.footer()), before)
	}
	if h := lipgloss.Height(m.View()); h != 20 {
		t.Errorf("view height = %d after status change, expected 20", h)
	}

	m = update(m, keyMsg("r"))
	if h := lipgloss.Height(m.View()); h != 20 {
		t.Errorf("view height = %d after clearing status, expected 20", h)
	}
}

type fakeStore struct {
	recs    []storage.Recording
	deleted []int64
	err     error
}

func (f *fakeStore) RecentRecordings(int) ([]storage.Recording, error) {
	return f.recs, f.err
}

func (f *fakeStore) DeleteRecording(id int64) error {
	f.deleted = append(f.deleted, id)
	for i, r := range f.recs {
		if r.ID == id {
			f.recs = append(f.recs[:i], f.recs[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func TestRecordingRows(t *testing.T) {
	rows := RecordingRows([]storage.Recording{
		{ID: 3, Source: "play", TickRate: 60, Ticks: 150, FinalHash: 0xab},
	})
	want := []string{"3", "play", "150", "2.5s", "00000000000000ab", "-"}
	if !reflect.DeepEqual([]string(rows[0]), want) {
		t.Errorf("row = %v, expected %v", rows[0], want)
	}
}

func TestRecordingsModelSelectAndDelete(t *testing.T) {
	store := &fakeStore{recs: []storage.Recording{
		{ID: 9, Source: "play", TickRate: 60, Ticks: 60},
		{ID: 4, Source: "ssh", TickRate: 60, Ticks: 120},
	}}
	m := NewRecordingsModel(store, 80, 24)

	next, _ := m.Update(keyMsg("d"))
	m = next.(RecordingsModel)
	if !reflect.DeepEqual(store.deleted, []int64{9}) {
		t.Errorf("deleted = %v, expected [9]", store.deleted)
	}

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(RecordingsModel)
	if m.Selected() != 4 {
		t.Errorf("Selected() = %d, expected 4", m.Selected())
	}
	if cmd == nil {
		t.Error("selecting should quit the browser")
	}
}

func TestRecordingsModelEmptyAndError(t *testing.T) {
	m := NewRecordingsModel(&fakeStore{}, 80, 24)
	if !strings.Contains(m.View(), "No recordings yet") {
		t.Error("empty browser should say so")
	}
	next, _ := m.Update(keyMsg("enter"))
	if next.(RecordingsModel).Selected() != 0 {
		t.Error("nothing to select in an empty browser")
	}

	m = NewRecordingsModel(&fakeStore{err: errors.New("disk on fire")}, 80, 24)
	if !strings.Contains(m.View(), "disk on fire") {
		t.Error("load error should be shown")
	}
}
