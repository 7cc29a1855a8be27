package bubble

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii-glitch/clock"
)

func layout(t *testing.T, text string) *Surface {
	t.Helper()
	s := NewSurface(lipgloss.NewStyle())
	var lines [][]rune
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, []rune(l))
	}
	if _, err := s.Layout(lines); err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	return s
}

func TestSurfaceLayoutGeometry(t *testing.T) {
	s := NewSurface(lipgloss.NewStyle())
	els, err := s.Layout([][]rune{[]rune("ab"), []rune("c")})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if len(els) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(els))
	}

	c0, _ := els[0].Measure()
	c1, _ := els[1].Measure()
	c2, size := els[2].Measure()
	if c1.X <= c0.X || c0.Y != c1.Y {
		t.Errorf("Expected b right of a on the same row, got %v and %v", c0, c1)
	}
	if c2.Y <= c0.Y {
		t.Errorf("Expected c below a, got %v", c2)
	}
	if size.W <= 0 || size.H <= 0 {
		t.Errorf("Expected positive size, got %v", size)
	}
}

func TestSurfaceRenderPreservesLayout(t *testing.T) {
	s := layout(t, "hi there\n\n世x")

	want := "hi there\n\n世x"
	if got := s.Render(); got != want {
		t.Fatalf("Expected %q, got %q", want, got)
	}

	// Glyph swap into a narrow rune keeps the wide slot padded
	wide := s.rows[2][0]
	wide.SetRune('#')
	wide.Emphasize(colorful.Color{R: 1, G: 1, B: 1})
	row := strings.Split(s.Render(), "\n")[2]
	if lipgloss.Width(row) != 3 {
		t.Errorf("Expected wide row to stay 3 columns, got %q", row)
	}

	wide.SetRune('世')
	wide.Reset()
	if got := s.Render(); got != want {
		t.Errorf("Expected restore to %q, got %q", want, got)
	}
}

func TestSurfacePointerAt(t *testing.T) {
	s := layout(t, "abc")

	var hits []int
	for i, el := range s.rows[0] {
		el.OnPointerEnter(func() { hits = append(hits, i) })
	}

	s.PointerAt(0, 0)
	s.PointerAt(0, 0) // same element, no re-entry
	s.PointerAt(1, 0)
	s.PointerAt(9, 9) // off the text
	s.PointerAt(1, 0)

	want := []int{0, 1, 1}
	if len(hits) != len(want) {
		t.Fatalf("Expected hits %v, got %v", want, hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("Hit %d: expected %d, got %d", i, want[i], hits[i])
		}
	}
}

func TestModelRunsTasks(t *testing.T) {
	loop := clock.NewLoop(4)
	s := layout(t, "a")
	m := NewModel(loop, s, func() string { return "ok" })

	ran := false
	if !loop.Post(func() { ran = true }) {
		t.Fatal("Expected post to succeed")
	}

	msg := m.Init()()
	next, cmd := m.Update(msg)
	if !ran {
		t.Error("Expected task to run inside Update")
	}
	if cmd == nil {
		t.Error("Expected Update to keep waiting for tasks")
	}
	if loop.Executed() != 1 {
		t.Errorf("Expected 1 executed task, got %d", loop.Executed())
	}

	if !strings.Contains(next.View(), "ok") {
		t.Errorf("Expected footer in view, got %q", next.View())
	}
}

func TestModelMouseHover(t *testing.T) {
	loop := clock.NewLoop(1)
	s := layout(t, "ab")
	m := NewModel(loop, s, nil)

	entered := 0
	s.rows[0][1].OnPointerEnter(func() { entered++ })

	m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if entered != 1 {
		t.Errorf("Expected 1 pointer enter, got %d", entered)
	}

	if got := m.View(); got != "ab" {
		t.Errorf("Expected bare view without status, got %q", got)
	}
}

func TestModelQuitKeys(t *testing.T) {
	m := NewModel(clock.NewLoop(1), layout(t, "a"), nil)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	}
	for _, k := range keys {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Errorf("Key %q: expected quit command", k.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Key %q: expected tea.QuitMsg", k.String())
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Error("Expected other keys to be ignored")
	}
}

func TestSurfaceWideGlyphKeepsRowWidth(t *testing.T) {
	s := layout(t, "abc")

	s.rows[0][0].SetRune('世')
	s.rows[0][0].Emphasize(colorful.Color{R: 1})

	if w := lipgloss.Width(s.Render()); w != 3 {
		t.Errorf("Expected row to stay 3 columns, got %d in %q", w, s.Render())
	}
}

func TestWaitForTaskEndsWhenLoopStops(t *testing.T) {
	loop := clock.NewLoop(1)
	m := NewModel(loop, layout(t, "a"), nil)

	done := make(chan tea.Msg, 1)
	go func() { done <- m.Init()() }()

	loop.Stop()
	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("Expected nil message after stop, got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected wait to return after loop stop")
	}
}
