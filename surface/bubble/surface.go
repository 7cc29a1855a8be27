// Package bubble hosts the glitch engine inside a bubbletea program
package bubble

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii-glitch/cell"
	"github.com/lixenwraith/ascii-glitch/glitch"
	"github.com/lixenwraith/ascii-glitch/surface"
)

// Surface keeps element state in memory and renders it as a styled string
// All methods run on the bubbletea Update goroutine
type Surface struct {
	base     lipgloss.Style
	rows     [][]*element
	elements []*element
	hovered  *element
}

// NewSurface creates a surface whose idle cells use base
func NewSurface(base lipgloss.Style) *Surface {
	return &Surface{base: base}
}

// Layout records lines at the top-left of the view
func (s *Surface) Layout(lines [][]rune) ([]glitch.Element, error) {
	slots := surface.Slots(lines, 0, 0)
	s.rows = make([][]*element, len(lines))
	s.elements = s.elements[:0]
	s.hovered = nil
	out := make([]glitch.Element, 0, len(lines)*8)

	for y, line := range lines {
		row := make([]*element, len(line))
		for x, r := range line {
			el := &element{slot: slots[y][x], original: r, current: r}
			row[x] = el
			s.elements = append(s.elements, el)
			out = append(out, el)
		}
		s.rows[y] = row
	}
	return out, nil
}

// PointerAt moves the pointer to column x, row y; returns the number of listeners fired
func (s *Surface) PointerAt(x, y int) int {
	var hit *element
	if y >= 0 && y < len(s.rows) {
		for _, el := range s.rows[y] {
			if el.slot.Contains(x, y) {
				hit = el
				break
			}
		}
	}
	if hit == s.hovered {
		return 0
	}
	s.hovered = hit
	if hit == nil {
		return 0
	}
	return hit.listeners.Emit()
}

// Render draws every line; emphasized cells are bold in their highlight color
func (s *Surface) Render() string {
	var b strings.Builder
	for y, row := range s.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, el := range row {
			text := string(surface.Fit(el.current, el.original, el.slot.Width))
			if el.emphasized {
				b.WriteString(el.style.Render(text))
			} else {
				b.WriteString(s.base.Render(text))
			}
		}
	}
	return b.String()
}

type element struct {
	slot       surface.Slot
	original   rune
	current    rune
	emphasized bool
	style      lipgloss.Style
	listeners  surface.Listeners
}

func (e *element) Measure() (cell.Point, cell.Size) {
	return e.slot.Center(), e.slot.Size()
}

func (e *element) SetRune(r rune) {
	e.current = r
}

func (e *element) Emphasize(c colorful.Color) {
	e.emphasized = true
	e.style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true)
}

func (e *element) Reset() {
	e.emphasized = false
}

func (e *element) OnPointerEnter(fn func()) func() {
	return e.listeners.Add(fn)
}
