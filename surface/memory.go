package surface

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii-glitch/cell"
	"github.com/lixenwraith/ascii-glitch/glitch"
)

// Memory is an in-process surface that records every element update
type Memory struct {
	lines    [][]*MemoryElement
	elements []*MemoryElement

	// Layout fails with this error when set
	FailWith error
}

// MemoryElement is the recorded state of one Memory element
type MemoryElement struct {
	Line, Column int
	Slot         Slot

	Rune       rune
	Emphasized bool
	Color      colorful.Color

	// Every rune passed to SetRune, in order
	History []rune

	listeners Listeners
}

// NewMemory creates an empty memory surface
func NewMemory() *Memory {
	return &Memory{}
}

// Layout creates one element per rune using the standard slot geometry
func (m *Memory) Layout(lines [][]rune) ([]glitch.Element, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	slots := Slots(lines, 0, 0)
	m.lines = make([][]*MemoryElement, len(lines))
	m.elements = m.elements[:0]
	out := make([]glitch.Element, 0, len(lines)*8)

	for y, line := range lines {
		row := make([]*MemoryElement, len(line))
		for x, r := range line {
			el := &MemoryElement{Line: y, Column: x, Slot: slots[y][x], Rune: r}
			row[x] = el
			m.elements = append(m.elements, el)
			out = append(out, el)
		}
		m.lines[y] = row
	}
	return out, nil
}

// Element returns the element at a logical position, or nil
func (m *Memory) Element(line, column int) *MemoryElement {
	if line < 0 || line >= len(m.lines) || column < 0 || column >= len(m.lines[line]) {
		return nil
	}
	return m.lines[line][column]
}

// Elements returns all elements in layout order
func (m *Memory) Elements() []*MemoryElement {
	return m.elements
}

// Hover emits pointer-enter on the element at line, column
// Returns the number of subscribers notified
func (m *Memory) Hover(line, column int) int {
	el := m.Element(line, column)
	if el == nil {
		return 0
	}
	return el.listeners.Emit()
}

// Subscribers returns the total number of live pointer-enter subscriptions
func (m *Memory) Subscribers() int {
	n := 0
	for _, el := range m.elements {
		n += el.listeners.Len()
	}
	return n
}

// String renders the current display runes, one line per row
func (m *Memory) String() string {
	var sb strings.Builder
	for y, row := range m.lines {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, el := range row {
			sb.WriteRune(el.Rune)
		}
	}
	return sb.String()
}

func (e *MemoryElement) Measure() (cell.Point, cell.Size) {
	return e.Slot.Center(), e.Slot.Size()
}

func (e *MemoryElement) SetRune(r rune) {
	e.Rune = r
	e.History = append(e.History, r)
}

func (e *MemoryElement) Emphasize(c colorful.Color) {
	e.Emphasized = true
	e.Color = c
}

func (e *MemoryElement) Reset() {
	e.Emphasized = false
	e.Color = colorful.Color{}
}

func (e *MemoryElement) OnPointerEnter(fn func()) func() {
	return e.listeners.Add(fn)
}

func (e *MemoryElement) String() string {
	return fmt.Sprintf("%d:%d %q", e.Line, e.Column, e.Rune)
}
