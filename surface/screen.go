package surface

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii-glitch/cell"
	"github.com/lixenwraith/ascii-glitch/glitch"
)

// ErrNoScreen is returned by Layout when the surface wraps no tcell screen
var ErrNoScreen = errors.New("surface: nil tcell screen")

// Screen renders elements onto a tcell.Screen
// Dispatch and Flush must run on the engine goroutine
type Screen struct {
	screen  tcell.Screen
	originX int
	originY int
	base    tcell.Style

	elements []*screenElement
	hovered  *screenElement
	dirty    bool
}

// ScreenOption configures a Screen
type ScreenOption func(*Screen)

// WithOrigin places the text block's top-left corner at column x, row y
func WithOrigin(x, y int) ScreenOption {
	return func(s *Screen) {
		s.originX, s.originY = x, y
	}
}

// WithBaseStyle sets the style of idle cells
func WithBaseStyle(style tcell.Style) ScreenOption {
	return func(s *Screen) {
		s.base = style
	}
}

// NewScreen wraps an initialized tcell screen
func NewScreen(screen tcell.Screen, opts ...ScreenOption) *Screen {
	s := &Screen{
		screen: screen,
		base:   tcell.StyleDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout draws lines at the origin and returns one element per rune
func (s *Screen) Layout(lines [][]rune) ([]glitch.Element, error) {
	if s.screen == nil {
		return nil, ErrNoScreen
	}

	slots := Slots(lines, s.originX, s.originY)
	s.elements = s.elements[:0]
	s.hovered = nil
	out := make([]glitch.Element, 0, len(lines)*8)

	for y, line := range lines {
		for x, r := range line {
			el := &screenElement{
				owner:    s,
				slot:     slots[y][x],
				original: r,
				current:  r,
				style:    s.base,
			}
			el.draw()
			s.elements = append(s.elements, el)
			out = append(out, el)
		}
	}
	return out, nil
}

// Dispatch feeds a tcell event to the surface
// Mouse motion onto a new element emits pointer-enter; returns true if the event was consumed
func (s *Screen) Dispatch(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		s.pointerAt(x, y)
		return true
	case *tcell.EventResize:
		s.screen.Sync()
		s.Redraw()
		return true
	}
	return false
}

// pointerAt tracks the hovered element; re-entering after leaving fires again
func (s *Screen) pointerAt(x, y int) {
	el := s.hit(x, y)
	if el == s.hovered {
		return
	}
	s.hovered = el
	if el != nil {
		el.listeners.Emit()
	}
}

func (s *Screen) hit(x, y int) *screenElement {
	for _, el := range s.elements {
		if el.slot.Contains(x, y) {
			return el
		}
	}
	return nil
}

// Redraw repaints every element in its current state
func (s *Screen) Redraw() {
	for _, el := range s.elements {
		el.draw()
	}
}

// Flush shows pending changes; returns false when nothing was drawn since the last flush
func (s *Screen) Flush() bool {
	if !s.dirty || s.screen == nil {
		return false
	}
	s.screen.Show()
	s.dirty = false
	return true
}

// Bounds returns the block's width and height in terminal cells
func (s *Screen) Bounds() (w, h int) {
	for _, el := range s.elements {
		if r := el.slot.X + el.slot.Width - s.originX; r > w {
			w = r
		}
		if b := el.slot.Y + 1 - s.originY; b > h {
			h = b
		}
	}
	return w, h
}

type screenElement struct {
	owner     *Screen
	slot      Slot
	original  rune
	current   rune
	style     tcell.Style
	listeners Listeners
}

func (e *screenElement) Measure() (cell.Point, cell.Size) {
	return e.slot.Center(), e.slot.Size()
}

func (e *screenElement) SetRune(r rune) {
	e.current = r
	e.draw()
}

func (e *screenElement) Emphasize(c colorful.Color) {
	r, g, b := c.RGB255()
	e.style = e.owner.base.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).Bold(true)
	e.draw()
}

func (e *screenElement) Reset() {
	e.style = e.owner.base
	e.draw()
}

func (e *screenElement) OnPointerEnter(fn func()) func() {
	return e.listeners.Add(fn)
}

// draw paints the current rune fitted to the slot width so lines never reflow
func (e *screenElement) draw() {
	for i, r := range Fit(e.current, e.original, e.slot.Width) {
		e.owner.screen.SetContent(e.slot.X+i, e.slot.Y, r, nil, e.style)
	}
	e.owner.dirty = true
}
