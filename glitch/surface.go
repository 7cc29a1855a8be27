package glitch

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii-glitch/cell"
)

// Surface renders text as one independently styleable element per character
type Surface interface {
	// Layout renders lines and returns their elements in line then column order
	// Whitespace must be preserved; geometry must be stable once Layout returns
	Layout(lines [][]rune) ([]Element, error)
}

// Element is the render-side projection of one cell
// The engine is the only writer; elements never hold engine state
type Element interface {
	// Measure returns the element center and extent in surface units
	Measure() (cell.Point, cell.Size)

	SetRune(r rune)

	// Emphasize applies the highlight color and bold weight
	Emphasize(c colorful.Color)

	// Reset clears emphasis
	Reset()

	// OnPointerEnter subscribes fn to pointer-enter events on this element
	OnPointerEnter(fn func()) (unsubscribe func())
}
