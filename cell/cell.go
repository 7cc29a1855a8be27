// Package cell models one character of the glitched text block.
//
// A Cell owns its animation state; render elements only project it.
package cell

import "github.com/mattn/go-runewidth"

// BlankBraille is the placeholder glyph used for intentionally empty cells
const BlankBraille = '⠀'

// Point is a geometric position in the surface coordinate space
type Point struct {
	X, Y float64
}

// Size is a measured element extent in surface units
type Size struct {
	W, H float64
}

// Cell is a single character cell and its mutable glitch state
type Cell struct {
	Original rune // Permanent character
	Display  rune // Currently shown character

	Center    Point // Geometric center, snapshotted once after layout
	Size      Size  // Measured extent
	Footprint int   // Display columns reserved for the cell

	Glitching bool // Re-entrancy guard for the glitch cycle

	Line   int // Logical line
	Column int // Logical column (rune offset in line)
	Index  int // Position in the flat cell slice
}

// Measure stores the post-layout geometry snapshot
func (c *Cell) Measure(center Point, size Size) {
	c.Center = center
	c.Size = size
}

// Blank reports whether the cell holds a whitespace-class character
func (c *Cell) Blank() bool {
	return IsBlank(c.Original)
}

// Idle reports whether the cell is at rest
func (c *Cell) Idle() bool {
	return !c.Glitching && c.Display == c.Original
}

// IsBlank reports whether r is held at its original value during a glitch
func IsBlank(r rune) bool {
	return r == ' ' || r == BlankBraille
}

// Width returns the display column count for r, never less than 1
func Width(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}
