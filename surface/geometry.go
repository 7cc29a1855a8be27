package surface

import "github.com/lixenwraith/ascii-glitch/cell"

const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// Slot is the on-screen footprint of one element in terminal columns and rows
type Slot struct {
	X, Y  int // Top-left column and row
	Width int // Columns reserved, at least 1
}

// Center returns the slot center in virtual pixels
func (s Slot) Center() cell.Point {
	return cell.Point{
		X: (float64(s.X) + float64(s.Width)/2) * CellWidth,
		Y: (float64(s.Y) + 0.5) * CellHeight,
	}
}

// Size returns the slot extent in virtual pixels
func (s Slot) Size() cell.Size {
	return cell.Size{W: float64(s.Width) * CellWidth, H: CellHeight}
}

// Contains reports whether the terminal position x,y falls inside the slot
func (s Slot) Contains(x, y int) bool {
	return y == s.Y && x >= s.X && x < s.X+s.Width
}

// Slots lays lines out from origin, advancing each row by rune display width
func Slots(lines [][]rune, originX, originY int) [][]Slot {
	out := make([][]Slot, len(lines))
	for y, line := range lines {
		x := originX
		row := make([]Slot, len(line))
		for i, r := range line {
			w := cell.Width(r)
			row[i] = Slot{X: x, Y: originY + y, Width: w}
			x += w
		}
		out[y] = row
	}
	return out
}

// Fit returns r padded with spaces to exactly width columns
// A rune wider than the slot is replaced by fallback, or a space if that does not fit either
func Fit(r, fallback rune, width int) []rune {
	if cell.Width(r) > width {
		r = fallback
	}
	if cell.Width(r) > width {
		r = ' '
	}
	out := []rune{r}
	for n := cell.Width(r); n < width; n++ {
		out = append(out, ' ')
	}
	return out
}
