package cell

import "strings"

// FromText splits text into lines and runes, creating one cell per rune
// Empty lines produce no cells but still advance the line counter
func FromText(text string) []*Cell {
	lines := strings.Split(text, "\n")
	cells := make([]*Cell, 0, len(text))

	for y, line := range lines {
		x := 0
		for _, r := range line {
			cells = append(cells, &Cell{
				Original:  r,
				Display:   r,
				Footprint: Width(r),
				Line:      y,
				Column:    x,
				Index:     len(cells),
			})
			x++
		}
	}

	return cells
}

// LineCount returns the number of lines FromText sees in text, trailing empty lines included
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// Lines regroups cells into count rune rows, keeping empty lines
// count is normally LineCount of the source text; it grows if cells reach further
func Lines(cells []*Cell, count int) [][]rune {
	if n := len(cells); n > 0 {
		count = max(count, cells[n-1].Line+1)
	}
	if count <= 0 {
		return nil
	}

	rows := make([][]rune, count)
	for _, c := range cells {
		rows[c.Line] = append(rows[c.Line], c.Original)
	}
	return rows
}
