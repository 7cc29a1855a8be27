// Package proximity answers "which cells lie within r of this one" queries
// Results are ordered by distance and fully deterministic for a given cell set
package proximity

import (
	"math"
	"sort"

	"github.com/lixenwraith/ascii-glitch/cell"
)

// candidate pairs a cell with its distance from the query source
type candidate struct {
	c    *cell.Cell
	dist float64
}

// FindNearby returns cells whose center lies within radius of source's center
// Sorted ascending by distance, ties keep input order; source itself is excluded
func FindNearby(cells []*cell.Cell, source *cell.Cell, radius float64) []*cell.Cell {
	if source == nil || !(radius >= 0) {
		return nil
	}

	sx, sy := source.Center.X, source.Center.Y
	found := make([]candidate, 0, 8)

	for _, c := range cells {
		if c == source {
			continue
		}

		dx := c.Center.X - sx
		dy := c.Center.Y - sy

		// Axis-aligned rejection before the square root
		if math.Abs(dx) > radius || math.Abs(dy) > radius {
			continue
		}

		dist := math.Sqrt(dx*dx + dy*dy)
		if dist <= radius {
			found = append(found, candidate{c: c, dist: dist})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].dist < found[j].dist
	})

	result := make([]*cell.Cell, len(found))
	for i, f := range found {
		result[i] = f.c
	}
	return result
}

// Distance returns the Euclidean distance between two cell centers
func Distance(a, b *cell.Cell) float64 {
	return math.Hypot(a.Center.X-b.Center.X, a.Center.Y-b.Center.Y)
}

// Index binds a fixed cell set for repeated neighbourhood queries
type Index struct {
	cells []*cell.Cell
}

// NewIndex creates an index over cells; the slice is not copied
func NewIndex(cells []*cell.Cell) *Index {
	return &Index{cells: cells}
}

// Nearby returns the ordered neighbours of source within radius
func (ix *Index) Nearby(source *cell.Cell, radius float64) []*cell.Cell {
	return FindNearby(ix.cells, source, radius)
}

// Len returns the number of indexed cells
func (ix *Index) Len() int {
	return len(ix.cells)
}
