package glitch

import (
	"github.com/lixenwraith/ascii-glitch/cell"
	"github.com/lixenwraith/ascii-glitch/clock"
)

// cycle is one cell's active glitch run
// Idle -> Glitching on Glitch; Glitching -> Idle after MaxGlitchIterations ticks or Dispose
type cycle struct {
	cell       *cell.Cell
	element    Element
	iterations int
	handle     clock.Handle
}

// Glitch starts a glitch cycle on c
// A cell already mid-cycle ignores the request; nothing is queued or restarted
// Cells not owned by this engine are ignored
func (e *Engine) Glitch(c *cell.Cell) {
	if !e.owns(c) || e.life.disposed {
		return
	}
	if c.Glitching {
		e.statRejected.Add(1)
		return
	}

	c.Glitching = true
	cy := &cycle{
		cell:    c,
		element: e.elements[c.Index],
	}
	cy.handle = e.sched.Every(e.cfg.GlitchSpeed, func() { e.tick(cy) })
	e.life.cycles[c.Index] = cy
	e.statCycles.Add(1)
}

// tick performs one substitution step and settles the cell after the last one
func (e *Engine) tick(cy *cycle) {
	c := cy.cell

	if c.Blank() {
		c.Display = c.Original
	} else {
		c.Display = e.randomGlyph()
		cy.element.SetRune(c.Display)
		cy.element.Emphasize(e.color)
	}

	cy.iterations++
	if cy.iterations >= e.cfg.MaxGlitchIterations {
		cy.handle.Stop()
		delete(e.life.cycles, c.Index)
		settle(cy)
	}
}

// settle returns the cell and its element to Idle
func settle(cy *cycle) {
	c := cy.cell
	c.Display = c.Original
	cy.element.SetRune(c.Original)
	cy.element.Reset()
	c.Glitching = false
}

// owns reports whether c is the engine's own cell at its index
func (e *Engine) owns(c *cell.Cell) bool {
	return c != nil && c.Index >= 0 && c.Index < len(e.cells) && e.cells[c.Index] == c
}

func (e *Engine) randomGlyph() rune {
	return e.glyphs[e.rng.Intn(len(e.glyphs))]
}
