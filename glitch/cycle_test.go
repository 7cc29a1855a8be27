package glitch_test

import (
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/ascii-glitch/cell"
)

func TestGlitchCycleRestoresCell(t *testing.T) {
	cfg := quietConfig()
	f := newFixture(t, "A", cfg)
	c := f.engine.CellAt(0, 0)
	el := f.surface.Element(0, 0)

	f.engine.Glitch(c)
	if !c.Glitching {
		t.Fatal("Expected cell to be glitching")
	}

	f.clock.Advance(cfg.GlitchSpeed)
	if c.Display == 'A' || !strings.ContainsRune(cfg.GlitchChars, c.Display) {
		t.Errorf("Expected substitute from alphabet, got %q", c.Display)
	}
	if !el.Emphasized {
		t.Error("Expected element emphasized mid-cycle")
	}

	f.clock.Advance(time.Duration(cfg.MaxGlitchIterations-1) * cfg.GlitchSpeed)

	if !c.Idle() {
		t.Errorf("Expected idle cell, got display %q glitching %v", c.Display, c.Glitching)
	}
	if el.Rune != 'A' || el.Emphasized {
		t.Error("Expected element restored and unstyled")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected tick task stopped, %d pending", f.clock.Pending())
	}

	// Substitutions plus the final restore
	if len(el.History) != cfg.MaxGlitchIterations+1 {
		t.Errorf("Expected %d rune updates, got %d", cfg.MaxGlitchIterations+1, len(el.History))
	}
}

func TestGlitchIsReentrant(t *testing.T) {
	cfg := quietConfig()
	f := newFixture(t, "A", cfg)
	c := f.engine.CellAt(0, 0)
	el := f.surface.Element(0, 0)

	f.engine.Glitch(c)
	f.clock.Advance(2 * cfg.GlitchSpeed)

	// Second trigger mid-cycle must not restart the counter
	f.engine.Glitch(c)
	f.clock.Advance(time.Duration(cfg.MaxGlitchIterations-2) * cfg.GlitchSpeed)

	if c.Glitching {
		t.Fatal("Expected cycle to end on the first trigger's schedule")
	}
	if len(el.History) != cfg.MaxGlitchIterations+1 {
		t.Errorf("Expected %d rune updates, got %d", cfg.MaxGlitchIterations+1, len(el.History))
	}
	if got := f.engine.Metrics().Ints.Get("glitch.rejected").Load(); got != 1 {
		t.Errorf("Expected 1 rejected trigger, got %d", got)
	}

	// Idle again, a new trigger starts a fresh cycle
	f.engine.Glitch(c)
	if !c.Glitching {
		t.Error("Expected new cycle after rest")
	}
}

func TestGlitchWhitespaceStable(t *testing.T) {
	cfg := quietConfig()
	f := newFixture(t, " "+string(cell.BlankBraille), cfg)

	for col, want := range []rune{' ', cell.BlankBraille} {
		c := f.engine.CellAt(0, col)
		el := f.surface.Element(0, col)

		f.engine.Glitch(c)
		for i := 0; i < cfg.MaxGlitchIterations; i++ {
			if !c.Glitching {
				t.Fatalf("Column %d: cycle ended early at tick %d", col, i)
			}
			if c.Display != want {
				t.Errorf("Column %d: display changed to %q", col, c.Display)
			}
			f.clock.Advance(cfg.GlitchSpeed)
		}

		if c.Glitching {
			t.Errorf("Column %d: expected cycle to finish", col)
		}
		for _, r := range el.History {
			if r != want {
				t.Errorf("Column %d: element saw %q", col, r)
			}
		}
		if el.Emphasized {
			t.Errorf("Column %d: blank cell must not be emphasized", col)
		}
	}
}

func TestGlitchSequenceIsSeeded(t *testing.T) {
	run := func() string {
		f := newFixture(t, "AB", quietConfig())
		f.engine.Glitch(f.engine.CellAt(0, 0))
		f.engine.Glitch(f.engine.CellAt(0, 1))
		f.clock.Advance(time.Second)
		return string(f.surface.Element(0, 0).History) + "|" + string(f.surface.Element(0, 1).History)
	}

	if a, b := run(), run(); a != b {
		t.Errorf("Expected identical sequences for identical seeds, got %q and %q", a, b)
	}
}

func TestGlitchNilCell(t *testing.T) {
	f := newFixture(t, "A", quietConfig())
	f.engine.Glitch(nil)
	if f.engine.Glitching() != 0 {
		t.Error("Expected nil glitch to be ignored")
	}
}

func TestGlitchSingleIteration(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxGlitchIterations = 1
	f := newFixture(t, "A", cfg)
	c := f.engine.CellAt(0, 0)

	f.engine.Glitch(c)
	f.clock.Advance(cfg.GlitchSpeed)

	if !c.Idle() {
		t.Error("Expected single-iteration cycle to settle after one tick")
	}
	if h := f.surface.Element(0, 0).History; len(h) != 2 || h[1] != 'A' {
		t.Errorf("Expected one substitute then restore, got %q", h)
	}
}

func TestGlitchIgnoresCellsFromElsewhere(t *testing.T) {
	f := newFixture(t, "ab", quietConfig())
	other := newFixture(t, "xyz", quietConfig())

	tests := []struct {
		name string
		c    *cell.Cell
	}{
		{"Foreign engine cell", other.engine.CellAt(0, 2)},
		{"Stray cell colliding with index 0", &cell.Cell{Original: 'Q', Display: 'Q', Index: 0}},
		{"Negative index", &cell.Cell{Original: 'Q', Index: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.engine.Glitch(tt.c)
			if n := f.engine.TriggerRipple(tt.c, 1000, time.Second); n != 0 {
				t.Errorf("Expected no neighbours for unowned source, got %d", n)
			}
			f.clock.Advance(2 * time.Second)

			if f.engine.Glitching() != 0 {
				t.Errorf("Expected no cycles, got %d", f.engine.Glitching())
			}
			for _, el := range f.surface.Elements() {
				if len(el.History) != 0 {
					t.Errorf("Expected element %d,%d untouched, got history %q", el.Line, el.Column, string(el.History))
				}
			}
			if tt.c.Glitching {
				t.Error("Expected unowned cell to stay idle")
			}
		})
	}

	if other.engine.Glitching() != 0 || len(other.surface.Element(0, 2).History) != 0 {
		t.Error("Expected the owning engine to be unaffected")
	}
}
