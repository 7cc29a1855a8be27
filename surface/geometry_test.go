package surface

import "testing"

func TestSlotsAdvanceByWidth(t *testing.T) {
	slots := Slots([][]rune{[]rune("a世b"), nil, []rune("c")}, 2, 1)

	if len(slots) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(slots))
	}

	row := slots[0]
	want := []Slot{{X: 2, Y: 1, Width: 1}, {X: 3, Y: 1, Width: 2}, {X: 5, Y: 1, Width: 1}}
	for i, w := range want {
		if row[i] != w {
			t.Errorf("Slot %d: expected %+v, got %+v", i, w, row[i])
		}
	}

	if len(slots[1]) != 0 {
		t.Errorf("Expected empty middle row, got %d slots", len(slots[1]))
	}
	if slots[2][0] != (Slot{X: 2, Y: 3, Width: 1}) {
		t.Errorf("Unexpected slot for last row: %+v", slots[2][0])
	}
}

func TestSlotGeometry(t *testing.T) {
	s := Slot{X: 1, Y: 2, Width: 2}

	c := s.Center()
	if c.X != 20 || c.Y != 50 {
		t.Errorf("Expected center (20,50), got (%v,%v)", c.X, c.Y)
	}

	sz := s.Size()
	if sz.W != 20 || sz.H != 20 {
		t.Errorf("Expected size 20x20, got %vx%v", sz.W, sz.H)
	}

	if !s.Contains(1, 2) || !s.Contains(2, 2) || s.Contains(3, 2) || s.Contains(1, 1) {
		t.Error("Unexpected Contains result")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		fallback rune
		width    int
		want     string
	}{
		{"Narrow in wide slot", '#', '世', 2, "# "},
		{"Wide in wide slot", '世', '世', 2, "世"},
		{"Exact", 'x', 'x', 1, "x"},
		{"Wide in narrow slot", '世', 'a', 1, "a"},
		{"Fallback also wide", '世', '界', 1, " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Fit(tt.r, tt.fallback, tt.width))
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestListeners(t *testing.T) {
	var l Listeners
	calls := 0

	unsubA := l.Add(func() { calls++ })
	l.Add(func() { calls += 10 })

	if n := l.Emit(); n != 2 || calls != 11 {
		t.Fatalf("Expected 2 subscribers and 11 calls, got %d and %d", n, calls)
	}

	unsubA()
	unsubA()
	if l.Len() != 1 {
		t.Errorf("Expected 1 subscriber after unsubscribe, got %d", l.Len())
	}

	calls = 0
	l.Emit()
	if calls != 10 {
		t.Errorf("Expected only remaining subscriber to run, got %d", calls)
	}
}
