// Package surface provides render surfaces for the glitch engine.
//
// Memory keeps everything in process and is meant for tests and headless use.
// Screen renders onto a tcell.Screen and turns mouse motion into pointer-enter events.
//
// All surfaces report geometry in virtual pixels: one terminal column is
// CellWidth units wide and one row is CellHeight units tall, so radii tuned for
// proportional fonts keep roughly the same reach in a terminal.
package surface
