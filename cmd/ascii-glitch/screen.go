package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/ascii-glitch/clock"
	"github.com/lixenwraith/ascii-glitch/glitch"
	"github.com/lixenwraith/ascii-glitch/surface"
)

const frameInterval = 16 * time.Millisecond

var statusStyle = tcell.StyleDefault.Dim(true)

// runScreen hosts the engine on a tcell screen driven by a clock.Loop
func runScreen(ctx context.Context, s *session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	return hostScreen(ctx, screen, s)
}

// hostScreen runs until ctx ends or a quit key arrives; screen must be uninitialized
func hostScreen(ctx context.Context, screen tcell.Screen, s *session) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	loop := clock.NewLoop(0)
	// Restore the terminal before reporting, or the trace is lost in raw mode
	loop.SetCrashHandler(func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mASCII-GLITCH CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})

	w, h := screen.Size()
	ox, oy := centerOrigin(s.text, w, h)
	surf := surface.NewScreen(screen, surface.WithOrigin(ox, oy))

	engine, err := glitch.New(surf, loop, s.text, s.cfg, s.opts...)
	if err != nil {
		return err
	}

	// PollEvent blocks, so events are forwarded onto the loop
	loop.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if isQuit(ev) {
				loop.Stop()
				return
			}
			if !loop.Post(func() { surf.Dispatch(ev) }) {
				return
			}
		}
	})

	var lastStatus string
	frame := loop.Every(frameInterval, func() {
		line := statusLine(s.metrics)
		changed := line != lastStatus
		if changed {
			lastStatus = line
			_, rows := screen.Size()
			drawLine(screen, 0, rows-1, line, statusStyle)
		}
		if !surf.Flush() && changed {
			screen.Show()
		}
	})

	err = loop.Run(ctx)
	loop.Stop()
	frame.Stop()
	// Run has returned, so this goroutine is the engine goroutine again
	engine.Dispose()
	slog.Info("screen host stopped", "tasks", loop.Executed())

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}

// centerOrigin places the text block in the middle of a w x h screen, leaving the last row for status
func centerOrigin(text string, w, h int) (x, y int) {
	lines := strings.Split(text, "\n")
	tw := 0
	for _, l := range lines {
		tw = max(tw, runewidth.StringWidth(l))
	}
	x = max((w-tw)/2, 0)
	y = max((h-1-len(lines))/2, 0)
	return x, y
}

// drawLine writes text at x,y and clears the rest of the row
func drawLine(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	for ; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
