package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/ascii-glitch/clock"
	"github.com/lixenwraith/ascii-glitch/glitch"
	"github.com/lixenwraith/ascii-glitch/surface/bubble"
)

// runBubble hosts the engine inside a bubbletea program; loop tasks run in Update
func runBubble(ctx context.Context, s *session) error {
	loop := clock.NewLoop(0)
	surf := bubble.NewSurface(lipgloss.NewStyle())

	engine, err := glitch.New(surf, loop, s.text, s.cfg, s.opts...)
	if err != nil {
		return err
	}

	model := bubble.NewModel(loop, surf, func() string { return statusLine(s.metrics) })
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	loop.SetCrashHandler(func(r any) {
		slog.Error("task panicked", "panic", r, "stack", string(debug.Stack()))
		p.Kill()
	})

	_, err = p.Run()
	loop.Stop()
	// Update no longer runs, so disposing here cannot race a task
	engine.Dispose()

	switch {
	case err == nil, errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return nil
	case errors.Is(err, tea.ErrProgramKilled):
		return fmt.Errorf("bubble backend crashed: %w", err)
	}
	return err
}
