package main

import (
	"context"
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/tilecast/pkg/render"
)

// showPreview draws a static frame in the terminal's alternate screen and
// returns on the first key press or when ctx is cancelled.
func showPreview(ctx context.Context, fb *render.Framebuffer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}()

	draw := func(cols, rows int) error {
		if err := term.Resize(cols, rows); err != nil {
			return fmt.Errorf("resize terminal: %w", err)
		}
		maxW, maxH := render.TerminalSize(cols, rows)
		w, h := render.FitSize(fb.Width, fb.Height, maxW, maxH)
		fb.Scale(w, h).Draw(term, term.Bounds())
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	}

	if err := draw(width, height); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				if err := draw(ev.Width, ev.Height); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				return nil
			}
		}
	}
}
