//go:build cgo

// Example demonstrates the two-pass frame pipeline in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell                          # dev environment (Go + OpenGL/X11 headers)
//	go run ./example/ /path/to/font.ttf   # run with an explicit font file
//
// The example opens a window, builds a font atlas from the given TTF
// and renders a small status panel that reacts to mouse and keyboard
// input.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quillui/quill"
	glfwbackend "github.com/quillui/quill/backend/glfw"
	"github.com/quillui/quill/backend/opengl"
	"github.com/quillui/quill/fontatlas"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "quill example"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: %s <font.ttf>", os.Args[0])
	}

	// Fonts come from explicit files, never from an implicit registry.
	ttf, err := os.ReadFile(os.Args[1])
	if err != nil {
		return fmt.Errorf("read font: %w", err)
	}
	atlas, err := fontatlas.New(ttf, 16)
	if err != nil {
		return err
	}

	win, err := glfwbackend.NewWindow(glfwbackend.Config{
		Title:     windowTitle,
		Width:     windowWidth,
		Height:    windowHeight,
		Resizable: true,
		Decorated: true,
		VSync:     true,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	canvas := opengl.NewCanvas()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ui := quill.New(atlas, quill.WithInput(win.Input()), quill.WithLogger(logger))

	// Application state, mutated between frames only.
	clicks := 0
	typed := ""

	return quill.Run(win, canvas, ui, func(ctx *quill.Context) {
		in := ctx.Input()

		// State mutation is gated on the pass so it happens once per
		// frame; the tree structure must not depend on it mid-frame.
		if ctx.Pass() == quill.PassBuild {
			if in.MouseClicked(quill.MouseButtonLeft) {
				clicks++
			}
			typed += in.DrainInputChars()
			if in.KeyPressed(quill.KeyBackspace) && typed != "" {
				typed = typed[:len(typed)-1]
			}
		}

		mouse := in.MousePosition()

		ctx.Column(quill.Gap(8), quill.Padding(16), quill.Grow())(func() {
			ctx.Label(windowTitle, quill.ColorWhite)
			ctx.Space(8)

			ctx.Row(quill.Gap(8))(func() {
				ctx.Box(12, 12, quill.ColorGreen)
				ctx.Label(fmt.Sprintf("frame %d", ctx.FrameCount()), quill.ColorGray)
			})

			ctx.Label(fmt.Sprintf("mouse %.0f,%.0f", mouse.X, mouse.Y), quill.ColorWhite)
			ctx.Label(fmt.Sprintf("left clicks: %d", clicks), quill.ColorWhite)
			ctx.Label("typed: "+typed, quill.ColorYellow)

			ctx.Spacer()
			ctx.Label("type to append, backspace to erase, close window to quit", quill.ColorGray)
		})
	})
}
