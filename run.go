package quill

import (
	"fmt"
	"runtime"
	"time"
)

// AlphaTextureUploader is the optional canvas capability of uploading
// single-channel alpha coverage textures, as glyph atlases need.
type AlphaTextureUploader interface {
	UploadAlphaTexture(pixels []byte, width, height int) (uint32, error)
}

// uploadableFont is a font whose atlas pixels still need a texture.
type uploadableFont interface {
	AlphaPixels() (pixels []byte, width, height int)
	SetTextureID(id uint32)
}

// Run drives the host's native event loop: it initializes the canvas
// against the window's drawable size, uploads the font atlas when both
// sides support it, wires resize delivery, then per iteration polls
// events, advances time at a fixed update cadence and runs one frame
// cycle, until the window is closed. Teardown releases input, canvas
// and fonts in that order via Gui.Shutdown.
//
// Graphics contexts require the main OS thread; Run locks it for the
// duration of the loop.
func Run(win Window, canvas Canvas, g *Gui, draw DrawFunc) error {
	runtime.LockOSThread()

	w, h := win.DrawableSize()
	if err := canvas.Init(w, h); err != nil {
		return fmt.Errorf("quill: canvas init: %w", err)
	}
	defer g.Shutdown(canvas)

	if err := uploadFont(canvas, g.font); err != nil {
		return err
	}

	win.SetResizeCallback(func(w, h int) {
		if w < 1 || h < 1 {
			// Minimized; keep the last backing store.
			return
		}
		canvas.Resize(w, h)
	})

	// Fixed-timestep updates, rendering every loop iteration.
	const tick = time.Second / 60
	const maxSteps = 10 // prevent spiral of death
	var (
		accum time.Duration
		prev  = time.Now()
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxSteps {
			g.AdvanceTime(float64(tick) / float64(time.Second))
			accum -= tick
			steps++
		}

		if err := g.RunFrame(canvas, draw); err != nil {
			return err
		}

		win.SwapBuffers()
	}

	return nil
}

// uploadFont gives the font its atlas texture when the canvas can
// upload one and the font has not been uploaded yet.
func uploadFont(canvas Canvas, font Font) error {
	if font == nil || font.TextureID() != 0 {
		return nil
	}
	up, ok := canvas.(AlphaTextureUploader)
	if !ok {
		return nil
	}
	f, ok := font.(uploadableFont)
	if !ok {
		return nil
	}

	pixels, w, h := f.AlphaPixels()
	id, err := up.UploadAlphaTexture(pixels, w, h)
	if err != nil {
		return fmt.Errorf("quill: upload font atlas: %w", err)
	}
	f.SetTextureID(id)
	return nil
}
