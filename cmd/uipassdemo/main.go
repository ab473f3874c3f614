// Command uipassdemo drives the GUI pass headlessly on a noop GPU device.
//
// It runs a number of frames, redrawing the GUI every few frames, prints the
// node statistics and optionally writes a software rendering of the last
// GUI frame to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uipass"
	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/framegraph"
	"github.com/gogpu/uipass/internal/headless"
	"github.com/gogpu/uipass/viewport"
	"github.com/schollz/progressbar/v3"
)

func main() {
	var (
		width   = flag.Int("width", 800, "window width in physical pixels")
		height  = flag.Int("height", 600, "window height in physical pixels")
		scale   = flag.Float64("scale", 1, "window scale factor")
		frames  = flag.Int("frames", 120, "number of frames to run")
		every   = flag.Int("every", 10, "redraw the GUI every N frames")
		config  = flag.String("config", "", "YAML or TOML config file")
		output  = flag.String("output", "", "write a software rendering of the last GUI frame to this PNG file")
		verbose = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	if err := run(*width, *height, *scale, *frames, *every, *config, *output, *verbose); err != nil {
		log.Fatal(err)
	}
}

func run(width, height int, scale float64, frames, every int, config, output string, verbose bool) error {
	if width <= 0 || height <= 0 || frames <= 0 || every <= 0 {
		return fmt.Errorf("width, height, frames and every must be positive")
	}

	var opts []uipass.Option
	if config != "" {
		c, err := uipass.LoadConfig(config)
		if err != nil {
			return err
		}
		if opts, err = c.Options(os.Stderr); err != nil {
			return err
		}
	}
	if verbose {
		opts = append(opts, uipass.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	gpu, err := headless.Open()
	if err != nil {
		return err
	}
	defer gpu.Close()

	p, err := uipass.New(opts...)
	if err != nil {
		return err
	}
	defer p.Close()

	win := viewport.StaticWindow{Width: uint32(width), Height: uint32(height), Scale: scale} //nolint:gosec // validated positive
	app, err := uipass.NewApp(p, win)
	if err != nil {
		return err
	}
	view, err := gpu.NewTarget(win.Width, win.Height)
	if err != nil {
		return err
	}
	app.AttachView(framegraph.ViewTarget{
		View:   view,
		Format: gputypes.TextureFormatBGRA8Unorm,
		Width:  win.Width,
		Height: win.Height,
	})

	sw := backend.NewSoftware()
	var last viewport.Viewport

	bar := progressbar.Default(int64(frames), "frames")
	for i := range frames {
		if i%every == 0 {
			p.Record(func(b *backend.Batch) { drawGUI(b, i, frames, last) })
			drawGUI(sw.Batch(), i, frames, last)
		}

		last = app.Update()
		app.Extract()
		rc := framegraph.NewRenderContextHAL(gpu.Device, gpu.Queue, gputypes.TextureFormatBGRA8Unorm)
		if err := app.Render(rc); err != nil {
			_ = bar.Close()
			return fmt.Errorf("frame %d: %w", i, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Close()

	fmt.Printf("%s\n", p.Stats())

	if output != "" {
		var overlay []string
		p.Handle().With(func(_ backend.Renderer, o *backend.Overlay) {
			overlay = append(overlay, o.Lines()...)
		})
		if err := writePNG(output, sw, last, overlay); err != nil {
			return err
		}
		log.Printf("GUI frame saved to %s (%s)", output, last)
	}
	return nil
}

// drawGUI records a small panel with a progress bar for frame i of n.
func drawGUI(b *backend.Batch, i, n int, vp viewport.Viewport) {
	b.Reset()
	w, _ := vp.LogicalSize()
	if w == 0 {
		w = 320
	}
	panel := backend.Rect{X: 16, Y: 48, W: float32(w) - 32, H: 72}
	b.FillRect(panel, backend.Premultiply(0.1, 0.1, 0.15, 0.85))

	b.PushClip(panel)
	track := backend.Rect{X: panel.X + 12, Y: panel.Y + 28, W: panel.W - 24, H: 16}
	b.FillRect(track, backend.Opaque(0.25, 0.25, 0.3))
	done := track
	done.W = track.W * float32(i+1) / float32(n)
	b.FillRect(done, backend.Opaque(0.2, 0.6, 0.9))
	b.PopClip()
}

func writePNG(path string, sw *backend.Software, vp viewport.Viewport, overlay []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, sw.Render(vp, overlay)); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
