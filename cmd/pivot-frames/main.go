// Package main renders the rotating-image widget to numbered PNG frames.
//
// The tool drives a RotatedImage through a scripted sequence (rotate, swap
// content mid-run, rotate again) on a manually stepped clock, records each
// frame into a display list, and rasterizes it to disk.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pivot/pivot/pkg/animation"
	"github.com/go-pivot/pivot/pkg/config"
	"github.com/go-pivot/pivot/pkg/errors"
	"github.com/go-pivot/pivot/pkg/graphics"
	"github.com/go-pivot/pivot/pkg/raster"
	"github.com/go-pivot/pivot/pkg/rendering"
	"github.com/go-pivot/pivot/pkg/widgets"
)

// steppedClock is advanced explicitly by the frame loop.
type steppedClock struct {
	now time.Time
}

func (c *steppedClock) Now() time.Time {
	return c.now
}

type event struct {
	at  time.Duration
	run func()
}

func main() {
	out := flag.String("out", "frames", "output directory for PNG frames")
	size := flag.Int("size", 256, "viewport size in pixels")
	fps := flag.Int("fps", 30, "frames per second")
	configDir := flag.String("config", ".", "directory searched for pivot.yaml")
	verbose := flag.Bool("verbose", false, "log stack traces for reported errors")
	flag.Parse()

	errors.SetHandler(&errors.LogHandler{Verbose: *verbose})

	resolved, err := config.Resolve(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	clk := &steppedClock{now: time.Unix(0, 0)}
	prev := animation.SetClock(clk)
	defer animation.SetClock(prev)

	dirty := true
	widget := widgets.NewRotatedImage(widgets.Options{
		NaturalPortrait: true,
		RotationSpeed:   resolved.RotationSpeed,
		FadeDuration:    resolved.FadeDuration,
		RequestRedraw:   func() { dirty = true },
	})
	viewport := rendering.Size{Width: float64(*size), Height: float64(*size)}
	widget.SetViewport(viewport, rendering.EdgeInsetsAll(16))
	widget.SetDeclaredSize(rendering.Size{Width: 192, Height: 144})
	widget.SetImage(testCard(*size, rendering.ColorBlue, rendering.ColorWhite))

	script := []event{
		{at: 0, run: func() { widget.SetOrientation(90, true) }},
		{at: 500 * time.Millisecond, run: func() {
			widget.SetImage(testCard(*size, rendering.RGB(0x20, 0x80, 0x40), rendering.RGB(0xFF, 0xD0, 0x40)))
		}},
		{at: 900 * time.Millisecond, run: func() { widget.SetOrientation(270, true) }},
	}

	step := time.Second / time.Duration(*fps)
	epoch := clk.now
	frames := 0
	for ; frames < 10*(*fps); frames++ {
		elapsed := time.Duration(frames) * step
		clk.now = epoch.Add(elapsed)
		for len(script) > 0 && script[0].at <= elapsed {
			script[0].run()
			script = script[1:]
		}
		if !dirty && len(script) == 0 {
			break
		}
		dirty = false

		img := renderFrame(widget, viewport)
		path := filepath.Join(*out, fmt.Sprintf("frame_%03d.png", frames))
		if err := writePNG(path, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing frame %d: %v\n", frames, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote %d frames to %s\n", frames, *out)
}

// renderFrame records the widget's paint into a display list and rasterizes
// it onto a fresh bitmap.
func renderFrame(widget *widgets.RotatedImage, viewport rendering.Size) *image.RGBA {
	var rec graphics.PictureRecorder
	canvas := rec.BeginRecording(viewport)
	canvas.Clear(rendering.RGB(0x10, 0x10, 0x10))
	widget.Draw(canvas)
	list := rec.EndRecording()

	dst := image.NewRGBA(image.Rect(0, 0, int(viewport.Width), int(viewport.Height)))
	list.Paint(raster.NewCanvas(dst))
	return dst
}

// testCard produces a landscape bitmap with a marker strip along the top
// edge, so rotation stays visible in the output.
func testCard(size int, bg, marker rendering.Color) image.Image {
	w := float64(size)
	h := w * 3 / 4
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	canvas := raster.NewCanvas(dst)
	canvas.Clear(bg)
	canvas.DrawRect(rendering.RectFromLTWH(0, 0, w, h/8), rendering.Paint{Color: marker})
	canvas.DrawRect(rendering.RectFromLTWH(w/2-w/16, h/4, w/8, h/2), rendering.Paint{Color: rendering.ColorWhite.WithAlpha(0xC0)})
	return canvas.Image()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
