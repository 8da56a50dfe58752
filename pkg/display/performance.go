//go:build !test

package display

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const perfSamples = 120

// PerformanceWindow plots recent per-frame render times, grounded on
// the teacher's pkg/display/fyne/views/performance.go gonum/plot
// usage.
type PerformanceWindow struct {
	plot      *plot.Plot
	line      *plotter.Line
	img       *vgimg.Canvas
	raster    *canvas.Raster
	samples   plotter.XYs
	nextIndex int
}

// NewPerformanceWindow builds a plot.Plot titled "Frame Time (ms)" backed
// by a ring buffer of perfSamples points.
func NewPerformanceWindow() *PerformanceWindow {
	p := plot.New()
	p.Title.Text = "Frame Time (ms)"

	samples := make(plotter.XYs, perfSamples)
	for i := range samples {
		samples[i].X = float64(i)
	}
	line, err := plotter.NewLine(samples)
	if err != nil {
		panic(err)
	}
	p.Add(line)

	frame := image.NewRGBA(image.Rect(0, 0, 640, 240))
	vgc := vgimg.NewWith(vgimg.UseImage(frame))
	p.Draw(draw.New(vgc))

	raster := canvas.NewRasterFromImage(vgc.Image())
	raster.ScaleMode = canvas.ImageScalePixels
	raster.SetMinSize(fyne.NewSize(640, 240))

	return &PerformanceWindow{plot: p, line: line, img: vgc, raster: raster, samples: samples}
}

// Content returns the fyne canvas object to embed in a window.
func (pw *PerformanceWindow) Content() fyne.CanvasObject { return pw.raster }

// PushFrameTime records one frame's render duration and redraws the
// plot in place.
func (pw *PerformanceWindow) PushFrameTime(d time.Duration) {
	pw.samples[pw.nextIndex].Y = float64(d.Microseconds()) / 1000.0
	pw.nextIndex = (pw.nextIndex + 1) % perfSamples

	pw.plot.Draw(draw.New(pw.img))
	pw.raster.Refresh()
}

// Show opens the performance window as a child of app, titled
// "Performance", matching the teacher's debug-menu naming.
func Show(a fyne.App, pw *PerformanceWindow) fyne.Window {
	w := a.NewWindow("Performance")
	w.SetContent(pw.Content())
	w.Resize(fyne.NewSize(640, 240))
	w.Show()
	return w
}
