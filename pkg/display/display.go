//go:build !test

// Package display hosts a gopherboy/internal/gameboy.System in a fyne
// window: it drives the emulation loop on its own goroutine, paints
// each completed frame to a raster canvas, and translates key events
// to joypad button presses. Grounded on the teacher's pkg/display/fyne
// driver, simplified to a single window plus a debug performance
// window instead of the teacher's full multi-window menu system.
package display

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/danhawkins/gopherboy/internal/gameboy"
)

const scale = 4

// Window owns the fyne application and the single System it displays.
type Window struct {
	app    fyne.App
	window fyne.Window
	gb     *gameboy.System

	frameTimes []time.Duration
	onFrame    func(frameTime time.Duration)
}

// New creates the application and main window, sized to the Game Boy
// screen scaled by scale, but does not show it yet.
func New(gb *gameboy.System) *Window {
	fyneApp := app.NewWithID("gopherboy")
	win := fyneApp.NewWindow("gopherboy")
	win.Resize(fyne.NewSize(160*scale, 144*scale))
	win.SetPadded(false)

	w := &Window{app: fyneApp, window: win, gb: gb}
	w.wireInput()
	return w
}

// OnFrame registers a callback invoked with each frame's render time,
// for a Performance window to plot. Callbacks registered earlier keep
// running, in registration order.
func (w *Window) OnFrame(fn func(time.Duration)) {
	prev := w.onFrame
	if prev == nil {
		w.onFrame = fn
		return
	}
	w.onFrame = func(d time.Duration) { prev(d); fn(d) }
}

// App returns the underlying fyne application, so a caller can open
// additional windows (e.g. a PerformanceWindow) against it.
func (w *Window) App() fyne.App { return w.app }

// Screenshot returns a copy of the most recently painted frame as an
// image.RGBA, for screenshot-to-file or screenshot-to-clipboard use.
func (w *Window) Screenshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 160, 144))
	copy(img.Pix, w.gb.Framebuffer())
	return img
}

// Run shows the window and blocks, running the emulator on a
// background goroutine that paints each completed frame to the
// window's canvas, until the window is closed.
func (w *Window) Run() {
	img := image.NewRGBA(image.Rect(0, 0, 160, 144))
	raster := canvas.NewRasterFromImage(img)
	raster.ScaleMode = canvas.ImageScalePixels
	raster.SetMinSize(fyne.NewSize(160, 144))
	w.window.SetContent(raster)
	w.window.Show()

	stop := make(chan struct{})
	w.window.SetOnClosed(func() {
		close(stop)
		w.gb.Stop()
	})

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			start := time.Now()
			w.gb.RunFrame()
			elapsed := time.Since(start)

			fb := w.gb.Framebuffer()
			copy(img.Pix, fb)
			raster.Refresh()

			if w.onFrame != nil {
				w.onFrame(elapsed)
			}
		}
	}()

	w.app.Run()
}

var keyMap = map[fyne.KeyName]gameboy.Button{
	fyne.KeyA:         gameboy.ButtonA,
	fyne.KeyB:         gameboy.ButtonB,
	fyne.KeyUp:        gameboy.ButtonUp,
	fyne.KeyDown:      gameboy.ButtonDown,
	fyne.KeyLeft:      gameboy.ButtonLeft,
	fyne.KeyRight:     gameboy.ButtonRight,
	fyne.KeyReturn:    gameboy.ButtonStart,
	fyne.KeyBackspace: gameboy.ButtonSelect,
}

func (w *Window) wireInput() {
	var pressed uint8

	buttonBit := map[gameboy.Button]uint8{
		gameboy.ButtonA: 1 << 0, gameboy.ButtonB: 1 << 1,
		gameboy.ButtonSelect: 1 << 2, gameboy.ButtonStart: 1 << 3,
		gameboy.ButtonRight: 1 << 4, gameboy.ButtonLeft: 1 << 5,
		gameboy.ButtonUp: 1 << 6, gameboy.ButtonDown: 1 << 7,
	}

	desk, ok := w.window.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
		if btn, isMapped := keyMap[e.Name]; isMapped {
			pressed |= buttonBit[btn]
			w.gb.SetButtons(pressed)
		}
	})
	desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
		if btn, isMapped := keyMap[e.Name]; isMapped {
			pressed &^= buttonBit[btn]
			w.gb.SetButtons(pressed)
		}
	})
}
