//go:build withcv
// +build withcv

/*
DESCRIPTION
  window.go provides Window, a Display that shows frames in an Open CV
  window with a frame rate overlay.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package display

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ausocean/utils/logging"
)

// Overlay text placement and style.
var (
	labelOrigin = image.Pt(10, 30)
	labelColour = color.RGBA{0, 255, 0, 0}
)

const (
	labelScale     = 1
	labelThickness = 2
	quitKey        = 'q'
)

// Window is a Display backed by an Open CV window. Key presses are polled
// after each frame; 'q' requests quit.
type Window struct {
	log  logging.Logger
	win  *gocv.Window
	mu   sync.Mutex
	quit bool
	key  int
}

// NewWindow opens a window with the given title.
func NewWindow(title string, l logging.Logger) *Window {
	return &Window{log: l, win: gocv.NewWindow(title), key: KeyNone}
}

// Show draws the frame rate onto a copy of img and shows it.
func (w *Window) Show(img image.Image, fps float64) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("could not convert frame: %w", err)
	}
	defer mat.Close()

	gocv.PutText(&mat, Label(fps), labelOrigin, gocv.FontHersheySimplex, labelScale, labelColour, labelThickness)
	w.win.IMShow(mat)
	k := w.win.WaitKey(1)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.key = k
	if k == quitKey {
		w.log.Debug("quit key pressed")
		w.quit = true
	}
	return nil
}

// Quit reports whether 'q' has been pressed.
func (w *Window) Quit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.quit
}

// ResetQuit clears a pressed 'q'.
func (w *Window) ResetQuit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quit = false
}

// Key returns the key pressed during the last Show, or KeyNone.
func (w *Window) Key() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.key
}

// Close closes the window.
func (w *Window) Close() error {
	return w.win.Close()
}
