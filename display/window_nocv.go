//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the Open CV window when built without Open CV. Frames are
  discarded and the frame rate is logged.

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
	"image"
	"sync"

	"github.com/ausocean/utils/logging"
)

// logEvery is the number of frames between frame rate log messages.
const logEvery = 30

// Window is a stand-in for the Open CV window that logs the frame rate at
// debug level. It never requests quit.
type Window struct {
	log    logging.Logger
	title  string
	mu     sync.Mutex
	frames int
}

// NewWindow returns a new Window.
func NewWindow(title string, l logging.Logger) *Window {
	return &Window{log: l, title: title}
}

// Show logs the frame rate every logEvery frames.
func (w *Window) Show(img image.Image, fps float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frames%logEvery == 0 {
		w.log.Debug(w.title, "fps", Label(fps), "frame", w.frames)
	}
	w.frames++
	return nil
}

// Quit returns false.
func (w *Window) Quit() bool { return false }

// ResetQuit does nothing.
func (w *Window) ResetQuit() {}

// Key returns KeyNone.
func (w *Window) Key() int { return KeyNone }

// Close does nothing.
func (w *Window) Close() error { return nil }
