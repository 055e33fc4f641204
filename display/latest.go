/*
DESCRIPTION
  latest.go provides Latest, a Display that holds the most recent frame so
  that it can be drawn from another goroutine.

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
	"image/draw"
	"sync"
	"sync/atomic"
)

// Latest is a Display that keeps a copy of the most recent frame. GUI
// toolkits that must be driven from a single goroutine draw it with ShowOn.
// Frames shown between two calls of ShowOn are dropped.
type Latest struct {
	mu    sync.Mutex
	img   *image.RGBA
	fps   float64
	fresh bool
	quit  atomic.Bool
}

// NewLatest returns a new Latest.
func NewLatest() *Latest { return &Latest{} }

// Show copies img.
func (l *Latest) Show(img image.Image, fps float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := img.Bounds()
	if l.img == nil || l.img.Rect.Size() != b.Size() {
		l.img = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(l.img, l.img.Rect, img, b.Min, draw.Src)
	l.fps = fps
	l.fresh = true
	return nil
}

// ShowOn shows the held frame on d if a frame has arrived since the last
// call, reporting whether it did.
func (l *Latest) ShowOn(d Display) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fresh {
		return false, nil
	}
	l.fresh = false
	return true, d.Show(l.img, l.fps)
}

// RequestQuit makes Quit return true.
func (l *Latest) RequestQuit() { l.quit.Store(true) }

// ResetQuit clears a quit request.
func (l *Latest) ResetQuit() { l.quit.Store(false) }

// Quit reports whether RequestQuit has been called since the last ResetQuit.
func (l *Latest) Quit() bool { return l.quit.Load() }

// Close does nothing.
func (l *Latest) Close() error { return nil }
