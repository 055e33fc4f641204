/*
DESCRIPTION
  display.go provides Display, an interface describing where amplified frames
  are shown, and Func, an adapter allowing ordinary functions to be used as a
  Display.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package display provides the output side of the amplifier: an interface
// for showing frames along with the current frame rate, and a window
// implementation.
package display

import (
	"fmt"
	"image"
)

// Key codes reported by windows.
const (
	KeyNone   = -1
	KeyEscape = 27
)

// Display shows amplified frames.
type Display interface {
	// Show presents img with fps overlaid. The image may be reused by the
	// caller once Show returns.
	Show(img image.Image, fps float64) error

	// Quit reports whether the user has asked to quit. It must not block.
	Quit() bool

	// Close releases any resources held by the Display.
	Close() error
}

// QuitResetter is implemented by displays whose quit request persists until
// cleared, so that a new run is not ended by the last one's quit.
type QuitResetter interface {
	ResetQuit()
}

// Func is an adapter to allow the use of an ordinary function as a Display.
// A Func never requests quit.
type Func func(img image.Image, fps float64) error

// Show calls f(img, fps).
func (f Func) Show(img image.Image, fps float64) error { return f(img, fps) }

// Quit returns false.
func (f Func) Quit() bool { return false }

// Close does nothing.
func (f Func) Close() error { return nil }

// Label returns the frame rate overlay text.
func Label(fps float64) string { return fmt.Sprintf("%.1f FPS", fps) }
