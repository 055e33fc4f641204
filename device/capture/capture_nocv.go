//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the gocv capture when built without Open CV, for example on
  Circle-CI. Every open fails with ErrUnavailable.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

import "image"

// Capture is a stand-in that can never be opened.
type Capture struct{}

// OpenCamera returns ErrUnavailable.
func OpenCamera(index int, width, height uint, fps float64) (*Capture, error) {
	return nil, ErrUnavailable
}

// OpenFile returns ErrUnavailable.
func OpenFile(path string) (*Capture, error) { return nil, ErrUnavailable }

// Read returns ErrNoFrame.
func (c *Capture) Read() (image.Image, error) { return nil, ErrNoFrame }

// FPS returns 0.
func (c *Capture) FPS() float64 { return 0 }

// Close does nothing.
func (c *Capture) Close() error { return nil }
