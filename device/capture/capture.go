//go:build withcv
// +build withcv

/*
DESCRIPTION
  capture.go wraps a gocv VideoCapture so that camera and video file devices
  can obtain frames as images.

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

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Capture reads frames from an OpenCV video capture.
type Capture struct {
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

// OpenCamera opens the camera with the given index. Non-zero width, height
// and fps are requested from the device; the device may not honour them.
func OpenCamera(index int, width, height uint, fps float64) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("could not open camera %d: %w", index, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", index)
	}
	if width != 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	}
	if height != 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	if fps > 0 {
		vc.Set(gocv.VideoCaptureFPS, fps)
	}
	return &Capture{vc: vc, mat: gocv.NewMat()}, nil
}

// OpenFile opens the video file at path.
func OpenFile(path string) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("could not open %s", path)
	}
	return &Capture{vc: vc, mat: gocv.NewMat()}, nil
}

// Read returns the next frame. ErrNoFrame is returned when the capture
// produces no frame, which for a file means the end has been reached.
func (c *Capture) Read() (image.Image, error) {
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, ErrNoFrame
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("could not convert frame: %w", err)
	}
	return img, nil
}

// FPS returns the frame rate reported by the capture, 0 if unknown.
func (c *Capture) FPS() float64 {
	return c.vc.Get(gocv.VideoCaptureFPS)
}

// Close releases the capture. gocv resources have to be freed manually.
func (c *Capture) Close() error {
	c.mat.Close()
	return c.vc.Close()
}
