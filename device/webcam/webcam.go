/*
DESCRIPTION
  webcam.go provides an implementation of FrameSource for webcams.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package webcam provides an implementation of FrameSource for webcams.
package webcam

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/device"
	"github.com/ausocean/motionamp/device/capture"
	"github.com/ausocean/utils/logging"
)

// Used to indicate package in logging.
const pkg = "webcam: "

// defaultFrameRate matches the config default for DesiredFPS.
const defaultFrameRate = 60

// Configuration field errors.
var (
	errBadCameraIndex = errors.New("camera index bad, defaulting")
	errBadFrameRate   = errors.New("frame rate bad or unset, defaulting")
)

// frameReader is the part of a capture used by Webcam.
type frameReader interface {
	Read() (image.Image, error)
	Close() error
}

// opener opens a camera; replaced in tests.
type opener func(index int, width, height uint, fps float64) (frameReader, error)

func openCamera(index int, width, height uint, fps float64) (frameReader, error) {
	c, err := capture.OpenCamera(index, width, height, fps)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Webcam is an implementation of the FrameSource interface for a webcam,
// read through Open CV.
type Webcam struct {
	log       logging.Logger
	open      opener
	index     int
	width     uint
	height    uint
	fps       float64
	mu        sync.Mutex
	cap       frameReader
	isRunning bool
}

// New returns a new Webcam.
func New(l logging.Logger) *Webcam {
	return &Webcam{
		log:  l,
		open: openCamera,
		fps:  defaultFrameRate,
	}
}

// Name returns the name of the device.
func (w *Webcam) Name() string {
	return "Webcam"
}

// Set will validate the CameraIndex and DesiredFPS fields of the given Config
// struct and assign them, with Width and Height, to the Webcam. If fields are
// not valid, an error is added to the MultiError and a default value is used.
// A zero Width or Height leaves the camera's own frame size.
func (w *Webcam) Set(c config.Config) error {
	var errs device.MultiError
	if c.CameraIndex < 0 {
		errs = append(errs, errBadCameraIndex)
		c.CameraIndex = 0
	}

	if c.DesiredFPS <= 0 {
		errs = append(errs, errBadFrameRate)
		c.DesiredFPS = defaultFrameRate
	}

	w.mu.Lock()
	w.index, w.width, w.height, w.fps = c.CameraIndex, c.Width, c.Height, c.DesiredFPS
	w.mu.Unlock()
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Start opens the camera.
func (w *Webcam) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isRunning {
		return nil
	}
	w.log.Debug(pkg+"opening camera", "index", w.index, "width", w.width, "height", w.height, "fps", w.fps)
	c, err := w.open(w.index, w.width, w.height, w.fps)
	if err != nil {
		return fmt.Errorf("%w: %w", device.ErrOpen, err)
	}
	w.cap = c
	w.isRunning = true
	w.log.Info(pkg+"camera opened", "index", w.index)
	return nil
}

// Read returns the next frame from the camera. A camera that yields no frame
// is treated as a read failure.
func (w *Webcam) Read() (image.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.isRunning {
		return nil, device.ErrNotRunning
	}
	img, err := w.cap.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrRead, err)
	}
	return img, nil
}

// Stop releases the camera.
func (w *Webcam) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.isRunning {
		return nil
	}
	w.isRunning = false
	err := w.cap.Close()
	w.cap = nil
	if err != nil {
		return fmt.Errorf("could not release camera: %w", err)
	}
	w.log.Info(pkg + "camera released")
	return nil
}

// IsRunning is used to determine if the webcam is running.
func (w *Webcam) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}
