/*
DESCRIPTION
  device.go provides FrameSource, an interface that describes a configurable
  video device that can be started and stopped from which frames may be
  obtained.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides an interface and implementations for video input
// devices that can be started and stopped from which frames can be obtained.
package device

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ausocean/motionamp/amplifier/config"
)

// Capture errors. Implementations wrap ErrOpen and ErrRead so that callers
// can classify failures with errors.Is.
var (
	ErrEndOfStream = errors.New("end of stream")
	ErrNotRunning  = errors.New("device not running")
	ErrOpen        = errors.New("could not open video source")
	ErrRead        = errors.New("could not read frame")
)

// FrameSource describes a configurable video device from which frames can be
// obtained.
type FrameSource interface {
	// Name returns the name of the FrameSource.
	Name() string

	// Set allows for configuration of the FrameSource using a Config struct.
	// All, some or none of the fields of the Config struct may be used for
	// configuration by an implementation. An implementation should specify
	// what fields are considered.
	Set(c config.Config) error

	// Start opens the FrameSource, after which the Read method may be called
	// to obtain frames. Open failures wrap ErrOpen.
	Start() error

	// Read blocks until the next frame is available. ErrEndOfStream is
	// returned once a finite source is exhausted and ErrNotRunning if the
	// source has not been started. Other failures wrap ErrRead.
	Read() (image.Image, error)

	// Stop releases the FrameSource. From this point Reads will no longer be
	// successful.
	Stop() error

	// IsRunning is used to determine if the device is running.
	IsRunning() bool
}

// RateReporter is implemented by sources that know their native frame rate,
// such as video files.
type RateReporter interface {
	FPS() float64
}

// MultiError implements the built in error interface. MultiError is used here
// to collect multiple errors during validation of configuration parameters for
// FrameSources.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// Unwrap allows errors.Is and errors.As to inspect each error.
func (me MultiError) Unwrap() []error { return me }

// ManualInput is an implementation of the FrameSource interface that
// represents a manual input mechanism, i.e. frames are written to this input
// manually through software. Frames are passed through a channel, so a Write
// blocks until the frame is read or the input is stopped.
type ManualInput struct {
	mu        sync.Mutex
	isRunning bool
	frames    chan image.Image
	stop      chan struct{}
	closed    bool
	rate      float64
}

// NewManualInput provides a new ManualInput.
func NewManualInput() *ManualInput {
	return &ManualInput{}
}

// NewManualInputWithRate provides a new ManualInput that reports the given
// frame rate through FPS.
func NewManualInputWithRate(fps float64) *ManualInput {
	return &ManualInput{rate: fps}
}

// Name returns the name of ManualInput i.e. "ManualInput".
func (m *ManualInput) Name() string { return "ManualInput" }

// Set is a stub to satisfy the FrameSource interface; no configuration fields
// are required by ManualInput.
func (m *ManualInput) Set(c config.Config) error { return nil }

// Start prepares a new frame channel and sets the isRunning flag.
func (m *ManualInput) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = make(chan image.Image)
	m.stop = make(chan struct{})
	m.closed = false
	m.isRunning = true
	return nil
}

// Read returns the next written frame. Once CloseInput has been called and
// all written frames have been consumed, ErrEndOfStream is returned.
func (m *ManualInput) Read() (image.Image, error) {
	m.mu.Lock()
	if !m.isRunning {
		m.mu.Unlock()
		return nil, ErrNotRunning
	}
	frames, stop := m.frames, m.stop
	m.mu.Unlock()

	select {
	case img, ok := <-frames:
		if !ok {
			return nil, ErrEndOfStream
		}
		return img, nil
	case <-stop:
		return nil, ErrNotRunning
	}
}

// Write passes img to the next Read.
func (m *ManualInput) Write(img image.Image) error {
	m.mu.Lock()
	if !m.isRunning || m.closed {
		m.mu.Unlock()
		return ErrNotRunning
	}
	frames, stop := m.frames, m.stop
	m.mu.Unlock()

	select {
	case frames <- img:
		return nil
	case <-stop:
		return ErrNotRunning
	}
}

// CloseInput marks the end of the written stream; subsequent reads return
// ErrEndOfStream. It must not be called concurrently with Write.
func (m *ManualInput) CloseInput() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning || m.closed {
		return
	}
	m.closed = true
	close(m.frames)
}

// Stop unblocks pending reads and writes and sets the isRunning flag to
// false.
func (m *ManualInput) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning {
		return nil
	}
	close(m.stop)
	m.isRunning = false
	return nil
}

// IsRunning returns the value of the isRunning flag to indicate if Start has
// been called (and Stop has not been called after).
func (m *ManualInput) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}

// FPS returns the rate given to NewManualInputWithRate, or 0.
func (m *ManualInput) FPS() float64 { return m.rate }
