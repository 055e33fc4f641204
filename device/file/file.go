/*
DESCRIPTION
  file.go provides an implementation of the FrameSource interface for video
  files.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package file provides an implementation of FrameSource for video files.
package file

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

// frameReader is the part of a capture used by VideoFile.
type frameReader interface {
	Read() (image.Image, error)
	FPS() float64
	Close() error
}

func openFile(path string) (frameReader, error) {
	c, err := capture.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// VideoFile is an implementation of the FrameSource interface for a file
// containing video, decoded through Open CV.
type VideoFile struct {
	log       logging.Logger
	open      func(path string) (frameReader, error)
	path      string
	set       bool
	mu        sync.Mutex
	cap       frameReader
	fps       float64
	isRunning bool
}

// New returns a new VideoFile.
func New(l logging.Logger) *VideoFile { return &VideoFile{log: l, open: openFile} }

// NewWith returns a new VideoFile with the path provided i.e. the Set
// method does not need to be called.
func NewWith(l logging.Logger, path string) *VideoFile {
	return &VideoFile{log: l, open: openFile, path: path, set: true}
}

// Name returns the name of the device.
func (m *VideoFile) Name() string {
	return "File"
}

// Set takes the InputPath field of the config.
func (m *VideoFile) Set(c config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.InputPath == "" {
		return errors.New("no input path")
	}
	m.path = c.InputPath
	m.set = true
	return nil
}

// Start will open the file at the configured path.
func (m *VideoFile) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return fmt.Errorf("%w: VideoFile has not been set with config", device.ErrOpen)
	}
	if m.isRunning {
		return nil
	}
	c, err := m.open(m.path)
	if err != nil {
		return fmt.Errorf("%w: %w", device.ErrOpen, err)
	}
	m.cap = c
	m.fps = c.FPS()
	m.isRunning = true
	m.log.Info("opened video file", "path", m.path, "fps", m.fps)
	return nil
}

// Read returns the next frame of the file. ErrEndOfStream is returned once
// the file has no more frames.
func (m *VideoFile) Read() (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning {
		return nil, device.ErrNotRunning
	}
	img, err := m.cap.Read()
	switch {
	case errors.Is(err, capture.ErrNoFrame):
		return nil, device.ErrEndOfStream
	case err != nil:
		return nil, fmt.Errorf("%w: %w", device.ErrRead, err)
	}
	return img, nil
}

// FPS returns the frame rate reported by the file when it was opened, 0 if
// unknown.
func (m *VideoFile) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}

// Stop will close the file such that any further reads will fail.
func (m *VideoFile) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning {
		return nil
	}
	m.isRunning = false
	err := m.cap.Close()
	m.cap = nil
	if err != nil {
		return fmt.Errorf("could not close video file: %w", err)
	}
	return nil
}

// IsRunning is used to determine if the VideoFile device is running.
func (m *VideoFile) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}
