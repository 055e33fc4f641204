/*
DESCRIPTION
  motion.go provides Motion, which runs a frame through preprocessing,
  history, difference accumulation and masking to produce an amplified
  motion-only image.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"fmt"
	"image"
)

// MinStackSize is the smallest history capacity Motion accepts.
const MinStackSize = 2

// Motion is the per frame motion amplification stage. It owns the frame
// history and scratch buffers, so a Motion must only be used from a single
// goroutine.
type Motion struct {
	debugging debugWindows
	history   *History
	scratch   [2]*image.Gray // Grayscale and blurred working frames.
	diff      *Diff
	out       *image.RGBA
}

// NewMotion returns a new Motion comparing each frame against at most
// stackSize recent frames.
func NewMotion(stackSize int) (*Motion, error) {
	if stackSize < MinStackSize {
		return nil, fmt.Errorf("%w: stack size must be at least %d, got %d", ErrInvalidConfig, MinStackSize, stackSize)
	}
	h, err := NewHistory(stackSize)
	if err != nil {
		return nil, err
	}
	return &Motion{history: h, debugging: newWindows("Motion")}, nil
}

// Process preprocesses img, pushes it to the history, and returns the
// masked, amplified mean difference against the history. The returned image
// is reused by the next call to Process.
func (m *Motion) Process(img image.Image, p Params) (*image.RGBA, Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}

	gray, err := Preprocess(img, p.BlurRadius, &m.scratch)
	if err != nil {
		return nil, Stats{}, err
	}

	// A change of frame size invalidates the history.
	if h := m.history; h.Len() > 0 {
		for past := range h.All() {
			if past.Rect.Size() != gray.Rect.Size() {
				h.Reset()
			}
			break
		}
	}
	m.history.Push(gray)

	m.diff, err = Accumulate(gray, m.history, m.diff)
	if err != nil {
		return nil, Stats{}, err
	}

	var set int
	st := Stats{HistoryLength: m.history.Len(), MeanDiff: m.diff.Mean()}
	m.out, st.Threshold, set = mask(m.diff, p.Amplification, p.Threshold, p.AdaptiveThreshold, m.out)
	st.MotionPixels = set

	// Draw debug information.
	m.debugging.show(gray, m.out, st)
	return m.out, st, nil
}

// History returns the frame history.
func (m *Motion) History() *History { return m.history }

// Resize changes the history capacity, dropping the oldest frames if
// shrinking.
func (m *Motion) Resize(stackSize int) error {
	if stackSize < MinStackSize {
		return fmt.Errorf("%w: stack size must be at least %d, got %d", ErrInvalidConfig, MinStackSize, stackSize)
	}
	return m.history.Resize(stackSize)
}

// Reset clears the history.
func (m *Motion) Reset() { m.history.Reset() }

// Close frees resources used for debugging. It has to be done manually,
// due to gocv using c-go.
func (m *Motion) Close() error { return m.debugging.close() }
