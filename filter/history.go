/*
DESCRIPTION
  history.go provides History, a bounded FIFO of recent intensity frames used
  as the comparison baseline for the difference accumulator.

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
	"iter"
)

// History is a fixed capacity, insertion ordered buffer of frames. When a
// frame is pushed at capacity the oldest frame is evicted. Frames are copied
// on push so the caller may reuse its frame afterwards.
//
// History is not safe for concurrent use.
type History struct {
	frames []*image.Gray // Ring storage, len(frames) == capacity.
	head   int           // Index of the oldest frame.
	n      int           // Number of frames held.
}

// NewHistory returns a new History holding at most capacity frames.
func NewHistory(capacity int) (*History, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: history capacity must be at least 1, got %d", ErrInvalidConfig, capacity)
	}
	return &History{frames: make([]*image.Gray, capacity)}, nil
}

// Len returns the number of frames currently held.
func (h *History) Len() int { return h.n }

// Cap returns the maximum number of frames held.
func (h *History) Cap() int { return len(h.frames) }

// Push appends a copy of f as the newest frame, evicting the oldest frame if
// the history is full.
func (h *History) Push(f *image.Gray) {
	var slot int
	if h.n < len(h.frames) {
		slot = (h.head + h.n) % len(h.frames)
		h.n++
	} else {
		slot = h.head
		h.head = (h.head + 1) % len(h.frames)
	}
	h.frames[slot] = copyGray(f, h.frames[slot])
}

// All returns a sequence of the held frames from oldest to newest. The
// sequence may be ranged over more than once; it reflects the contents at
// the time of iteration. Frames yielded must not be modified.
func (h *History) All() iter.Seq[*image.Gray] {
	return func(yield func(*image.Gray) bool) {
		for i := 0; i < h.n; i++ {
			if !yield(h.frames[(h.head+i)%len(h.frames)]) {
				return
			}
		}
	}
}

// Resize changes the capacity of the history. When shrinking, the oldest
// frames are dropped.
func (h *History) Resize(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: history capacity must be at least 1, got %d", ErrInvalidConfig, capacity)
	}
	frames := make([]*image.Gray, capacity)
	keep := min(h.n, capacity)
	drop := h.n - keep
	for i := 0; i < keep; i++ {
		frames[i] = h.frames[(h.head+drop+i)%len(h.frames)]
	}
	h.frames, h.head, h.n = frames, 0, keep
	return nil
}

// Reset removes all frames from the history.
func (h *History) Reset() {
	clear(h.frames)
	h.head, h.n = 0, 0
}

// copyGray copies src into dst if dst has the same shape, otherwise into a
// new frame. The copy always has its origin at (0,0).
func copyGray(src, dst *image.Gray) *image.Gray {
	w, hgt := src.Rect.Dx(), src.Rect.Dy()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != hgt {
		dst = image.NewGray(image.Rect(0, 0, w, hgt))
	}
	base := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y)
	for y := 0; y < hgt; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[base+y*src.Stride:base+y*src.Stride+w])
	}
	return dst
}
