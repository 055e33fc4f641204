/*
DESCRIPTION
  filter.go provides the parameters, statistics and errors shared by the
  motion amplification stages.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package filter provides the stages of the motion amplification pipeline:
// conversion of colour frames to intensity, smoothing, a bounded history of
// recent frames, accumulation of absolute differences against that history,
// and generation of an amplified motion-only image.
package filter

import (
	"errors"
	"fmt"
)

// Errors returned by the filter stages.
var (
	ErrInvalidConfig = errors.New("invalid filter configuration")
	ErrInvalidFrame  = errors.New("invalid frame")
	ErrEmptyHistory  = errors.New("frame history is empty")
)

// Params holds the tunables read once per frame. A Params value is treated
// as immutable once published to a running pipeline.
type Params struct {
	Threshold         float64 // Minimum binarization cutoff.
	Amplification     float64 // Gain applied to the difference before clipping to 8 bits.
	BlurRadius        int     // Gaussian kernel size, 0 disables smoothing.
	AdaptiveThreshold bool    // Use max(Threshold, 1.5*mean(diff)) as the cutoff.
}

// Validate checks the parameters are usable.
func (p Params) Validate() error {
	switch {
	case p.Amplification <= 0:
		return fmt.Errorf("%w: amplification must be positive, got %v", ErrInvalidConfig, p.Amplification)
	case p.Threshold < 0:
		return fmt.Errorf("%w: threshold must not be negative, got %v", ErrInvalidConfig, p.Threshold)
	case p.BlurRadius < 0:
		return fmt.Errorf("%w: blur radius must not be negative, got %d", ErrInvalidConfig, p.BlurRadius)
	}
	return nil
}

// Stats describes the result of processing a single frame.
type Stats struct {
	Threshold     float64 // The effective threshold used for the mask.
	MeanDiff      float64 // Mean of the unamplified difference grid.
	MotionPixels  int     // Number of non-zero pixels in the output.
	HistoryLength int     // Number of frames the difference was averaged over.
}
