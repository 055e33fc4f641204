/*
DESCRIPTION
  fps.go provides Estimator, an exponentially smoothed frames per second
  tracker driven by wall clock deltas between frames.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fps provides a smoothed frame rate estimator.
package fps

import "time"

// Defaults.
const (
	DefaultAlpha = 0.9
	DefaultFPS   = 60.0
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Option configures an Estimator.
type Option func(*Estimator)

// WithClock sets the clock used by Seed and Tick.
func WithClock(c Clock) Option {
	return func(e *Estimator) { e.clock = c }
}

// Estimator tracks frame rate as fps = fps*alpha + (1/dt)*(1-alpha) where dt
// is the time between successive updates. Estimator is not safe for
// concurrent use.
type Estimator struct {
	alpha float64
	fps   float64
	prev  time.Time
	clock Clock
}

// New returns an Estimator with smoothing factor alpha starting at the given
// frame rate. An alpha outside (0,1) is replaced by DefaultAlpha.
func New(alpha, initial float64, opts ...Option) *Estimator {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	e := &Estimator{alpha: alpha, fps: initial, clock: realClock{}}
	for _, o := range opts {
		o(e)
	}
	e.prev = e.clock.Now()
	return e
}

// Seed sets the time of the previous frame. It must be called before the
// first frame is read so that the first update has a valid interval.
func (e *Estimator) Seed(t time.Time) { e.prev = t }

// Reset sets the estimate back to fps and seeds the previous frame time with
// the clock's current time.
func (e *Estimator) Reset(fps float64) {
	e.fps = fps
	e.prev = e.clock.Now()
}

// Update records a frame at now and returns the smoothed estimate. If now is
// not after the previous frame time the estimate is returned unchanged and
// the previous frame time is kept.
func (e *Estimator) Update(now time.Time) float64 {
	dt := now.Sub(e.prev).Seconds()
	if dt <= 0 {
		return e.fps
	}
	e.prev = now
	e.fps = e.fps*e.alpha + (1/dt)*(1-e.alpha)
	return e.fps
}

// Tick is Update with the clock's current time.
func (e *Estimator) Tick() float64 { return e.Update(e.clock.Now()) }

// FPS returns the current estimate.
func (e *Estimator) FPS() float64 { return e.fps }
