/*
DESCRIPTION
  amplifier.go provides Amplifier, which reads frames from a source, amplifies
  the motion in them and shows the result on a display.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package amplifier provides an API for running motion amplification on
// frames read from a video source and showing the result on a display.
package amplifier

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/device"
	"github.com/ausocean/motionamp/display"
	"github.com/ausocean/motionamp/filter"
	"github.com/ausocean/motionamp/fps"
)

// Status messages.
const (
	statusIdle        = "idle"
	statusRunning     = "running"
	statusStopped     = "stopped"
	statusQuit        = "quit requested"
	statusEndOfStream = "end of stream"
	statusOpenFailed  = "could not open video source"
	statusReadFailed  = "could not read frame"
	statusBadFrame    = "invalid frame"
	statusShowFailed  = "could not show frame"
)

// State is the lifecycle state of an Amplifier.
type State int32

// States of an Amplifier. An Amplifier moves from Idle to Running on Start,
// and through Stopping back to Idle when the run ends for any reason.
const (
	Idle State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Option configures an Amplifier.
type Option func(*Amplifier)

// WithClock sets the clock used for frame rate estimation.
func WithClock(c fps.Clock) Option {
	return func(a *Amplifier) { a.clock = c }
}

// Observer is called by the processing routine after each frame is shown,
// with the frame number within the run, the frame statistics and the frame
// rate. It must not block.
type Observer func(frame uint64, st filter.Stats, fps float64)

// WithObserver adds an Observer.
func WithObserver(o Observer) Option {
	return func(a *Amplifier) { a.observers = append(a.observers, o) }
}

// Amplifier provides methods to control a motion amplification session;
// providing methods to start, stop and change the state of an instance using
// the Config struct.
type Amplifier struct {
	// mu guards cfg, status, err, stop and done.
	mu sync.Mutex

	// cfg holds the Amplifier configuration. StackSize and source fields
	// take effect on the next Start.
	cfg config.Config

	// src provides frames and disp shows the amplified result.
	src  device.FrameSource
	disp display.Display

	clock     fps.Clock
	rate      *fps.Estimator
	observers []Observer

	// state holds a State; it is only written with mu held.
	state atomic.Int32

	// params holds the live tunables, replaced as a whole on change and
	// read once per frame by the worker.
	params atomic.Pointer[filter.Params]

	// stats holds the result of the most recently processed frame.
	stats atomic.Pointer[filter.Stats]

	// frames counts frames shown in the current run.
	frames atomic.Uint64

	// stop is set to request the worker to end the run.
	stop *atomic.Bool

	// done is closed once the worker has released the source and returned
	// to Idle.
	done chan struct{}

	status string
	err    error

	// wg will be used to wait for the processing routine to finish.
	wg sync.WaitGroup
}

// New returns a pointer to a new Amplifier with the desired configuration,
// source and display, or an error if the configuration is not valid.
func New(c config.Config, src device.FrameSource, disp display.Display, opts ...Option) (*Amplifier, error) {
	if c.Logger == nil {
		return nil, fmt.Errorf("%w: no logger", config.ErrInvalidConfig)
	}
	if src == nil || disp == nil {
		return nil, errors.New("amplifier needs a source and a display")
	}
	err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("could not set config: %w", err)
	}
	c.Logger.SetLevel(c.LogLevel)

	a := &Amplifier{
		cfg:    c,
		src:    src,
		disp:   disp,
		done:   make(chan struct{}),
		status: statusIdle,
	}
	for _, o := range opts {
		o(a)
	}
	var fo []fps.Option
	if a.clock != nil {
		fo = append(fo, fps.WithClock(a.clock))
	}
	a.rate = fps.New(c.FPSSmoothing, c.DesiredFPS, fo...)
	close(a.done)

	p := c.Params()
	a.params.Store(&p)
	a.stats.Store(&filter.Stats{})
	return a, nil
}

// Config returns a copy of the amplifier's current config.
func (a *Amplifier) Config() config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Start opens the source and starts processing frames in a new routine.
// If the source cannot be opened the error is returned, wrapping
// device.ErrOpen, and the amplifier stays Idle. Calling Start while not Idle
// has no effect.
func (a *Amplifier) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.State() != Idle {
		a.cfg.Logger.Warning("start called, but amplifier already running")
		return nil
	}

	m, err := filter.NewMotion(a.cfg.StackSize)
	if err != nil {
		return fmt.Errorf("could not create motion filter: %w", err)
	}

	a.cfg.Logger.Debug("configuring source", "source", a.src.Name())
	err = a.src.Set(a.cfg)
	if err != nil {
		a.cfg.Logger.Warning("errors from configuring source", "errors", err.Error())
	}

	a.cfg.Logger.Debug("opening source")
	err = a.src.Start()
	if err != nil {
		if !errors.Is(err, device.ErrOpen) {
			err = fmt.Errorf("%w: %w", device.ErrOpen, err)
		}
		a.cfg.Logger.Error(statusOpenFailed, "error", err.Error())
		a.status = statusOpenFailed
		a.err = err
		return err
	}
	a.cfg.Logger.Info("source opened", "source", a.src.Name())

	initial := a.cfg.DesiredFPS
	if rr, ok := a.src.(device.RateReporter); ok && rr.FPS() > 0 {
		initial = rr.FPS()
	}
	a.rate.Reset(initial)
	a.frames.Store(0)
	if r, ok := a.disp.(display.QuitResetter); ok {
		r.ResetQuit()
	}
	a.stats.Store(&filter.Stats{})

	stop := &atomic.Bool{}
	done := make(chan struct{})
	a.stop, a.done = stop, done
	a.status = statusRunning
	a.err = nil
	a.state.Store(int32(Running))

	a.cfg.Logger.Debug("starting processing routine", "stackSize", a.cfg.StackSize, "fps", initial)
	a.wg.Add(1)
	go a.process(m, stop, done)
	return nil
}

// Stop requests the current run to end and waits until the source has been
// released and the amplifier is Idle. The wait lasts at most one frame
// iteration. Stop must not be called from the display.
func (a *Amplifier) Stop() {
	a.mu.Lock()
	if a.State() != Running {
		a.cfg.Logger.Warning("stop called but amplifier isn't running")
		a.mu.Unlock()
		return
	}
	l := a.cfg.Logger
	l.Debug("requesting stop")
	a.stop.Store(true)
	done := a.done
	a.mu.Unlock()

	l.Debug("waiting for routines to finish")
	<-done
	a.wg.Wait()
	l.Info("routines finished")
}

// Wait blocks until the current run, if any, has ended.
func (a *Amplifier) Wait() { <-a.Done() }

// Done returns a channel that is closed when the current run ends. If the
// amplifier is Idle the returned channel is already closed.
func (a *Amplifier) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

// State returns the current lifecycle state.
func (a *Amplifier) State() State { return State(a.state.Load()) }

// Running reports whether the amplifier is Running.
func (a *Amplifier) Running() bool { return a.State() == Running }

// Status returns a user visible description of the current state or of how
// the last run ended.
func (a *Amplifier) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.status + ": " + a.err.Error()
	}
	return a.status
}

// Err returns the error that ended the last run, or nil if it ended
// normally or is still going.
func (a *Amplifier) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Params returns the tunables currently applied to frames.
func (a *Amplifier) Params() filter.Params { return *a.params.Load() }

// Stats returns the statistics of the most recently processed frame.
func (a *Amplifier) Stats() filter.Stats { return *a.stats.Load() }

// FramesShown returns the number of frames shown in the current or last run.
func (a *Amplifier) FramesShown() uint64 { return a.frames.Load() }

// SetParams replaces the live tunables. The change is seen by the next frame
// processed.
func (a *Amplifier) SetParams(p filter.Params) error {
	err := p.Validate()
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg.Threshold = p.Threshold
	a.cfg.Amplification = p.Amplification
	a.cfg.BlurRadius = p.BlurRadius
	a.cfg.AdaptiveThreshold = p.AdaptiveThreshold
	a.params.Store(&p)
	a.cfg.Logger.Debug("params changed", "params", p)
	return nil
}

// Update takes a map of variables and their values and edits the current
// config if the variables are recognised as valid parameters. Live variables
// apply to the next frame; the rest apply at the next Start. If the updated
// config is not valid it is discarded and the error returned.
func (a *Amplifier) Update(vars map[string]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cfg.Logger.Debug("checking vars", "vars", vars)
	c := a.cfg
	c.Update(vars)
	err := c.Validate()
	if err != nil {
		a.cfg.Logger.Warning("rejecting config update", "error", err.Error())
		return fmt.Errorf("could not update config: %w", err)
	}
	a.cfg = c
	a.cfg.Logger.SetLevel(a.cfg.LogLevel)

	p := a.cfg.Params()
	a.params.Store(&p)

	if a.State() == Running {
		for k := range vars {
			if !config.Live(k) {
				a.cfg.Logger.Info("variable will apply on restart", "variable", k)
			}
		}
	}
	a.cfg.Logger.Info("finished reconfig")
	return nil
}

// process reads, amplifies and shows frames until a stop is requested or the
// run fails, then releases the source and returns the amplifier to Idle.
func (a *Amplifier) process(m *filter.Motion, stop *atomic.Bool, done chan struct{}) {
	defer a.wg.Done()

	status, err := a.loop(m, stop)

	a.mu.Lock()
	a.state.Store(int32(Stopping))
	a.cfg.Logger.Debug("stopping source")
	rerr := a.src.Stop()
	if rerr != nil {
		a.cfg.Logger.Error("could not stop source", "error", rerr.Error())
	} else {
		a.cfg.Logger.Info("source stopped")
	}
	m.Reset()
	if err := m.Close(); err != nil {
		a.cfg.Logger.Warning("could not close motion filter", "error", err.Error())
	}

	a.status, a.err = status, err
	if err != nil {
		a.cfg.Logger.Error(status, "error", err.Error())
	} else {
		a.cfg.Logger.Info("amplifier stopped", "status", status, "frames", a.frames.Load())
	}
	a.state.Store(int32(Idle))
	close(done)
	a.mu.Unlock()
}

// loop runs the per frame pipeline, returning the status and error that end
// the run.
func (a *Amplifier) loop(m *filter.Motion, stop *atomic.Bool) (string, error) {
	for {
		if stop.Load() {
			return statusStopped, nil
		}

		img, err := a.src.Read()
		switch {
		case errors.Is(err, device.ErrEndOfStream):
			return statusEndOfStream, nil
		case err != nil:
			return statusReadFailed, err
		}

		out, st, err := m.Process(img, *a.params.Load())
		if err != nil {
			return statusBadFrame, err
		}
		a.stats.Store(&st)

		rate := a.rate.Tick()
		err = a.disp.Show(out, rate)
		if err != nil {
			return statusShowFailed, err
		}
		n := a.frames.Add(1)
		for _, o := range a.observers {
			o(n, st, rate)
		}

		if a.disp.Quit() {
			return statusQuit, nil
		}
	}
}
