/*
DESCRIPTION
  session.go applies key presses and control values to an amplifier.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"strconv"

	"github.com/ausocean/motionamp/amplifier"
	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/display"
	"github.com/ausocean/motionamp/filter"
	"github.com/ausocean/utils/logging"
)

// Keys handled by a session.
const (
	keyToggle = 's'
	keyQuit   = 'q'
	keyExit   = display.KeyEscape
)

// controls is the user's means of tuning and starting the amplifier.
type controls interface {
	// poll waits briefly for a key press and returns it, or display.KeyNone.
	poll() int

	// values returns the current tunables and stack size.
	values() (filter.Params, int)

	// setStatus shows the amplifier status to the user.
	setStatus(status string, running bool)

	close()
}

// session keeps an amplifier in step with the controls.
type session struct {
	a      *amplifier.Amplifier
	log    logging.Logger
	params filter.Params
	stack  int
	status string
}

func newSession(a *amplifier.Amplifier, l logging.Logger) *session {
	c := a.Config()
	return &session{a: a, log: l, params: c.Params(), stack: c.StackSize}
}

// key handles a key press, returning true if the user asked to exit.
func (s *session) key(k int) bool {
	switch k {
	case keyToggle:
		if s.a.Running() {
			s.log.Debug("stopping amplifier")
			s.a.Stop()
			return false
		}
		s.log.Debug("starting amplifier")
		err := s.a.Start()
		if err != nil {
			s.log.Error("could not start amplifier", "error", err.Error())
		}
	case keyQuit:
		if s.a.Running() {
			s.log.Debug("quit key pressed, stopping amplifier")
			s.a.Stop()
		}
	case keyExit:
		return true
	}
	return false
}

// apply passes changed control values to the amplifier. Tunables apply to
// the next frame; a changed stack size applies at the next start.
func (s *session) apply(p filter.Params, stack int) {
	if p != s.params {
		err := s.a.SetParams(p)
		if err != nil {
			s.log.Warning("rejected params", "error", err.Error())
		} else {
			s.params = p
		}
	}
	if stack != s.stack {
		err := s.a.Update(map[string]string{config.KeyStackSize: strconv.Itoa(stack)})
		if err != nil {
			s.log.Warning("rejected stack size", "error", err.Error())
		} else {
			s.stack = stack
		}
	}
}

// refresh returns the amplifier status and whether it changed since the
// last call.
func (s *session) refresh() (string, bool) {
	st := s.a.Status()
	if st == s.status {
		return st, false
	}
	s.status = st
	return st, true
}

// close stops the amplifier if it is running.
func (s *session) close() {
	if s.a.Running() {
		s.a.Stop()
	}
}

func clamp(v, min, max int) int {
	switch {
	case v < min:
		return min
	case v > max:
		return max
	}
	return v
}

func boolPos(b bool) int {
	if b {
		return 1
	}
	return 0
}
