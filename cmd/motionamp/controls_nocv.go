//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the trackbar control window when built without Open CV. The
  amplifier is started once and tuned through the vars file given with
  -config. motionamp exits when the run ends.

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
	"time"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/display"
	"github.com/ausocean/motionamp/filter"
	"github.com/ausocean/utils/logging"
)

const pollDelay = 10 * time.Millisecond

// headlessControls presses start once, presses exit once the run has ended,
// and otherwise leaves the tunables unchanged.
type headlessControls struct {
	log     logging.Logger
	params  filter.Params
	stack   int
	started bool
	ended   bool
}

func newControls(c config.Config, l logging.Logger) controls {
	l.Info("built without Open CV; use -config to tune")
	return &headlessControls{log: l, params: c.Params(), stack: c.StackSize}
}

func (hc *headlessControls) poll() int {
	switch {
	case !hc.started:
		hc.started = true
		return keyToggle
	case hc.ended:
		return keyExit
	}
	time.Sleep(pollDelay)
	return display.KeyNone
}

func (hc *headlessControls) values() (filter.Params, int) { return hc.params, hc.stack }

func (hc *headlessControls) setStatus(status string, running bool) {
	if hc.started && !running && !hc.ended {
		hc.log.Info("run ended", "status", status)
		hc.ended = true
	}
}

func (hc *headlessControls) close() {}
