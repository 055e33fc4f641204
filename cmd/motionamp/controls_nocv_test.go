//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  controls_nocv_test.go tests the controls used without Open CV.

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
	"testing"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/display"
)

func TestHeadlessControls(t *testing.T) {
	ctl := newControls(config.Default(&dumbLogger{}), &dumbLogger{})

	if k := ctl.poll(); k != keyToggle {
		t.Fatalf("first poll returned %d, want start", k)
	}
	ctl.setStatus("running", true)
	if k := ctl.poll(); k != display.KeyNone {
		t.Errorf("poll returned %d while running", k)
	}

	ctl.setStatus("end of stream", false)
	if k := ctl.poll(); k != keyExit {
		t.Errorf("poll returned %d after the run ended, want exit", k)
	}
}

func TestHeadlessOpenFailure(t *testing.T) {
	ctl := newControls(config.Default(&dumbLogger{}), &dumbLogger{})
	ctl.poll()
	ctl.setStatus("could not open video source", false)
	if k := ctl.poll(); k != keyExit {
		t.Errorf("poll returned %d after a failed start, want exit", k)
	}
}
