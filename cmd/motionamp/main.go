/*
DESCRIPTION
  motionamp is an interactive motion amplifier. A control window provides
  trackbars for the tunables; 's' starts and stops amplification and Esc
  exits.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// motionamp is an interactive motion amplifier.
package main

import (
	"context"
	"flag"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/maruel/interrupt"

	"github.com/ausocean/motionamp/amplifier"
	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/cmd/internal/app"
	"github.com/ausocean/motionamp/device"
	"github.com/ausocean/motionamp/device/file"
	"github.com/ausocean/motionamp/device/webcam"
	"github.com/ausocean/motionamp/display"
	"github.com/ausocean/utils/logging"
)

// Misc constants.
const (
	windowTitle = "Motion Amplification"
	profilePath = "motionamp.prof"
)

// This is set to true if the 'profile' build tag is provided on build.
var canProfile = false

func main() {
	var f app.Flags
	f.Register(flag.CommandLine)
	camera := flag.Int("camera", 0, "index of the camera to open")
	path := flag.String("file", "", "video file to read instead of a camera")
	flag.Parse()

	log := app.NewLogger(f.LogPath, app.Level(f.Verbosity))
	log.Info("starting motionamp")

	// If motionamp has been built with the profile tag, then we'll start a
	// CPU profile.
	if canProfile {
		profile(log)
		defer pprof.StopCPUProfile()
		log.Info("profiling started")
	}

	c, err := f.Config(flag.CommandLine, log)
	if err != nil {
		log.Fatal("could not read config", "error", err.Error())
	}

	var src device.FrameSource
	if *path != "" {
		c.Update(map[string]string{config.KeyInput: "File", config.KeyInputPath: *path})
		src = file.New(log)
	} else {
		c.Update(map[string]string{config.KeyInput: "Camera", config.KeyCameraIndex: strconv.Itoa(*camera)})
		src = webcam.New(log)
	}

	latest := display.NewLatest()
	win := display.NewWindow(windowTitle, log)
	defer win.Close()

	plots, opts := f.Plotter()
	a, err := amplifier.New(c, src, latest, opts...)
	if err != nil {
		log.Fatal("could not initialise amplifier", "error", err.Error())
	}

	ctl := newControls(c, log)
	defer ctl.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.Watch(ctx, a, f.VarsPath, log)

	run(newSession(a, log), ctl, latest, win, log)
	f.SavePlots(plots, log)
}

// run handles frames, keys and control changes until the user exits.
func run(s *session, ctl controls, latest *display.Latest, win app.Window, l logging.Logger) {
	interrupt.HandleCtrlC()
	defer s.close()

	for !interrupt.IsSet() {
		k := display.KeyNone
		shown, err := latest.ShowOn(win)
		if err != nil {
			l.Error("could not show frame", "error", err.Error())
		}
		if shown {
			k = win.Key()
		}
		if ck := ctl.poll(); ck != display.KeyNone {
			k = ck
		}
		if s.key(k) {
			l.Info("exit requested")
			return
		}

		s.apply(ctl.values())

		if st, changed := s.refresh(); changed {
			l.Info("status", "status", st)
			ctl.setStatus(st, s.a.Running())
		}
	}
	l.Info("interrupted")
}

func profile(l logging.Logger) {
	f, err := os.Create(profilePath)
	if err != nil {
		l.Fatal("could not create CPU profile", "error", err.Error())
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		l.Fatal("could not start CPU profile", "error", err.Error())
	}
}
