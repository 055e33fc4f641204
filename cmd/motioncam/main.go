/*
DESCRIPTION
  motioncam shows amplified motion from a camera in a window until 'q' or
  Ctrl-C is pressed.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// motioncam shows amplified motion from a camera.
package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/ausocean/motionamp/amplifier"
	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/cmd/internal/app"
	"github.com/ausocean/motionamp/device/webcam"
	"github.com/ausocean/motionamp/display"
)

const windowTitle = "Motion Amplification"

func main() {
	var f app.Flags
	f.Register(flag.CommandLine)
	camera := flag.Int("camera", 0, "index of the camera to open")
	flag.Parse()

	log := app.NewLogger(f.LogPath, app.Level(f.Verbosity))
	log.Info("starting motioncam", "camera", *camera)

	c, err := f.Config(flag.CommandLine, log)
	if err != nil {
		log.Fatal("could not read config", "error", err.Error())
	}
	c.Update(map[string]string{
		config.KeyInput:       "Camera",
		config.KeyCameraIndex: strconv.Itoa(*camera),
	})

	latest := display.NewLatest()
	win := display.NewWindow(windowTitle, log)
	defer win.Close()

	plots, opts := f.Plotter()
	a, err := amplifier.New(c, webcam.New(log), latest, opts...)
	if err != nil {
		log.Fatal("could not initialise amplifier", "error", err.Error())
	}

	err = app.Run(a, latest, win, f.VarsPath, log)
	f.SavePlots(plots, log)
	if err != nil {
		log.Error("motioncam failed", "error", err.Error())
		os.Exit(1)
	}
}
