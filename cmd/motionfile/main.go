/*
DESCRIPTION
  motionfile shows amplified motion from a video file in a window until the
  file ends or 'q' or Ctrl-C is pressed.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// motionfile shows amplified motion from a video file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ausocean/motionamp/amplifier"
	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/cmd/internal/app"
	"github.com/ausocean/motionamp/device/file"
	"github.com/ausocean/motionamp/display"
)

const windowTitle = "Motion Amplification"

func main() {
	var f app.Flags
	f.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <video file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	log := app.NewLogger(f.LogPath, app.Level(f.Verbosity))
	log.Info("starting motionfile", "path", path)

	c, err := f.Config(flag.CommandLine, log)
	if err != nil {
		log.Fatal("could not read config", "error", err.Error())
	}
	c.Update(map[string]string{
		config.KeyInput:     "File",
		config.KeyInputPath: path,
	})

	latest := display.NewLatest()
	win := display.NewWindow(windowTitle, log)
	defer win.Close()

	plots, opts := f.Plotter()
	a, err := amplifier.New(c, file.New(log), latest, opts...)
	if err != nil {
		log.Fatal("could not initialise amplifier", "error", err.Error())
	}

	err = app.Run(a, latest, win, f.VarsPath, log)
	f.SavePlots(plots, log)
	if err != nil {
		log.Error("motionfile failed", "error", err.Error())
		os.Exit(1)
	}
}
