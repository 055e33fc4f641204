/*
DESCRIPTION
  app.go provides the setup shared by the motion amplification commands:
  command line flags, file and terminal logging, and running an amplifier
  until it ends or the user interrupts.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package app provides the setup shared by the motion amplification
// commands.
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/maruel/interrupt"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/motionamp/amplifier"
	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/display"
	"github.com/ausocean/motionamp/monitor"
	"github.com/ausocean/utils/logging"
)

// Logging configuration.
const (
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

// Flags holds the command line flags common to all commands.
type Flags struct {
	Threshold     float64
	Amplification float64
	BlurRadius    int
	StackSize     int
	Adaptive      bool
	FPS           float64
	VarsPath      string
	LogPath       string
	Verbosity     string
	PlotDir       string
}

// Register defines the flags on fs with the config defaults.
func (f *Flags) Register(fs *flag.FlagSet) {
	d := config.Default(nil)
	fs.Float64Var(&f.Threshold, "threshold", d.Threshold, "minimum threshold for showing motion")
	fs.Float64Var(&f.Amplification, "amp", d.Amplification, "amplification applied to frame differences")
	fs.IntVar(&f.BlurRadius, "blur", d.BlurRadius, "Gaussian blur kernel size, 0 disables")
	fs.IntVar(&f.StackSize, "stack", d.StackSize, "number of recent frames compared against")
	fs.BoolVar(&f.Adaptive, "adaptive", d.AdaptiveThreshold, "raise the threshold to 1.5 times the mean difference")
	fs.Float64Var(&f.FPS, "fps", d.DesiredFPS, "frame rate requested from the source")
	fs.StringVar(&f.VarsPath, "config", "", "path of a Key = Value vars file, watched for changes")
	fs.StringVar(&f.LogPath, "log", "", "path of a rotated log file, logs go to stderr only if unset")
	fs.StringVar(&f.Verbosity, "v", "Info", "log verbosity (Debug, Info, Warning, Error)")
	fs.StringVar(&f.PlotDir, "plot", "", "directory to write plots of motion statistics to on exit")
}

// Plotter returns a plotter and the option recording to it if -plot was
// given, or nil and no options.
func (f *Flags) Plotter() (*monitor.Plotter, []amplifier.Option) {
	if f.PlotDir == "" {
		return nil, nil
	}
	p := monitor.NewPlotter()
	return p, []amplifier.Option{amplifier.WithObserver(p.Observe)}
}

// SavePlots writes the plots recorded by p to the -plot directory.
func (f *Flags) SavePlots(p *monitor.Plotter, l logging.Logger) {
	if p == nil {
		return
	}
	err := p.Save(f.PlotDir)
	if err != nil {
		l.Error("could not save plots", "error", err.Error())
		return
	}
	l.Info("plots saved", "dir", f.PlotDir)
}

// Vars returns the flag values in config variable form. Only flags that were
// set on the command line are included when fs has been parsed.
func (f *Flags) Vars(fs *flag.FlagSet) map[string]string {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	vars := make(map[string]string)
	add := func(name, key, value string) {
		if set[name] {
			vars[key] = value
		}
	}
	add("threshold", config.KeyThreshold, strconv.FormatFloat(f.Threshold, 'f', -1, 64))
	add("amp", config.KeyAmplification, strconv.FormatFloat(f.Amplification, 'f', -1, 64))
	add("blur", config.KeyBlurRadius, strconv.Itoa(f.BlurRadius))
	add("stack", config.KeyStackSize, strconv.Itoa(f.StackSize))
	add("adaptive", config.KeyAdaptiveThreshold, strconv.FormatBool(f.Adaptive))
	add("fps", config.KeyDesiredFPS, strconv.FormatFloat(f.FPS, 'f', -1, 64))
	add("v", config.KeyLogging, f.Verbosity)
	return vars
}

// Config returns the default config updated with the vars file, if any, and
// then with the flags set on the command line.
func (f *Flags) Config(fs *flag.FlagSet, l logging.Logger) (config.Config, error) {
	c := config.Default(l)
	if f.VarsPath != "" {
		vars, err := config.ReadVars(f.VarsPath)
		if err != nil {
			return c, err
		}
		c.Update(vars)
	}
	c.Update(f.Vars(fs))
	return c, nil
}

// Level returns the logging level named by s, or logging.Info if s is not a
// level name.
func Level(s string) int8 {
	switch s {
	case "Debug":
		return logging.Debug
	case "Warning":
		return logging.Warning
	case "Error":
		return logging.Error
	case "Fatal":
		return logging.Fatal
	}
	return logging.Info
}

// NewLogger returns a logger writing to stderr and, if path is not empty, to
// a rotated log file at path.
func NewLogger(path string, level int8) logging.Logger {
	var w io.Writer = os.Stderr
	if path != "" {
		fileLog := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		}
		w = io.MultiWriter(fileLog, os.Stderr)
	}
	return logging.New(level, w, logSuppress)
}

// Watch applies changes of the vars file at path to a until ctx is done.
func Watch(ctx context.Context, a *amplifier.Amplifier, path string, l logging.Logger) {
	if path == "" {
		return
	}
	go func() {
		err := config.Watch(ctx, path, l, func(vars map[string]string) {
			err := a.Update(vars)
			if err != nil {
				l.Warning("could not apply vars", "error", err.Error())
			}
		})
		if err != nil {
			l.Error("could not watch vars file", "error", err.Error())
		}
	}()
}

// Window is a display that reports key presses.
type Window interface {
	display.Display
	Key() int
}

// pollInterval is how often Run draws frames and polls the window.
const pollInterval = 5 * time.Millisecond

// Run starts a, which must show frames on latest, and draws them on win
// from the calling goroutine until the run ends or Ctrl-C is pressed. A quit
// request from win is passed on through latest. Vars file changes are
// applied meanwhile. The returned error is the one that ended the run, or
// the error from drawing on win.
func Run(a *amplifier.Amplifier, latest *display.Latest, win Window, varsPath string, l logging.Logger) error {
	interrupt.HandleCtrlC()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	Watch(ctx, a, varsPath, l)

	l.Debug("starting amplifier")
	err := a.Start()
	if err != nil {
		return fmt.Errorf("could not start amplifier: %w", err)
	}
	l.Info("amplifier started")

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
loop:
	for {
		select {
		case <-interrupt.Channel:
			l.Info("interrupted")
			a.Stop()
			break loop
		case <-a.Done():
			break loop
		case <-tick.C:
			_, err := latest.ShowOn(win)
			if err != nil {
				l.Error("could not show frame", "error", err.Error())
				a.Stop()
				return fmt.Errorf("could not show frame: %w", err)
			}
			if win.Quit() {
				latest.RequestQuit()
			}
		}
	}
	l.Info("amplifier finished", "status", a.Status())
	return a.Err()
}
