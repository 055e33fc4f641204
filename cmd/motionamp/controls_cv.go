//go:build withcv
// +build withcv

/*
DESCRIPTION
  controls_cv.go provides the trackbar control window.

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
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/filter"
	"github.com/ausocean/utils/logging"
)

// Trackbar ranges.
const (
	thresholdMin, thresholdMax = 1, 100
	ampMin, ampMax             = 1, 30
	blurMin, blurMax           = 0, 15
	stackMin, stackMax         = filter.MinStackSize, 30
)

const (
	controlsTitle = "Controls"
	pollDelay     = 10 // ms
	statusWidth   = 480
	statusHeight  = 40
)

// trackbarControls is a gocv window with a trackbar per tunable and a
// status line.
type trackbarControls struct {
	log       logging.Logger
	win       *gocv.Window
	threshold *gocv.Trackbar
	amp       *gocv.Trackbar
	blur      *gocv.Trackbar
	stack     *gocv.Trackbar
	adaptive  *gocv.Trackbar
	status    gocv.Mat
}

func newControls(c config.Config, l logging.Logger) controls {
	win := gocv.NewWindow(controlsTitle)
	tc := &trackbarControls{
		log:       l,
		win:       win,
		threshold: newTrackbar(win, "Threshold", thresholdMin, thresholdMax, int(c.Threshold)),
		amp:       newTrackbar(win, "Amplification", ampMin, ampMax, int(c.Amplification)),
		blur:      newTrackbar(win, "Gaussian Blur", blurMin, blurMax, c.BlurRadius),
		stack:     newTrackbar(win, "Stack Size", stackMin, stackMax, c.StackSize),
		adaptive:  newTrackbar(win, "Adaptive", 0, 1, boolPos(c.AdaptiveThreshold)),
		status:    gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), statusHeight, statusWidth, gocv.MatTypeCV8UC3),
	}
	tc.setStatus("press s to start", false)
	return tc
}

func newTrackbar(w *gocv.Window, name string, min, max, pos int) *gocv.Trackbar {
	tb := w.CreateTrackbar(name, max)
	tb.SetMin(min)
	tb.SetPos(clamp(pos, min, max))
	return tb
}

func (tc *trackbarControls) poll() int {
	tc.win.IMShow(tc.status)
	return tc.win.WaitKey(pollDelay)
}

func (tc *trackbarControls) values() (filter.Params, int) {
	return filter.Params{
		Threshold:         float64(tc.threshold.GetPos()),
		Amplification:     float64(tc.amp.GetPos()),
		BlurRadius:        tc.blur.GetPos(),
		AdaptiveThreshold: tc.adaptive.GetPos() == 1,
	}, tc.stack.GetPos()
}

func (tc *trackbarControls) setStatus(status string, running bool) {
	tc.status.SetTo(gocv.NewScalar(0, 0, 0, 0))
	gocv.PutText(&tc.status, status, image.Pt(10, 28), gocv.FontHersheySimplex, 0.7, color.RGBA{255, 255, 255, 0}, 1)
}

func (tc *trackbarControls) close() {
	tc.status.Close()
	tc.win.Close()
}
