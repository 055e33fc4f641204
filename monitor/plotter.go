/*
DESCRIPTION
  plotter.go provides Plotter, which records per frame motion statistics
  during a run and plots them afterwards.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package monitor provides recording and plotting of amplifier statistics.
package monitor

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/motionamp/filter"
)

// Output file names within the plot directory.
const (
	MotionFile = "motion.png"
	PixelsFile = "pixels.png"
	RateFile   = "fps.png"
)

// Plot size.
const (
	plotWidth  = 14 * vg.Inch
	plotHeight = 6 * vg.Inch
)

var errNoSamples = errors.New("no samples recorded")

// Line colours.
var (
	meanColour      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	thresholdColour = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	pixelsColour    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	rateColour      = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Sample holds the statistics of one frame.
type Sample struct {
	Frame uint64
	FPS   float64
	filter.Stats
}

// Plotter records a Sample per observed frame. Frame numbers restart with
// each run of an amplifier; later runs are recorded after earlier ones. It is
// safe for concurrent use.
type Plotter struct {
	mu      sync.Mutex
	samples []Sample

	// last is the previous observed frame number and offset the sum of the
	// lengths of completed runs.
	last   uint64
	offset uint64
}

// NewPlotter returns a new Plotter.
func NewPlotter() *Plotter { return &Plotter{} }

// Observe records the statistics of a frame. Its signature matches
// amplifier.Observer.
func (p *Plotter) Observe(frame uint64, st filter.Stats, fps float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if frame <= p.last {
		p.offset += p.last
	}
	p.last = frame
	p.samples = append(p.samples, Sample{Frame: p.offset + frame, FPS: fps, Stats: st})
}

// Samples returns a copy of the recorded samples.
func (p *Plotter) Samples() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Sample(nil), p.samples...)
}

// Reset discards the recorded samples.
func (p *Plotter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = nil
	p.last, p.offset = 0, 0
}

// Save writes MotionFile, plotting mean difference and effective threshold,
// PixelsFile, plotting the motion pixel count, and RateFile, plotting the
// frame rate, into dir.
func (p *Plotter) Save(dir string) error {
	samples := p.Samples()
	if len(samples) == 0 {
		return errNoSamples
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	meanPts := make(plotter.XYs, len(samples))
	threshPts := make(plotter.XYs, len(samples))
	pixelPts := make(plotter.XYs, len(samples))
	ratePts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		x := float64(s.Frame)
		meanPts[i] = plotter.XY{X: x, Y: s.MeanDiff}
		threshPts[i] = plotter.XY{X: x, Y: s.Threshold}
		pixelPts[i] = plotter.XY{X: x, Y: float64(s.MotionPixels)}
		ratePts[i] = plotter.XY{X: x, Y: s.FPS}
	}

	pMotion := plot.New()
	pMotion.Title.Text = "Motion"
	pMotion.X.Label.Text = "Frame"
	pMotion.Y.Label.Text = "Intensity"
	err := addLine(pMotion, "mean difference", meanPts, meanColour)
	if err != nil {
		return err
	}
	err = addLine(pMotion, "threshold", threshPts, thresholdColour)
	if err != nil {
		return err
	}

	pPixels := plot.New()
	pPixels.Title.Text = "Motion Pixels"
	pPixels.X.Label.Text = "Frame"
	pPixels.Y.Label.Text = "Pixels"
	err = addLine(pPixels, "motion pixels", pixelPts, pixelsColour)
	if err != nil {
		return err
	}

	pRate := plot.New()
	pRate.Title.Text = "Frame Rate"
	pRate.X.Label.Text = "Frame"
	pRate.Y.Label.Text = "FPS"
	err = addLine(pRate, "fps", ratePts, rateColour)
	if err != nil {
		return err
	}

	for _, pl := range []*plot.Plot{pMotion, pPixels, pRate} {
		pl.Legend.Top = true
		pl.Legend.Left = false
		pl.Legend.XOffs = -10
		pl.Legend.YOffs = -10
	}

	files := []struct {
		p    *plot.Plot
		name string
	}{
		{pMotion, MotionFile},
		{pPixels, PixelsFile},
		{pRate, RateFile},
	}
	for _, f := range files {
		err := f.p.Save(plotWidth, plotHeight, filepath.Join(dir, f.name))
		if err != nil {
			return fmt.Errorf("save %s: %w", f.name, err)
		}
	}
	return nil
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, c color.Color) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("could not create %s line: %w", name, err)
	}
	l.Color = c
	l.Width = vg.Points(1)
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}
