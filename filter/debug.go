//go:build debug && withcv
// +build debug,withcv

/*
DESCRIPTION
  Displays debug information for the motion filter.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// debugWindows is used for displaying debug information for the motion filter.
type debugWindows struct {
	windows []*gocv.Window
}

// close frees resources used by gocv.
func (d *debugWindows) close() error {
	for _, window := range d.windows {
		err := window.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// newWindows creates debugging windows for the motion filter.
func newWindows(name string) debugWindows {
	return debugWindows{
		windows: []*gocv.Window{
			gocv.NewWindow(name + ": Preprocessed"),
			gocv.NewWindow(name + ": Amplified"),
		},
	}
}

// show displays the preprocessed frame annotated with the frame statistics
// alongside the amplified output.
func (d *debugWindows) show(gray *image.Gray, out *image.RGBA, st Stats) {
	var drkRed = color.RGBA{191, 0, 0, 0}

	g, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return
	}
	defer g.Close()
	im := gocv.NewMat()
	defer im.Close()
	gocv.CvtColor(g, &im, gocv.ColorGrayToBGR)

	imD, err := gocv.ImageToMatRGB(out)
	if err != nil {
		return
	}
	defer imD.Close()

	// Draw debugging text.
	text := []string{
		fmt.Sprintf("Threshold: %.1f", st.Threshold),
		fmt.Sprintf("Mean diff: %.2f", st.MeanDiff),
		fmt.Sprintf("Motion pixels: %d", st.MotionPixels),
		fmt.Sprintf("History: %d", st.HistoryLength),
	}
	for i, str := range text {
		gocv.PutText(&im, str, image.Pt(32, 32*(i+1)), gocv.FontHersheyPlain, 2.0, drkRed, 2)
	}

	// Display windows.
	d.windows[0].IMShow(im)
	d.windows[1].IMShow(imD)
	d.windows[0].WaitKey(1)
}
