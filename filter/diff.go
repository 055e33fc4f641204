/*
DESCRIPTION
  diff.go accumulates the mean absolute difference for each pixel between the
  newest frame and every frame held in the history.

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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Diff is a floating point grid of per pixel differences with its origin
// at (0,0).
type Diff struct {
	Rect image.Rectangle
	Pix  []float64 // Row major, len(Pix) == Rect.Dx()*Rect.Dy().
}

// NewDiff returns a zeroed Diff of the given size.
func NewDiff(w, h int) *Diff {
	return &Diff{Rect: image.Rect(0, 0, w, h), Pix: make([]float64, w*h)}
}

// At returns the value at (x, y).
func (d *Diff) At(x, y int) float64 { return d.Pix[y*d.Rect.Dx()+x] }

// Mean returns the mean value over the grid.
func (d *Diff) Mean() float64 {
	if len(d.Pix) == 0 {
		return 0
	}
	return stat.Mean(d.Pix, nil)
}

// Accumulate computes, for every pixel, the mean over the frames in h of the
// absolute difference between cur and that frame. The divisor is the number
// of frames currently held, not the capacity. If cur has already been pushed
// to h it contributes a zero term.
//
// dst is reused if it has the right size, otherwise a new Diff is returned.
func Accumulate(cur *image.Gray, h *History, dst *Diff) (*Diff, error) {
	n := h.Len()
	if n == 0 {
		return nil, ErrEmptyHistory
	}
	w, hgt := cur.Rect.Dx(), cur.Rect.Dy()
	if w <= 0 || hgt <= 0 {
		return nil, ErrInvalidFrame
	}
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != hgt {
		dst = NewDiff(w, hgt)
	} else {
		clear(dst.Pix)
	}

	base := cur.PixOffset(cur.Rect.Min.X, cur.Rect.Min.Y)
	for past := range h.All() {
		if past.Rect.Dx() != w || past.Rect.Dy() != hgt {
			return nil, fmt.Errorf("%w: frame size %v does not match history frame size %v", ErrInvalidFrame, cur.Rect.Size(), past.Rect.Size())
		}
		for y := 0; y < hgt; y++ {
			c := cur.Pix[base+y*cur.Stride : base+y*cur.Stride+w]
			p := past.Pix[y*past.Stride : y*past.Stride+w]
			acc := dst.Pix[y*w : (y+1)*w]
			for x := range acc {
				d := int(c[x]) - int(p[x])
				if d < 0 {
					d = -d
				}
				acc[x] += float64(d)
			}
		}
	}
	floats.Scale(1/float64(n), dst.Pix)
	return dst, nil
}
