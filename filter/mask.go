/*
DESCRIPTION
  mask.go amplifies an accumulated difference grid, binarizes it at a fixed
  or adaptive threshold, and renders the motion-only result.

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
	"image"
)

// adaptiveGain scales the mean difference when deriving an adaptive threshold.
const adaptiveGain = 1.5

// EffectiveThreshold returns the binarization cutoff for d. When adaptive is
// set this is the larger of threshold and 1.5 times the mean of d.
func EffectiveThreshold(d *Diff, threshold float64, adaptive bool) float64 {
	if !adaptive {
		return threshold
	}
	return max(threshold, adaptiveGain*d.Mean())
}

// Mask amplifies d by amplification, saturating to 8 bits, and keeps only
// the amplified values at or above the effective threshold. The result is
// written to dst (or a new image if dst does not match) with the same value
// in the red, green and blue channels and an opaque alpha. It returns the
// image and the effective threshold used.
func Mask(d *Diff, amplification, threshold float64, adaptive bool, dst *image.RGBA) (*image.RGBA, float64) {
	out, t, _ := mask(d, amplification, threshold, adaptive, dst)
	return out, t
}

// mask is Mask that also returns the number of non-zero output pixels.
func mask(d *Diff, amplification, threshold float64, adaptive bool, dst *image.RGBA) (*image.RGBA, float64, int) {
	w, h := d.Rect.Dx(), d.Rect.Dy()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h || dst.Rect.Min != (image.Point{}) {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	t := EffectiveThreshold(d, threshold, adaptive)

	var set int
	for y := 0; y < h; y++ {
		src := d.Pix[y*w : (y+1)*w]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+4*w]
		for x, v := range src {
			a := saturate(v * amplification)
			if float64(a) < t {
				a = 0
			} else if a > 0 {
				set++
			}
			p := row[4*x : 4*x+4 : 4*x+4]
			p[0], p[1], p[2], p[3] = a, a, a, 0xff
		}
	}
	return dst, t, set
}
