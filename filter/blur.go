/*
DESCRIPTION
  blur.go provides a separable Gaussian blur for intensity frames.

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
	"math"
)

// Small kernels used when sigma is derived from the kernel size. These match
// the kernels OpenCV substitutes for sizes up to 7.
var smallKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// KernelSize returns the odd Gaussian kernel size used for a blur radius.
// Zero (or less) disables blurring and returns 0. Even radii are rounded up
// to the next odd value.
func KernelSize(blurRadius int) int {
	if blurRadius <= 0 {
		return 0
	}
	if blurRadius%2 == 0 {
		return blurRadius + 1
	}
	return blurRadius
}

// gaussianKernel returns a normalised 1D kernel of odd size k with sigma
// derived from k.
func gaussianKernel(k int) []float64 {
	if kern, ok := smallKernels[k]; ok {
		return kern
	}
	sigma := 0.3*((float64(k)-1)*0.5-1) + 0.8
	kern := make([]float64, k)
	c := float64(k-1) / 2
	var sum float64
	for i := range kern {
		d := float64(i) - c
		kern[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kern[i]
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern
}

// reflect101 maps i into [0,n) mirroring about the edge pixels without
// repeating them, i.e. dcb|abcd|cba.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// Blur applies a Gaussian blur of odd kernel size ksize to src, writing into
// dst if it has the same shape, otherwise into a new frame which is returned.
// A ksize of 1 or less copies src.
func Blur(src, dst *image.Gray, ksize int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h || dst.Rect.Min != (image.Point{}) {
		dst = image.NewGray(image.Rect(0, 0, w, h))
	}
	base := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y)
	if ksize <= 1 {
		for y := 0; y < h; y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[base+y*src.Stride:base+y*src.Stride+w])
		}
		return dst
	}
	if ksize%2 == 0 {
		ksize++
	}

	kern := gaussianKernel(ksize)
	r := ksize / 2

	// Horizontal pass.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[base+y*src.Stride : base+y*src.Stride+w]
		for x := 0; x < w; x++ {
			var acc float64
			for i, k := range kern {
				acc += k * float64(row[reflect101(x+i-r, w)])
			}
			tmp[y*w+x] = acc
		}
	}

	// Vertical pass.
	for y := 0; y < h; y++ {
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			var acc float64
			for i, k := range kern {
				acc += k * tmp[reflect101(y+i-r, h)*w+x]
			}
			out[x] = saturate(acc)
		}
	}
	return dst
}

// saturate rounds v to the nearest integer (ties to even) and clamps it to
// the 8 bit range.
func saturate(v float64) uint8 {
	v = math.RoundToEven(v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
