/*
DESCRIPTION
  gray.go converts colour frames to single channel intensity frames.

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

// Fixed point luma weights (BT.601) scaled by 1<<14.
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
	lumaRound = 1 << (lumaShift - 1)
)

func luma(r, g, b uint32) uint8 {
	return uint8((lumaR*r + lumaG*g + lumaB*b + lumaRound) >> lumaShift)
}

// Gray converts img to an intensity frame. If dst is non-nil and has the same
// bounds as img it is reused, otherwise a new frame is allocated. The
// returned frame always has its origin at (0,0).
func Gray(img image.Image, dst *image.Gray) (*image.Gray, error) {
	if img == nil {
		return nil, ErrInvalidFrame
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidFrame
	}
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h || dst.Rect.Min != (image.Point{}) {
		dst = image.NewGray(image.Rect(0, 0, w, h))
	}

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[si:si+w])
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x := range row {
				p := src.Pix[si+4*x : si+4*x+3 : si+4*x+3]
				row[x] = luma(uint32(p[0]), uint32(p[1]), uint32(p[2]))
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x := range row {
				p := src.Pix[si+4*x : si+4*x+3 : si+4*x+3]
				row[x] = luma(uint32(p[0]), uint32(p[1]), uint32(p[2]))
			}
		}
	default:
		for y := 0; y < h; y++ {
			row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x := range row {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				row[x] = luma(r>>8, g>>8, bl>>8)
			}
		}
	}
	return dst, nil
}

// Preprocess converts img to intensity and, if blurRadius is positive,
// smooths it with a Gaussian kernel of size KernelSize(blurRadius). The
// scratch frames are reused when their shape allows. It returns the
// preprocessed frame, which is one of the scratch frames when they were
// usable.
func Preprocess(img image.Image, blurRadius int, scratch *[2]*image.Gray) (*image.Gray, error) {
	if blurRadius < 0 {
		return nil, ErrInvalidConfig
	}
	var s [2]*image.Gray
	if scratch != nil {
		s = *scratch
	}

	gray, err := Gray(img, s[0])
	if err != nil {
		return nil, err
	}
	s[0] = gray

	out := gray
	if k := KernelSize(blurRadius); k > 1 {
		s[1] = Blur(gray, s[1], k)
		out = s[1]
	}

	if scratch != nil {
		*scratch = s
	}
	return out, nil
}
