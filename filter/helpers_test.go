/*
DESCRIPTION
  helpers_test.go provides frame construction helpers for the filter tests.

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
	"image/color"
)

// uniform returns a w by h frame with every pixel set to v.
func uniform(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// withPixel returns a copy of f with (x, y) set to v.
func withPixel(f *image.Gray, x, y int, v uint8) *image.Gray {
	g := copyGray(f, nil)
	g.SetGray(x, y, color.Gray{v})
	return g
}

// grayPlane returns the red channel of img as rows, which for masked output
// equals every colour channel.
func grayPlane(img *image.RGBA) [][]uint8 {
	b := img.Bounds()
	rows := make([][]uint8, b.Dy())
	for y := range rows {
		rows[y] = make([]uint8, b.Dx())
		for x := range rows[y] {
			rows[y][x] = img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return rows
}

// rows returns the pixels of g as rows.
func rows(g *image.Gray) [][]uint8 {
	b := g.Bounds()
	out := make([][]uint8, b.Dy())
	for y := range out {
		out[y] = make([]uint8, b.Dx())
		for x := range out[y] {
			out[y][x] = g.GrayAt(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return out
}
