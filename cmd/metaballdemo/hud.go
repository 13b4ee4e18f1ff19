package main

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawHUD writes one line of text per entry in the top-left corner.
func drawHUD(dst *image.NRGBA, lines []string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 220}),
		Face: face,
	}
	lineHeight := face.Metrics().Height
	y := fixed.I(6) + face.Metrics().Ascent
	for _, line := range lines {
		d.Dot = fixed.Point26_6{X: fixed.I(8), Y: y}
		d.DrawString(line)
		y += lineHeight
	}
}
