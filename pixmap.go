package metaball

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is a straight-alpha RGBA frame buffer the scene renders into.
// Row 0 is the top of the image.
type Pixmap struct {
	img *image.NRGBA
}

// NewPixmap creates a pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.img.Rect.Dx() }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.img.Rect.Dy() }

// Data returns the raw pixel data.
func (p *Pixmap) Data() []uint8 { return p.img.Pix }

// Target exposes the pixel buffer to an evaluator.
func (p *Pixmap) Target() RenderTarget {
	return RenderTarget{
		Data:   p.img.Pix,
		Width:  p.Width(),
		Height: p.Height(),
		Stride: p.img.Stride,
	}
}

// Image returns the backing image. Writes to it are visible in the pixmap.
func (p *Pixmap) Image() *image.NRGBA { return p.img }

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	p.img.SetNRGBA(x, y, c.NRGBA())
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !(image.Point{X: x, Y: y}.In(p.img.Rect)) {
		return RGBA{}
	}
	c := p.img.NRGBAAt(x, y)
	return RGBA{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	n := c.NRGBA()
	pix := p.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = n.R
		pix[i+1] = n.G
		pix[i+2] = n.B
		pix[i+3] = n.A
	}
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color { return p.img.At(x, y) }

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle { return p.img.Rect }

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model { return color.NRGBAModel }
