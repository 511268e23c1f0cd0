package tray

import (
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
)

const (
	// GlyphSize is the edge of the square tray glyph in pixels.
	GlyphSize = 64

	glyphMargin = 4
)

var (
	glyphBackground = color.Black
	glyphForeground = color.White
)

// RenderGlyph draws label in white on a black square, scaled up as far as
// it fits.
func RenderGlyph(label string) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, GlyphSize, GlyphSize))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(glyphBackground), image.Point{}, draw.Src)

	if label == "" {
		return dst
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()

	d := &font.Drawer{
		Src:  image.NewUniform(glyphForeground),
		Face: face,
	}
	width := d.MeasureString(label).Ceil()
	height := metrics.Height.Ceil()

	text := image.NewRGBA(image.Rect(0, 0, width, height))
	d.Dst = text
	d.Dot = fixed.P(0, metrics.Ascent.Ceil())
	d.DrawString(label)

	avail := GlyphSize - 2*glyphMargin
	scale := min(avail/width, avail/height)
	if scale < 1 {
		scale = 1
	}

	w, h := width*scale, height*scale
	x0, y0 := (GlyphSize-w)/2, (GlyphSize-h)/2
	target := image.Rect(x0, y0, x0+w, y0+h).Intersect(dst.Bounds())

	draw.NearestNeighbor.Scale(dst, target, text, text.Bounds(), draw.Over, nil)

	return dst
}

// BGRA returns the pixels of img as top-down rows of straight-alpha BGRA,
// the layout of a 32-bit Windows DIB.
func BGRA(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*4)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, c.B, c.G, c.R, c.A)
		}
	}

	return out
}
