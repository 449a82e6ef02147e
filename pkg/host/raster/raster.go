// Package raster draws a dump of a host tree into an image, one text line
// per node, using a fixed-size bitmap face.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/fiber/pkg/host"
)

// Options controls the rendered image.
type Options struct {
	// Padding around the text, in pixels.
	Padding int
	// Background and Foreground default to white and black.
	Background color.Color
	Foreground color.Color
}

func (o Options) withDefaults() Options {
	if o.Padding <= 0 {
		o.Padding = 8
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	return o
}

// Render draws lines top to bottom. The image is sized to fit the longest
// line.
func Render(lines []string, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	bounds := image.Rect(0, 0, width+2*opts.Padding, len(lines)*lineHeight+2*opts.Padding)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Foreground),
		Face: face,
	}
	for i, line := range lines {
		baseline := opts.Padding + i*lineHeight + metrics.Ascent.Ceil()
		d.Dot = fixed.P(opts.Padding, baseline)
		d.DrawString(line)
	}
	return img
}

// WritePNG renders the subtree under n and encodes it as PNG.
func WritePNG(w io.Writer, n *host.Node, opts Options) error {
	return png.Encode(w, Render(host.Lines(n), opts))
}
