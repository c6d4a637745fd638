// Package overlay is the immediate-mode debug overlay. Each frame the game
// declares the lines it wants shown, and Rasterize turns them into an
// image the renderer blits over the scene.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Panel colours: light text on a dark grey, translucent background.
var (
	Background = color.RGBA{R: 0x2e, G: 0x2e, B: 0x2e, A: 0xc0}
	Foreground = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

const padding = 6

// Overlay collects the lines declared during a frame. Lines usually point
// into the frame arena and are only valid until the frame ends.
type Overlay struct {
	lines   []string
	Enabled bool
}

// New creates an enabled overlay.
func New() *Overlay {
	return &Overlay{lines: make([]string, 0, 8), Enabled: true}
}

// Begin starts a new declaration.
func (o *Overlay) Begin() {
	clear(o.lines)
	o.lines = o.lines[:0]
}

// Text adds a line.
func (o *Overlay) Text(s string) {
	if o.Enabled {
		o.lines = append(o.lines, s)
	}
}

// Lines returns the lines declared since Begin.
func (o *Overlay) Lines() []string {
	return o.lines
}

// Size returns the pixel size of the panel needed for lines.
func Size(lines []string) (int, int) {
	face := basicfont.Face7x13
	w := 0
	for _, l := range lines {
		w = max(w, font.MeasureString(face, l).Ceil())
	}
	return w + 2*padding, len(lines)*face.Height + 2*padding
}

// Rasterize draws lines onto a translucent panel. dst is reused when it is
// large enough, otherwise a bigger image is allocated; the returned image's
// bounds match the panel. Returns nil for no lines.
func Rasterize(lines []string, dst *image.RGBA) *image.RGBA {
	if len(lines) == 0 {
		return nil
	}
	w, h := Size(lines)
	if dst == nil || cap(dst.Pix) < w*h*4 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst.Pix = dst.Pix[:w*h*4]
		dst.Stride = w * 4
		dst.Rect = image.Rect(0, 0, w, h)
	}
	draw.Draw(dst, dst.Rect, image.NewUniform(Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(Foreground),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(padding, padding+face.Ascent+i*face.Height)
		d.DrawString(l)
	}
	return dst
}
