// Package overlay rasterizes short lines of text, such as frame rate
// statistics, into images that can be drawn on top of a rendered scene.
package overlay

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Config configures a [Text]. Zero fields are replaced by defaults.
type Config struct {
	// TTF is the true type font file used. Defaults to Go Mono.
	TTF []byte
	// Size is the font size in points.
	Size float64
	DPI  float64
	// Padding in pixels around the text.
	Padding    int
	Foreground color.Color
	Background color.Color
}

// Text renders single lines of text into RGBA images.
type Text struct {
	ctx     *freetype.Context
	face    font.Face
	padding int
	fg, bg  *image.Uniform

	last string
	img  *image.RGBA
}

// New parses the configured font and returns a Text ready to render.
func New(cfg Config) (*Text, error) {
	if cfg.TTF == nil {
		cfg.TTF = gomono.TTF
	}
	if cfg.Size == 0 {
		cfg.Size = 14
	}
	if cfg.DPI == 0 {
		cfg.DPI = 72
	}
	if cfg.Size < 0 || cfg.DPI < 0 || cfg.Padding < 0 {
		return nil, errors.New("negative overlay font size, dpi or padding")
	}
	if cfg.Foreground == nil {
		cfg.Foreground = color.White
	}
	if cfg.Background == nil {
		cfg.Background = color.RGBA{A: 160}
	}
	f, err := truetype.Parse(cfg.TTF)
	if err != nil {
		return nil, err
	}
	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetFontSize(cfg.Size)
	ctx.SetDPI(cfg.DPI)
	ctx.SetHinting(font.HintingFull)
	return &Text{
		ctx: ctx,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    cfg.Size,
			DPI:     cfg.DPI,
			Hinting: font.HintingFull,
		}),
		padding: cfg.Padding,
		fg:      image.NewUniform(cfg.Foreground),
		bg:      image.NewUniform(cfg.Background),
	}, nil
}

// Render returns an image containing s. The image is reused while s does
// not change and must not be modified by the caller.
func (t *Text) Render(s string) (*image.RGBA, error) {
	if t.img != nil && s == t.last {
		return t.img, nil
	}
	w, h := t.Measure(s)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), t.bg, image.Point{}, draw.Src)
	t.ctx.SetClip(img.Bounds())
	t.ctx.SetDst(img)
	t.ctx.SetSrc(t.fg)
	ascent := t.face.Metrics().Ascent
	pt := freetype.Pt(t.padding, t.padding)
	pt.Y += ascent
	if _, err := t.ctx.DrawString(s, pt); err != nil {
		return nil, err
	}
	t.last = s
	t.img = img
	return img, nil
}

// Measure returns the size in pixels of the image Render produces for s.
func (t *Text) Measure(s string) (width, height int) {
	m := t.face.Metrics()
	width = font.MeasureString(t.face, s).Ceil() + 2*t.padding
	height = (m.Ascent + m.Descent).Ceil() + 2*t.padding
	return max(width, 1), max(height, 1)
}
