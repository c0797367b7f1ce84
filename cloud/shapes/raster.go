package shapes

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Rasterizer draws a string white-on-transparent into a w×h bitmap.
type Rasterizer interface {
	Rasterize(text string, w, h int) (image.Image, error)
}

// FontRasterizer renders with an OpenType font. The face size starts at
// MaxSize and shrinks until the string fits within FitWidth of the canvas.
type FontRasterizer struct {
	font     *opentype.Font
	MaxSize  float64
	MinSize  float64
	FitWidth float64
}

// NewFontRasterizer parses fontBytes. A nil slice selects the embedded Go Bold face.
func NewFontRasterizer(fontBytes []byte) (*FontRasterizer, error) {
	if fontBytes == nil {
		fontBytes = gobold.TTF
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontRasterizer{
		font:     f,
		MaxSize:  80,
		MinSize:  8,
		FitWidth: 0.95,
	}, nil
}

func (r *FontRasterizer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return face, nil
}

func (r *FontRasterizer) Rasterize(text string, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas %dx%d", w, h)
	}
	maxAdvance := fixed.I(int(float64(w) * r.FitWidth))

	var face font.Face
	var advance fixed.Int26_6
	for size := r.MaxSize; ; size -= 2 {
		if size < r.MinSize {
			size = r.MinSize
		}
		f, err := r.face(size)
		if err != nil {
			return nil, err
		}
		advance = font.MeasureString(f, text)
		if advance <= maxAdvance || size == r.MinSize {
			face = f
			break
		}
		f.Close()
	}
	defer face.Close()

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)

	metrics := face.Metrics()
	textHeight := metrics.Ascent + metrics.Descent
	origin := fixed.Point26_6{
		X: (fixed.I(w) - advance) / 2,
		Y: (fixed.I(h)-textHeight)/2 + metrics.Ascent,
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  origin,
	}
	d.DrawString(text)
	return dst, nil
}
