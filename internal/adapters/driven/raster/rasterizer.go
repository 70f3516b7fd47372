package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"math"

	_ "golang.org/x/image/bmp" // register BMP
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp" // register WebP

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/datauri"
)

// ErrUnsupportedImage is returned for embedded images that cannot be decoded.
var ErrUnsupportedImage = errors.New("unsupported embedded image")

// ErrInvalidScale is returned for non-positive or non-finite scales.
var ErrInvalidScale = errors.New("invalid raster scale")

// Rasterizer implements driven.Rasterizer with the Go fonts.
// Parsed fonts are shared; faces are created per call, so one
// Rasterizer serves concurrent exports.
type Rasterizer struct {
	regular *sfnt.Font
	bold    *sfnt.Font
}

var _ driven.Rasterizer = (*Rasterizer)(nil)

// New parses the embedded fonts.
func New() (*Rasterizer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	return &Rasterizer{regular: regular, bold: bold}, nil
}

// Rasterize renders the layout at scale device pixels per layout pixel.
// The image is Page.W wide and as tall as the content.
func (r *Rasterizer) Rasterize(ctx context.Context, layout domain.LayoutDocument, scale float64) (image.Image, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	height := layout.Height
	if height <= 0 {
		height = layout.Page.H
	}
	w := int(math.Ceil(layout.Page.W * scale))
	h := int(math.Ceil(height * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty page", ErrInvalidScale)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	p := &painter{r: r, dst: dst, scale: scale, faces: make(map[faceKey]font.Face)}
	defer p.close()

	if layout.Watermark != nil {
		if err := p.watermark(ctx, *layout.Watermark); err != nil {
			return nil, err
		}
	}
	for i, el := range layout.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.element(el); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return dst, nil
}

type faceKey struct {
	size float64
	bold bool
}

// painter holds the state of one Rasterize call.
type painter struct {
	r     *Rasterizer
	dst   *image.RGBA
	scale float64
	faces map[faceKey]font.Face
}

func (p *painter) close() {
	for _, f := range p.faces {
		_ = f.Close()
	}
}

func (p *painter) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: size, bold: bold}
	if f, ok := p.faces[key]; ok {
		return f, nil
	}
	src := p.r.regular
	if bold {
		src = p.r.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	p.faces[key] = f
	return f, nil
}

// px converts a layout rect to device pixels.
func (p *painter) px(r domain.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X*p.scale)),
		int(math.Floor(r.Y*p.scale)),
		int(math.Ceil(r.Right()*p.scale)),
		int(math.Ceil(r.Bottom()*p.scale)),
	)
}

func (p *painter) element(el domain.Element) error {
	switch el.Kind {
	case domain.ElementText:
		return p.text(el)
	case domain.ElementImage:
		return p.image(el)
	case domain.ElementRule:
		return p.rule(el)
	default:
		return fmt.Errorf("unknown element kind %q", el.Kind)
	}
}

func (p *painter) text(el domain.Element) error {
	if el.Text == "" || el.FontSize <= 0 {
		return nil
	}
	c, err := parseColor(el.Color)
	if err != nil {
		c = color.NRGBA{A: 255}
	}
	face, err := p.face(el.FontSize*p.scale, el.Bold)
	if err != nil {
		return err
	}

	box := p.px(el.Rect)
	advance := font.MeasureString(face, el.Text)
	x := fixed.I(box.Min.X)
	if el.Align == domain.AlignRight {
		x = fixed.I(box.Max.X) - advance
	}
	// Centre the em box vertically in the line box.
	m := face.Metrics()
	lineH := fixed.I(box.Dy())
	baseline := fixed.I(box.Min.Y) + (lineH-(m.Ascent+m.Descent))/2 + m.Ascent

	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: baseline},
	}
	d.DrawString(el.Text)
	return nil
}

func (p *painter) image(el domain.Element) error {
	if el.Src == "" || el.Rect.Empty() {
		return nil
	}
	src, err := decodeImage(el.Src)
	if err != nil {
		return err
	}
	xdraw.CatmullRom.Scale(p.dst, p.px(el.Rect), src, src.Bounds(), xdraw.Over, nil)
	return nil
}

func (p *painter) rule(el domain.Element) error {
	c, err := parseColor(el.Color)
	if err != nil {
		return err
	}
	box := p.px(el.Rect)
	if box.Dy() < 1 {
		box.Max.Y = box.Min.Y + 1
	}
	draw.Draw(p.dst, box, image.NewUniform(c), image.Point{}, draw.Over)
	return nil
}

// watermark draws the text once into a source strip as wide as the tile
// diagonal, then maps it rotated onto every tile.
func (p *painter) watermark(ctx context.Context, wm domain.WatermarkLayer) error {
	if wm.Text == "" || wm.Tile.W <= 0 || wm.Tile.H <= 0 {
		return nil
	}
	fill, err := parseColor(wm.Fill)
	if err != nil {
		return err
	}
	face, err := p.face(wm.FontSize*p.scale, false)
	if err != nil {
		return err
	}

	tileW := wm.Tile.W * p.scale
	tileH := wm.Tile.H * p.scale
	stripW := int(math.Ceil(math.Hypot(tileW, tileH)))
	stripH := int(math.Ceil(tileH))
	strip := image.NewRGBA(image.Rect(0, 0, stripW, stripH))

	advance := font.MeasureString(face, wm.Text)
	m := face.Metrics()
	d := font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(withOpacity(fill, wm.Opacity)),
		Face: face,
		Dot: fixed.Point26_6{
			X: (fixed.I(stripW) - advance) / 2,
			Y: (fixed.I(stripH)-(m.Ascent+m.Descent))/2 + m.Ascent,
		},
	}
	d.DrawString(wm.Text)

	theta := wm.Angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	sx, sy := float64(stripW)/2, float64(stripH)/2

	for _, t := range wm.Tiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		box := p.px(t).Intersect(p.dst.Bounds())
		if box.Empty() {
			continue
		}
		cx := (t.X + t.W/2) * p.scale
		cy := (t.Y + t.H/2) * p.scale
		s2d := f64.Aff3{
			cos, -sin, cx - (cos*sx - sin*sy),
			sin, cos, cy - (sin*sx + cos*sy),
		}
		tile := p.dst.SubImage(box).(*image.RGBA)
		xdraw.BiLinear.Transform(tile, s2d, strip, strip.Bounds(), xdraw.Over, nil)
	}
	return nil
}

// decodeImage decodes a data URI image in any registered format.
func decodeImage(uri string) (image.Image, error) {
	data, mimeType, err := datauri.Decode(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, mimeType, err)
	}
	return img, nil
}
