package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/datauri"
)

// Watermark tile parameters.
const (
	WatermarkTileSize = 400.0
	WatermarkAngle    = -45.0
	WatermarkOpacity  = 0.2
	WatermarkFontSize = 30.0
	WatermarkFill     = "gray"

	minWatermarkFontSize = 4.0

	// Share of the tile diagonal the text may occupy.
	watermarkSpan = 0.9
)

// NewWatermark builds a watermark layer for text whose tiles cover box.
// The font is shrunk from WatermarkFontSize when the text would not fit
// along the tile diagonal.
func NewWatermark(text string, box domain.Rect) domain.WatermarkLayer {
	tile := domain.Size{W: WatermarkTileSize, H: WatermarkTileSize}
	return domain.WatermarkLayer{
		Text:     text,
		Tile:     tile,
		Angle:    WatermarkAngle,
		Opacity:  WatermarkOpacity,
		FontSize: watermarkFontSize(text, tile),
		Fill:     WatermarkFill,
		Tiles:    tileGrid(tile, box),
	}
}

func watermarkFontSize(text string, tile domain.Size) float64 {
	diagonal := math.Hypot(tile.W, tile.H) * watermarkSpan
	width := measure(text, WatermarkFontSize, false)
	if width <= diagonal {
		return WatermarkFontSize
	}
	size := WatermarkFontSize * diagonal / width
	return math.Max(size, minWatermarkFontSize)
}

// tileGrid places tiles row by row from the origin until box is covered.
func tileGrid(tile domain.Size, box domain.Rect) []domain.Rect {
	cols := int(math.Ceil(box.Right() / tile.W))
	rows := int(math.Ceil(box.Bottom() / tile.H))
	tiles := make([]domain.Rect, 0, max(cols*rows, 0))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tiles = append(tiles, domain.Rect{
				X: float64(c) * tile.W,
				Y: float64(r) * tile.H,
				W: tile.W,
				H: tile.H,
			})
		}
	}
	return tiles
}

// TileSVG returns the self-contained SVG of one watermark tile.
func TileSVG(w domain.WatermarkLayer) string {
	var text bytes.Buffer
	_ = xml.EscapeText(&text, []byte(w.Text))

	cx, cy := w.Tile.W/2, w.Tile.H/2
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+
			`<text x="50%%" y="50%%" font-family="sans-serif" font-size="%s" fill="%s" opacity="%s" `+
			`text-anchor="middle" dominant-baseline="middle" transform="rotate(%s, %s, %s)">%s</text></svg>`,
		num(w.Tile.W), num(w.Tile.H), num(w.FontSize), w.Fill, num(w.Opacity),
		num(w.Angle), num(cx), num(cy), text.String(),
	)
}

// TileDataURI returns the tile SVG as a base64 data URI.
func TileDataURI(w domain.WatermarkLayer) string {
	return datauri.Encode("image/svg+xml", []byte(TileSVG(w)))
}

func num(f float64) string {
	return fmt.Sprintf("%g", math.Round(f*100)/100)
}
