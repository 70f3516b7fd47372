package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/custodia-labs/docket/internal/core/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// htmlView adapts a layout for the templates. Image sources are only
// marked safe when they are data URIs.
type htmlView struct {
	domain.LayoutDocument
	Title        string
	Print        bool
	PageWidth    float64
	LogoSrc      template.URL
	SignatureSrc template.URL
	WatermarkCSS template.CSS
}

func newHTMLView(layout domain.LayoutDocument, printable bool) htmlView {
	v := htmlView{
		LayoutDocument: layout,
		Title:          "Invoice " + layout.Header.InvoiceNumber,
		Print:          printable,
		PageWidth:      layout.Page.W,
		LogoSrc:        imageSrc(layout.Header.Logo),
	}
	if layout.Signature != nil {
		v.SignatureSrc = imageSrc(layout.Signature.Image)
	}
	if layout.Watermark != nil {
		v.WatermarkCSS = template.CSS(fmt.Sprintf(
			`background-image: url("%s"); background-size: %spx %spx; background-repeat: repeat;`,
			TileDataURI(*layout.Watermark), num(layout.Watermark.Tile.W), num(layout.Watermark.Tile.H),
		))
	}
	return v
}

func imageSrc(uri string) template.URL {
	if !strings.HasPrefix(uri, "data:"+domain.MimePrefixImage) {
		return ""
	}
	return template.URL(uri) //nolint:gosec // G203: only image data URIs reach here
}

// PreviewHTML returns the on-screen markup of a layout. The watermark is
// shown faded inside the invoice box.
func PreviewHTML(layout domain.LayoutDocument) ([]byte, error) {
	return execute("preview", newHTMLView(layout, false))
}

// PrintHTML returns a standalone printable document. The watermark is a
// fixed full-page background that only appears when printed.
func PrintHTML(layout domain.LayoutDocument) ([]byte, error) {
	return execute("print", newHTMLView(layout, true))
}

func execute(name string, v htmlView) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		return nil, fmt.Errorf("render %s html: %w", name, err)
	}
	return buf.Bytes(), nil
}
