package deck

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	imagepkg "github.com/youruser/deckprint/internal/image"
	"github.com/youruser/deckprint/internal/units"
	"github.com/youruser/deckprint/internal/util"
)

// Exporter writes documents whose pages are exactly PageSize millimeters,
// each image covering its whole page.
type Exporter struct {
	OutputDir string
	PageSize  units.Vec
}

func (e Exporter) Path(doc Document) string {
	return filepath.Join(e.OutputDir, doc.Name+".pdf")
}

// Write saves doc into the output folder and returns the file path.
func (e Exporter) Write(doc Document) (string, error) {
	pdf, err := e.build(doc)
	if err != nil {
		return "", err
	}

	path := e.Path(doc)
	if err := util.EnsureParent(path); err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Render streams doc to w.
func (e Exporter) Render(w io.Writer, doc Document) error {
	pdf, err := e.build(doc)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering %s: %w", doc.Name, err)
	}
	return nil
}

func (e Exporter) build(doc Document) (*fpdf.Fpdf, error) {
	w, h := e.PageSize.X, e.PageSize.Y
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid page size %v mm", e.PageSize)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for _, page := range doc.Pages {
		opt, err := register(pdf, page)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Name, err)
		}
		pdf.AddPage()
		pdf.ImageOptions(page, 0, 0, w, h, false, opt, 0, "")
		if pdf.Err() {
			return nil, fmt.Errorf("%s: adding %s: %w", doc.Name, page, pdf.Error())
		}
	}
	return pdf, nil
}

// register makes pages in formats fpdf cannot read (WebP, TIFF, BMP)
// available as PNG under their own path.
func register(pdf *fpdf.Fpdf, path string) (fpdf.ImageOptions, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return fpdf.ImageOptions{}, nil
	}

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	if pdf.GetImageInfo(path) != nil {
		return opt, nil
	}

	img, err := imagepkg.Open(path)
	if err != nil {
		return opt, err
	}
	var buf bytes.Buffer
	if err := imagepkg.EncodePNG(&buf, img); err != nil {
		return opt, fmt.Errorf("converting %s: %w", path, err)
	}
	pdf.RegisterImageOptionsReader(path, opt, &buf)
	return opt, nil
}
