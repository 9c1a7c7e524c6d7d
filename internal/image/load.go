package imagepkg

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Open decodes an asset from disk. PNG, JPEG, GIF, TIFF, BMP and WebP are
// accepted.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return img, nil
}

// Size reads only the header of an image file.
func Size(path string) (image.Point, error) {
	fp, err := os.Open(path)
	if err != nil {
		return image.Point{}, err
	}
	defer fp.Close()

	cfg, _, err := image.DecodeConfig(fp)
	if err != nil {
		return image.Point{}, fmt.Errorf("reading size of %s: %w", path, err)
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}

// EncodePNG writes img as PNG, used for previews and for PDF pages in
// formats the PDF writer cannot embed.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
