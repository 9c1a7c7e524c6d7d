package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinQRSize     = 64
	MaxQRSize     = 2048
	DefaultQRSize = 400
)

// DownloadQR returns a PNG QR code pointing at link, so a printed proof or
// a phone can fetch the deck documents from the preview server.
func DownloadQR(link string, size int) ([]byte, error) {
	if size < MinQRSize || size > MaxQRSize {
		return nil, fmt.Errorf("qr size %d outside [%d, %d]", size, MinQRSize, MaxQRSize)
	}
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", link, err)
	}
	return q.PNG(size)
}
