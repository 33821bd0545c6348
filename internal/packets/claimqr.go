package packets

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultClaimQRSize is the pixel size of claim QR codes printed on the
// physical stickers.
const DefaultClaimQRSize = 512

// ClaimQR renders the plain black-on-white QR code that goes on the
// sticker itself, pointing at the scan URL. Styling is not wanted here;
// medium error correction suits printed media.
func ClaimQR(scanURL string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultClaimQRSize
	}
	png, err := qrcode.Encode(scanURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate claim qr: %w", err)
	}
	return png, nil
}
