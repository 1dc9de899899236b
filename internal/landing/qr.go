package landing

import (
	"github.com/skip2/go-qrcode"
)

// QRGenerator renders check-in URLs as QR PNGs for the thank-you page
// ticket rows.
type QRGenerator struct {
	size int
}

func NewQRGenerator() *QRGenerator {
	return &QRGenerator{size: 256}
}

func (q *QRGenerator) CheckInQR(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, q.size)
}
