package qrcode

import (
	"github.com/pkg/errors"
	qr "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Encoder renders payment URIs as PNG QR codes.
type Encoder struct {
	size  int
	level qr.RecoveryLevel
}

func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{size: size, level: qr.Medium}
}

func (e *Encoder) Encode(content string) ([]byte, error) {
	png, err := qr.Encode(content, e.level, e.size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr code")
	}
	return png, nil
}
