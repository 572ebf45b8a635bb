package bitpay

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCode renders the checkout URL of the invoice as a size x size PNG.
func (i *Invoice) QRCode(size int) ([]byte, error) {
	if i.URL == "" {
		return nil, fmt.Errorf("%w: invoice %q has no checkout url", ErrInvalidArgument, i.ID)
	}

	png, err := qrcode.Encode(i.URL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
