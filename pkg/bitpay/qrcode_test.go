package bitpay_test

import (
	"bytes"
	"testing"

	"github.com/ArkLabsHQ/bitpay-client/pkg/bitpay"
	"github.com/stretchr/testify/require"
)

func TestInvoiceQRCode(t *testing.T) {
	t.Run("checkout url", func(t *testing.T) {
		invoice := &bitpay.Invoice{
			ID:  "K8QNEmCbKc2tjU2ukCSdHv",
			URL: "https://bitpay.com/invoice?id=K8QNEmCbKc2tjU2ukCSdHv",
		}

		png, err := invoice.QRCode(256)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
	})

	t.Run("missing url", func(t *testing.T) {
		png, err := (&bitpay.Invoice{ID: "abc"}).QRCode(256)
		require.Nil(t, png)
		require.ErrorIs(t, err, bitpay.ErrInvalidArgument)
	})
}
