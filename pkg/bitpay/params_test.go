package bitpay_test

import (
	"testing"

	"github.com/ArkLabsHQ/bitpay-client/pkg/bitpay"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoiceParams(t *testing.T) {
	price := decimal.RequireFromString("100.0")

	t.Run("without params", func(t *testing.T) {
		fields := bitpay.BuildInvoiceParams(price, "USD", nil)
		require.Equal(t, map[string]string{
			"price":    "100.0",
			"currency": "USD",
		}, fields)
	})

	t.Run("with empty params", func(t *testing.T) {
		fields := bitpay.BuildInvoiceParams(price, "USD", &bitpay.InvoiceParams{})
		require.Equal(t, map[string]string{
			"price":             "100.0",
			"currency":          "USD",
			"physical":          "false",
			"fullNotifications": "false",
		}, fields)
	})

	t.Run("with optional fields", func(t *testing.T) {
		params := &bitpay.InvoiceParams{
			BuyerName:         "Satoshi",
			BuyerEmail:        "satoshi@bitpay.com",
			FullNotifications: true,
			NotificationEmail: "satoshi@bitpay.com",
			NotificationURL:   "https://shop.example/ipn",
			TransactionSpeed:  bitpay.SpeedHigh,
			PosData:           `{"ref":711454,"affiliate":"spring112"}`,
			OrderID:           "order-42",
			Physical:          true,
		}

		fields := bitpay.BuildInvoiceParams(price, "EUR", params)
		require.Equal(t, map[string]string{
			"price":             "100.0",
			"currency":          "EUR",
			"physical":          "true",
			"fullNotifications": "true",
			"buyerName":         "Satoshi",
			"buyerEmail":        "satoshi@bitpay.com",
			"notificationEmail": "satoshi@bitpay.com",
			"notificationURL":   "https://shop.example/ipn",
			"transactionSpeed":  "high",
			"posData":           `{"ref":711454,"affiliate":"spring112"}`,
			"orderID":           "order-42",
		}, fields)
	})

	t.Run("wire names", func(t *testing.T) {
		params := &bitpay.InvoiceParams{
			PosData:           "a",
			NotificationURL:   "b",
			TransactionSpeed:  "c",
			NotificationEmail: "d",
			RedirectURL:       "e",
			OrderID:           "f",
			ItemDesc:          "g",
			ItemCode:          "h",
			BuyerName:         "i",
			BuyerAddress1:     "j",
			BuyerAddress2:     "k",
			BuyerCity:         "l",
			BuyerState:        "m",
			BuyerZip:          "n",
			BuyerCountry:      "o",
			BuyerEmail:        "p",
			BuyerPhone:        "q",
		}

		fields := bitpay.BuildInvoiceParams(price, "USD", params)
		require.Len(t, fields, 21)
		for key, value := range map[string]string{
			"posData":           "a",
			"notificationURL":   "b",
			"transactionSpeed":  "c",
			"notificationEmail": "d",
			"redirectURL":       "e",
			"orderID":           "f",
			"itemDesc":          "g",
			"itemCode":          "h",
			"buyerName":         "i",
			"buyerAddress1":     "j",
			"buyerAddress2":     "k",
			"buyerCity":         "l",
			"buyerState":        "m",
			"buyerZip":          "n",
			"buyerCountry":      "o",
			"buyerEmail":        "p",
			"buyerPhone":        "q",
		} {
			require.Equal(t, value, fields[key], key)
		}
	})
}

func TestBuildInvoiceParamsPriceFormat(t *testing.T) {
	tests := []struct {
		price    decimal.Decimal
		expected string
	}{
		{decimal.RequireFromString("100.0"), "100.0"},
		{decimal.RequireFromString("0.1"), "0.1"},
		{decimal.RequireFromString("1234567.891"), "1234567.891"},
		{decimal.RequireFromString("2.50"), "2.50"},
		{decimal.NewFromInt(100), "100"},
		{decimal.New(1, 2), "100"},
		{decimal.NewFromFloat(2.5), "2.5"},
		{decimal.Zero, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			fields := bitpay.BuildInvoiceParams(tt.price, "USD", nil)
			require.Equal(t, tt.expected, fields["price"])
		})
	}
}
