package bitpay

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Transaction speed preferences accepted by the server. They decide after how
// many block confirmations an invoice moves to the confirmed status.
const (
	SpeedHigh   = "high"
	SpeedMedium = "medium"
	SpeedLow    = "low"
)

// InvoiceParams holds the optional display and notification settings of an
// invoice. Empty strings are not sent.
type InvoiceParams struct {
	// PosData is passed through untouched and returned in notifications,
	// eg. a JSON encoded order reference.
	PosData string
	// NotificationURL receives a POST with the invoice on status changes.
	// Must be https.
	NotificationURL string
	// TransactionSpeed is one of SpeedHigh, SpeedMedium or SpeedLow.
	TransactionSpeed string
	// FullNotifications sends a notification on every status change instead
	// of only on confirmation.
	FullNotifications bool
	NotificationEmail string
	RedirectURL       string
	OrderID           string
	ItemDesc          string
	ItemCode          string
	// Physical marks an order that ships a physical item.
	Physical bool

	BuyerName     string
	BuyerAddress1 string
	BuyerAddress2 string
	BuyerCity     string
	BuyerState    string
	BuyerZip      string
	BuyerCountry  string
	BuyerEmail    string
	BuyerPhone    string
}

func (p InvoiceParams) fields() map[string]string {
	fields := map[string]string{
		"physical":          strconv.FormatBool(p.Physical),
		"fullNotifications": strconv.FormatBool(p.FullNotifications),
	}

	optional := []struct {
		key   string
		value string
	}{
		{"notificationURL", p.NotificationURL},
		{"transactionSpeed", p.TransactionSpeed},
		{"posData", p.PosData},
		{"notificationEmail", p.NotificationEmail},
		{"redirectURL", p.RedirectURL},
		{"orderID", p.OrderID},
		{"itemDesc", p.ItemDesc},
		{"itemCode", p.ItemCode},
		{"buyerName", p.BuyerName},
		{"buyerAddress1", p.BuyerAddress1},
		{"buyerAddress2", p.BuyerAddress2},
		{"buyerCity", p.BuyerCity},
		{"buyerState", p.BuyerState},
		{"buyerZip", p.BuyerZip},
		{"buyerCountry", p.BuyerCountry},
		{"buyerEmail", p.BuyerEmail},
		{"buyerPhone", p.BuyerPhone},
	}
	for _, f := range optional {
		if f.value != "" {
			fields[f.key] = f.value
		}
	}

	return fields
}

// BuildInvoiceParams returns the form fields of an invoice creation request.
// params may be nil, in which case only price and currency are set.
func BuildInvoiceParams(
	price decimal.Decimal, currency string, params *InvoiceParams,
) map[string]string {
	fields := map[string]string{}
	if params != nil {
		fields = params.fields()
	}

	fields["price"] = formatPrice(price)
	fields["currency"] = currency

	return fields
}

// formatPrice renders the price with a dot separator, keeping the scale the
// caller gave it (100.0 stays "100.0").
func formatPrice(price decimal.Decimal) string {
	if exp := price.Exponent(); exp < 0 {
		return price.StringFixed(-exp)
	}
	return price.String()
}
