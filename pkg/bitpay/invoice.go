package bitpay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
// See https://bitpay.com/docs/invoice-states
type InvoiceStatus int

const (
	StatusUnknown InvoiceStatus = iota
	StatusNew
	StatusPaid
	StatusConfirmed
	StatusComplete
	StatusExpired
	StatusInvalid
)

var statusByWireValue = map[string]InvoiceStatus{
	"new":       StatusNew,
	"paid":      StatusPaid,
	"confirmed": StatusConfirmed,
	"complete":  StatusComplete,
	"expired":   StatusExpired,
	"invalid":   StatusInvalid,
}

// ParseInvoiceStatus maps a wire status to an InvoiceStatus. Matching is
// case-sensitive and unrecognized values yield StatusUnknown.
func ParseInvoiceStatus(s string) InvoiceStatus {
	if status, ok := statusByWireValue[s]; ok {
		return status
	}
	return StatusUnknown
}

func (s InvoiceStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusPaid:
		return "paid"
	case StatusConfirmed:
		return "confirmed"
	case StatusComplete:
		return "complete"
	case StatusExpired:
		return "expired"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Invoice is a server populated payment request.
type Invoice struct {
	ID string
	// URL is the checkout page shown to the buyer.
	URL    string
	Status InvoiceStatus
	// Price is denominated in Currency.
	Price    decimal.Decimal
	BtcPrice decimal.Decimal
	Currency string
}

// ParseInvoice decodes an invoice create/get response body. A body carrying
// an error envelope yields an *APIError, any other decoding failure a
// *ParseError.
func ParseInvoice(body []byte) (*Invoice, error) {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, newParseError(body, errors.New("null invoice"))
	}

	apiErr, err := decodeErrorEnvelope(body)
	if err != nil {
		return nil, newParseError(body, err)
	}
	if apiErr != nil {
		return nil, apiErr
	}

	var resp invoiceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newParseError(body, err)
	}
	if err := checkInvoiceMembers(body); err != nil {
		return nil, newParseError(body, err)
	}

	return &Invoice{
		ID:       resp.ID,
		URL:      resp.URL,
		Status:   ParseInvoiceStatus(resp.Status),
		Price:    resp.Price,
		BtcPrice: resp.BtcPrice,
		Currency: resp.Currency,
	}, nil
}

// Members that every invoice body carries. They may be empty but not absent
// or null.
var requiredInvoiceMembers = []string{"id", "status", "btcPrice", "price", "currency"}

func checkInvoiceMembers(body []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return err
	}
	for _, name := range requiredInvoiceMembers {
		raw, ok := members[name]
		if !ok || bytes.Equal(raw, []byte("null")) {
			return fmt.Errorf("missing invoice member %q", name)
		}
	}
	return nil
}
