package bitpay

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type errorEnvelope struct {
	Error *errorBody `json:"error"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// UnmarshalJSON accepts both {"error":{"message":"..."}} and the older
// {"error":"..."} form.
func (b *errorBody) UnmarshalJSON(data []byte) error {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		b.Message = msg
		return nil
	}

	type plain errorBody
	return json.Unmarshal(data, (*plain)(b))
}

type invoiceResponse struct {
	ID       string          `json:"id"`
	URL      string          `json:"url"`
	Status   string          `json:"status"`
	BtcPrice decimal.Decimal `json:"btcPrice"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

type rateResponse struct {
	Name string          `json:"name"`
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
}

// decodeErrorEnvelope returns the server error carried by body, if any.
func decodeErrorEnvelope(body []byte) (*APIError, error) {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env.Error == nil {
		return nil, nil
	}

	msg := env.Error.Message
	if msg == "" {
		msg = env.Error.Type
	}
	if msg == "" {
		msg = "unknown error"
	}

	return &APIError{
		Type:    env.Error.Type,
		Message: "Error: " + msg,
	}, nil
}
