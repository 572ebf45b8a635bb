package bitpay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Rate is the exchange rate of a currency against BTC.
type Rate struct {
	Name string
	// Code is the three letter uppercase currency code.
	Code         string
	ExchangeRate decimal.Decimal
}

// RatesSource fetches a fresh rate table. *Client implements it.
type RatesSource interface {
	GetRates(ctx context.Context) (*Rates, error)
}

// Rates is an in-memory snapshot of exchange rates. It is safe for
// concurrent use.
type Rates struct {
	mu    sync.RWMutex
	rates []Rate
}

func NewRates(rates []Rate) *Rates {
	list := make([]Rate, len(rates))
	copy(list, rates)
	return &Rates{rates: list}
}

// ParseRates decodes a rates response body, a JSON array of
// {name, code, rate} objects.
func ParseRates(body []byte) (*Rates, error) {
	var resp []*rateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newParseError(body, err)
	}
	if resp == nil {
		return nil, newParseError(body, errors.New("rates is not an array"))
	}

	rates := make([]Rate, 0, len(resp))
	for i, r := range resp {
		if r == nil {
			return nil, newParseError(body, fmt.Errorf("rate %d is null", i))
		}
		rates = append(rates, Rate{
			Name:         r.Name,
			Code:         r.Code,
			ExchangeRate: r.Rate,
		})
	}
	return &Rates{rates: rates}, nil
}

// ExchangeRates returns a copy of the current rates, in server order.
func (r *Rates) ExchangeRates() []Rate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Rate, len(r.rates))
	copy(list, r.rates)
	return list
}

// GetRate returns the rate of the first entry matching code exactly, or zero
// if there is none. Codes are expected in uppercase.
func (r *Rates) GetRate(code string) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rate := range r.rates {
		if rate.Code == code {
			return rate.ExchangeRate
		}
	}
	return decimal.Zero
}

// Update replaces the whole table with a fresh one fetched from src. The
// current rates are kept if the fetch fails.
func (r *Rates) Update(ctx context.Context, src RatesSource) error {
	fresh, err := src.GetRates(ctx)
	if err != nil {
		return fmt.Errorf("update rates: %w", err)
	}
	list := fresh.ExchangeRates()

	r.mu.Lock()
	r.rates = list
	r.mu.Unlock()
	return nil
}
