package bitpay

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ArkLabsHQ/bitpay-client/pkg/config"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL    = config.DefaultBaseURL
	DefaultPluginInfo = config.DefaultPluginInfo

	pluginInfoHeader = "X-BitPay-Plugin-Info"
	maxCurrencyLen   = 3
)

// Client talks to the BitPay API. It holds no per-request state and is safe
// for concurrent use.
type Client struct {
	baseURL    string
	auth       string
	pluginInfo string
	httpClient *http.Client
}

var _ RatesSource = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at another API root, eg. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default http.Client. A nil client is ignored.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithPluginInfo(pluginInfo string) Option {
	return func(c *Client) {
		c.pluginInfo = pluginInfo
	}
}

// NewClient returns a client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		auth:       basicToken(apiKey),
		pluginInfo: DefaultPluginInfo,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/") + "/"

	return c
}

// NewClientFromConfig returns a client built from the environment
// configuration.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewClient(
		cfg.APIKey,
		WithBaseURL(cfg.BaseURL),
		WithPluginInfo(cfg.PluginInfo),
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	), nil
}

// basicToken keeps the trailing ": " the server expects after the key.
func basicToken(apiKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(apiKey + ": "))
}

// CreateInvoice creates an invoice for price denominated in currency. params
// is optional. The currency must be a code of at most three characters.
func (c *Client) CreateInvoice(
	ctx context.Context, price decimal.Decimal, currency string, params *InvoiceParams,
) (*Invoice, error) {
	if utf8.RuneCountInString(currency) > maxCurrencyLen {
		return nil, fmt.Errorf(
			"%w: must be a valid currency code, got %q", ErrInvalidArgument, currency,
		)
	}

	form := url.Values{}
	for k, v := range BuildInvoiceParams(price, currency, params) {
		form.Set(k, v)
	}

	res, err := c.sendPostRequest(ctx, "invoice", form)
	if err != nil {
		return nil, err
	}
	return res.invoice()
}

// GetInvoice fetches an existing invoice. An unknown id surfaces as the
// *APIError returned by the server.
func (c *Client) GetInvoice(ctx context.Context, invoiceId string) (*Invoice, error) {
	res, err := c.sendGetRequest(ctx, "invoice/"+url.PathEscape(invoiceId))
	if err != nil {
		return nil, err
	}
	return res.invoice()
}

// GetRates fetches the current BTC exchange rates.
func (c *Client) GetRates(ctx context.Context) (*Rates, error) {
	res, err := c.sendGetRequest(ctx, "rates")
	if err != nil {
		return nil, err
	}
	return res.rates()
}

type apiResponse struct {
	method     string
	url        string
	statusCode int
	body       []byte
}

func (r *apiResponse) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

func (r *apiResponse) httpError() *HTTPError {
	return &HTTPError{
		Method:     r.method,
		URL:        r.url,
		StatusCode: r.statusCode,
		Body:       truncate(string(r.body), 2000),
	}
}

func (r *apiResponse) invoice() (*Invoice, error) {
	invoice, err := ParseInvoice(r.body)

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		apiErr.StatusCode = r.statusCode
		return nil, apiErr
	}
	if !r.ok() {
		return nil, r.httpError()
	}
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// rates only looks for an error envelope on failed responses, a successful
// one is always an array.
func (r *apiResponse) rates() (*Rates, error) {
	if !r.ok() {
		if apiErr, _ := decodeErrorEnvelope(r.body); apiErr != nil {
			apiErr.StatusCode = r.statusCode
			return nil, apiErr
		}
		return nil, r.httpError()
	}

	return ParseRates(r.body)
}

func (c *Client) sendGetRequest(ctx context.Context, endpoint string) (*apiResponse, error) {
	return c.callApi(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) sendPostRequest(
	ctx context.Context, endpoint string, form url.Values,
) (*apiResponse, error) {
	return c.callApi(ctx, http.MethodPost, endpoint, form)
}

func (c *Client) callApi(
	ctx context.Context, method, endpoint string, form url.Values,
) (*apiResponse, error) {
	reqURL := c.baseURL + endpoint

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: new %s %s: %v", ErrInvalidArgument, method, reqURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.auth)
	req.Header.Set(pluginInfoHeader, c.pluginInfo)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	logger := log.WithFields(log.Fields{"method": method, "url": reqURL})
	logger.Debug("bitpay: sending request")

	res, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Warn("bitpay: request failed")
		return nil, &TransportError{Method: method, URL: reqURL, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		logger.WithError(err).Warn("bitpay: failed to read response body")
		return nil, &TransportError{
			Method: method, URL: reqURL, Err: fmt.Errorf("read response body: %w", err),
		}
	}
	logger.WithField("status", res.StatusCode).Debug("bitpay: got response")

	return &apiResponse{
		method:     method,
		url:        reqURL,
		statusCode: res.StatusCode,
		body:       raw,
	}, nil
}
