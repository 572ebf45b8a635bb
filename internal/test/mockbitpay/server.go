// Package mockbitpay is an in-process fake of the BitPay invoice and rates
// API, used to exercise the client over real HTTP.
package mockbitpay

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Rate struct {
	Name string
	Code string
	Rate decimal.Decimal
}

var DefaultRates = []Rate{
	{Name: "US Dollar", Code: "USD", Rate: decimal.RequireFromString("650.0")},
	{Name: "Eurozone Euro", Code: "EUR", Rate: decimal.RequireFromString("480.25")},
	{Name: "Chinese Yuan", Code: "CNY", Rate: decimal.RequireFromString("4001.5")},
	{Name: "Bitcoin", Code: "BTC", Rate: decimal.NewFromInt(1)},
}

// Invoice is the server side record of a created invoice.
type Invoice struct {
	ID       string
	URL      string
	Status   string
	Price    decimal.Decimal
	BtcPrice decimal.Decimal
	Currency string
	Params   url.Values
}

// Request is a snapshot of a request received by the server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Form   url.Values
}

type Server struct {
	auth   string
	engine *gin.Engine
	srv    *httptest.Server

	mu       sync.RWMutex
	invoices map[string]*Invoice
	rates    []Rate
	requests []Request
}

// New returns a server accepting only apiKey. Call Start to serve it.
func New(apiKey string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		auth:     "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+": ")),
		invoices: make(map[string]*Invoice),
		rates:    append([]Rate(nil), DefaultRates...),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.record, s.authenticate)

	api := engine.Group("/api")
	api.POST("/invoice", s.handleCreateInvoice)
	api.GET("/invoice/:id", s.handleGetInvoice)
	api.GET("/rates", s.handleGetRates)

	s.engine = engine
	return s
}

// Start serves the API and returns its base URL.
func (s *Server) Start() string {
	s.srv = httptest.NewServer(s.engine)
	return s.srv.URL + "/api/"
}

func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Close()
	}
}

func (s *Server) SetRates(rates []Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = append([]Rate(nil), rates...)
}

func (s *Server) SetInvoiceStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, ok := s.invoices[id]
	if !ok {
		return fmt.Errorf("invoice %s not found", id)
	}
	invoice.Status = status
	return nil
}

func (s *Server) Invoice(id string) (Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoice, ok := s.invoices[id]
	if !ok {
		return Invoice{}, false
	}
	return *invoice, true
}

func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		log.WithError(err).Warn("mockbitpay: failed to parse form")
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.EscapedPath(),
		Header: c.Request.Header.Clone(),
		Form:   cloneValues(c.Request.PostForm),
	})
	s.mu.Unlock()

	c.Next()
}

func (s *Server) authenticate(c *gin.Context) {
	if c.GetHeader("Authorization") != s.auth {
		writeError(c, http.StatusUnauthorized, "unauthorized", "invalid api key")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "validationError", "invalid price")
		return
	}
	currency := c.PostForm("currency")
	if currency == "" {
		writeError(c, http.StatusBadRequest, "validationError", "currency is required")
		return
	}

	s.mu.Lock()
	rate, ok := s.rateOf(currency)
	if !ok {
		s.mu.Unlock()
		writeError(c, http.StatusBadRequest, "validationError", "unsupported currency "+currency)
		return
	}

	id := uuid.New().String()
	invoice := &Invoice{
		ID:       id,
		URL:      fmt.Sprintf("http://%s/invoice?id=%s", c.Request.Host, id),
		Status:   "new",
		Price:    price,
		BtcPrice: price.DivRound(rate, 8),
		Currency: currency,
		Params:   cloneValues(c.Request.PostForm),
	}
	s.invoices[id] = invoice
	s.mu.Unlock()

	log.WithFields(log.Fields{"id": id, "price": price, "currency": currency}).
		Debug("mockbitpay: invoice created")

	c.JSON(http.StatusOK, invoiceBody(invoice))
}

func (s *Server) handleGetInvoice(c *gin.Context) {
	s.mu.RLock()
	invoice, ok := s.invoices[c.Param("id")]
	var body gin.H
	if ok {
		body = invoiceBody(invoice)
	}
	s.mu.RUnlock()

	if !ok {
		writeError(c, http.StatusNotFound, "notFound", "Invoice not found")
		return
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleGetRates(c *gin.Context) {
	s.mu.RLock()
	body := make([]gin.H, 0, len(s.rates))
	for _, r := range s.rates {
		body = append(body, gin.H{
			"name": r.Name,
			"code": r.Code,
			"rate": json.Number(r.Rate.String()),
		})
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, body)
}

// rateOf must be called with the lock held.
func (s *Server) rateOf(code string) (decimal.Decimal, bool) {
	for _, r := range s.rates {
		if r.Code == code && r.Rate.IsPositive() {
			return r.Rate, true
		}
	}
	return decimal.Zero, false
}

// invoiceBody mirrors the live API: btcPrice as a string, price as a number,
// plus fields the client does not map.
func invoiceBody(invoice *Invoice) gin.H {
	return gin.H{
		"id":              invoice.ID,
		"url":             invoice.URL,
		"status":          invoice.Status,
		"btcPrice":        invoice.BtcPrice.String(),
		"price":           json.Number(invoice.Price.String()),
		"currency":        invoice.Currency,
		"posData":         invoice.Params.Get("posData"),
		"exceptionStatus": false,
	}
}

func writeError(c *gin.Context, status int, errType, msg string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"type":    errType,
			"message": msg,
		},
	})
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
