package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"trimly/config"
	"trimly/utils"

	"golang.org/x/sync/singleflight"
)

// tokenExpiryMargin is subtracted from the provider's expires_in so a token
// is refreshed before it actually lapses mid-request.
const tokenExpiryMargin = 30 * time.Second

// Options configures the invoicing provider client.
type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	InvoiceCode  string
	CallbackURL  string
	HTTPClient   *http.Client
}

// OptionsFromConfig builds Options from the loaded application config.
func OptionsFromConfig() Options {
	return Options{
		BaseURL:      config.AppConfig.QPayBaseURL,
		ClientID:     config.AppConfig.QPayClientID,
		ClientSecret: config.AppConfig.QPayClientSecret,
		InvoiceCode:  config.AppConfig.QPayInvoiceCode,
		CallbackURL:  config.AppConfig.QPayCallbackURL,
	}
}

// Invoice is the subset of the provider's invoice response the API exposes.
type Invoice struct {
	InvoiceID string `json:"invoice_id"`
	QRText    string `json:"qr_text"`
	QRImage   string `json:"qr_image"`
	ShortURL  string `json:"qPay_shortUrl"`
}

// InvoiceStatus reports whether an invoice has been paid.
type InvoiceStatus struct {
	Paid       bool    `json:"paid"`
	PaidAmount float64 `json:"paidAmount"`
}

// Provider creates deposit invoices and checks their payment state.
type Provider interface {
	CreateInvoice(ctx context.Context, appointmentID string, amount float64, description string) (*Invoice, error)
	CheckInvoice(ctx context.Context, invoiceID string) (*InvoiceStatus, error)
}

// Client talks to a qPay-style invoicing REST API. Access tokens are cached
// until shortly before expiry; concurrent refreshes collapse into a single
// upstream call.
type Client struct {
	opts Options
	http *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time

	refresh singleflight.Group
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{opts: opts, http: httpClient}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.expires) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	v, err, _ := c.refresh.Do("token", func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/auth/token", nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("payment token request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, fmt.Errorf("payment token request returned %d: %s", resp.StatusCode, body)
		}

		var tr tokenResponse
		if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
			return nil, fmt.Errorf("failed to decode payment token response: %w", err)
		}
		if tr.AccessToken == "" {
			return nil, fmt.Errorf("payment token response contained no access_token")
		}

		c.mu.Lock()
		c.token = tr.AccessToken
		c.expires = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenExpiryMargin)
		c.mu.Unlock()
		return tr.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

type createInvoiceRequest struct {
	InvoiceCode         string  `json:"invoice_code"`
	SenderInvoiceNo     string  `json:"sender_invoice_no"`
	InvoiceReceiverCode string  `json:"invoice_receiver_code"`
	InvoiceDescription  string  `json:"invoice_description"`
	Amount              float64 `json:"amount"`
	CallbackURL         string  `json:"callback_url"`
}

// CreateInvoice opens a deposit invoice for an appointment.
func (c *Client) CreateInvoice(ctx context.Context, appointmentID string, amount float64, description string) (*Invoice, error) {
	if amount <= 0 {
		return nil, utils.InvalidArgumentError{Msg: "invoice amount must be positive"}
	}

	payload := createInvoiceRequest{
		InvoiceCode:         c.opts.InvoiceCode,
		SenderInvoiceNo:     appointmentID,
		InvoiceReceiverCode: "terminal",
		InvoiceDescription:  description,
		Amount:              amount,
		CallbackURL:         fmt.Sprintf("%s?appointment_id=%s", c.opts.CallbackURL, appointmentID),
	}

	var invoice Invoice
	if err := c.post(ctx, "/invoice", payload, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

type checkInvoiceRequest struct {
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
}

type checkInvoiceResponse struct {
	Count      int     `json:"count"`
	PaidAmount float64 `json:"paid_amount"`
}

// CheckInvoice queries the provider for payments against an invoice.
func (c *Client) CheckInvoice(ctx context.Context, invoiceID string) (*InvoiceStatus, error) {
	payload := checkInvoiceRequest{ObjectType: "INVOICE", ObjectID: invoiceID}

	var cr checkInvoiceResponse
	if err := c.post(ctx, "/payment/check", payload, &cr); err != nil {
		return nil, err
	}
	return &InvoiceStatus{Paid: cr.Count > 0 && cr.PaidAmount > 0, PaidAmount: cr.PaidAmount}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("payment request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("payment request %s returned %d: %s", path, resp.StatusCode, raw)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
