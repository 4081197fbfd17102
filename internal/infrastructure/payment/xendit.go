package payment

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talentika/internal/application/payment/paymentgateway"
	"talentika/internal/shared/logger"
)

const (
	xenditInvoicePath = "/v2/invoices"
	// Maximum response body size read from the invoice API (256KB)
	maxXenditResponseSize = 256 << 10
)

// Channels offered on the hosted invoice page for each local payment method. An unknown
// method leaves the list empty so the page shows every channel enabled on the account.
var xenditChannels = map[string][]string{
	"bank_transfer": {"BCA", "BNI", "BRI", "MANDIRI", "PERMATA", "BSI"},
	"ewallet":       {"OVO", "DANA", "SHOPEEPAY", "LINKAJA"},
	"qris":          {"QRIS"},
	"credit_card":   {"CREDIT_CARD"},
	"retail_outlet": {"ALFAMART", "INDOMARET"},
}

type XenditConfig struct {
	BaseURL       string
	SecretKey     string
	CallbackToken string
	Timeout       time.Duration
}

type xenditInvoiceRequest struct {
	ExternalID         string   `json:"external_id"`
	Amount             int64    `json:"amount"`
	Description        string   `json:"description"`
	InvoiceDuration    int64    `json:"invoice_duration"`
	Currency           string   `json:"currency"`
	PayerEmail         string   `json:"payer_email,omitempty"`
	SuccessRedirectURL string   `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string   `json:"failure_redirect_url,omitempty"`
	PaymentMethods     []string `json:"payment_methods,omitempty"`
}

type xenditInvoiceResponse struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoice_url"`
	ExpiryDate string `json:"expiry_date"`
}

type xenditErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// XenditGateway creates hosted invoices through the Xendit Invoice API.
type XenditGateway struct {
	cfg        XenditConfig
	httpClient *http.Client
	logger     logger.Interface
}

func NewXenditGateway(cfg XenditConfig, logger logger.Interface) *XenditGateway {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &XenditGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

var _ paymentgateway.PaymentGateway = (*XenditGateway)(nil)

func (g *XenditGateway) CreateInvoice(ctx context.Context, req paymentgateway.CreateInvoiceRequest) (*paymentgateway.CreateInvoiceResponse, error) {
	if g.cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: xendit secret key is not set", paymentgateway.ErrGatewayMisconfigured)
	}

	body, err := json.Marshal(xenditInvoiceRequest{
		ExternalID:         req.ExternalID,
		Amount:             req.Amount,
		Description:        req.Description,
		InvoiceDuration:    int64(req.Duration / time.Second),
		Currency:           req.Currency,
		PayerEmail:         req.PayerEmail,
		SuccessRedirectURL: req.SuccessRedirectURL,
		FailureRedirectURL: req.FailureRedirectURL,
		PaymentMethods:     xenditChannels[req.PaymentMethod],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+xenditInvoicePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.SetBasicAuth(g.cfg.SecretKey, "")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", paymentgateway.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxXenditResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", paymentgateway.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr xenditErrorResponse
		_ = json.Unmarshal(raw, &apiErr)
		g.logger.Warnw("xendit rejected invoice request",
			"status_code", resp.StatusCode,
			"error_code", apiErr.ErrorCode,
			"message", apiErr.Message,
			"external_id", req.ExternalID,
		)
		if apiErr.ErrorCode != "" {
			return nil, fmt.Errorf("%w: %s: %s", paymentgateway.ErrGatewayUnavailable, apiErr.ErrorCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d", paymentgateway.ErrGatewayUnavailable, resp.StatusCode)
	}

	var data xenditInvoiceResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", paymentgateway.ErrGatewayUnavailable, err)
	}
	if data.ID == "" || data.InvoiceURL == "" {
		return nil, fmt.Errorf("%w: response missing invoice id or url", paymentgateway.ErrGatewayUnavailable)
	}

	result := &paymentgateway.CreateInvoiceResponse{
		InvoiceID:  data.ID,
		InvoiceURL: data.InvoiceURL,
		Status:     data.Status,
	}
	if data.ExpiryDate != "" {
		if expiresAt, err := time.Parse(time.RFC3339, data.ExpiryDate); err == nil {
			utc := expiresAt.UTC()
			result.ExpiresAt = &utc
		}
	}

	g.logger.Infow("xendit invoice created",
		"external_id", req.ExternalID,
		"invoice_id", data.ID,
		"status", data.Status,
	)
	return result, nil
}

// VerifyCallback compares the X-CALLBACK-TOKEN header with the account's verification
// token in constant time.
func (g *XenditGateway) VerifyCallback(token string) error {
	if g.cfg.CallbackToken == "" {
		return fmt.Errorf("%w: xendit callback token is not set", paymentgateway.ErrGatewayMisconfigured)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(g.cfg.CallbackToken)) != 1 {
		return errors.New("callback token mismatch")
	}
	return nil
}
