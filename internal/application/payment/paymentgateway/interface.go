package paymentgateway

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrGatewayUnavailable covers network failures, non-2xx responses and responses the
	// client cannot parse.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrGatewayMisconfigured means the gateway credentials are missing.
	ErrGatewayMisconfigured = errors.New("payment gateway misconfigured")
)

// PaymentGateway issues hosted invoices and authenticates their callbacks.
type PaymentGateway interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResponse, error)
	// VerifyCallback checks the shared callback token the gateway sends with every webhook.
	VerifyCallback(token string) error
}

// CreateInvoiceRequest carries one invoice. ExternalID is the local transaction id and is
// echoed back in every webhook for the invoice.
type CreateInvoiceRequest struct {
	ExternalID         string
	Amount             int64 // whole IDR
	Currency           string
	Description        string
	PaymentMethod      string
	PayerEmail         string
	SuccessRedirectURL string
	FailureRedirectURL string
	Duration           time.Duration
}

type CreateInvoiceResponse struct {
	InvoiceID  string
	InvoiceURL string
	Status     string
	ExpiresAt  *time.Time
}
