package paymentgateway

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"
)

// MockGateway issues fake invoices for local development. Point payment.provider at
// "mock" and drive the webhook by hand.
type MockGateway struct {
	callbackToken string
	shouldSucceed bool
}

func NewMockGateway(callbackToken string, shouldSucceed bool) *MockGateway {
	return &MockGateway{callbackToken: callbackToken, shouldSucceed: shouldSucceed}
}

func (m *MockGateway) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResponse, error) {
	if !m.shouldSucceed {
		return nil, fmt.Errorf("%w: mock gateway configured to fail", ErrGatewayUnavailable)
	}

	invoiceID := "MOCK_" + req.ExternalID
	expiresAt := time.Now().UTC().Add(req.Duration)
	return &CreateInvoiceResponse{
		InvoiceID:  invoiceID,
		InvoiceURL: fmt.Sprintf("https://mock-payment.example.com/invoices/%s", invoiceID),
		Status:     InvoiceStatusPending,
		ExpiresAt:  &expiresAt,
	}, nil
}

func (m *MockGateway) VerifyCallback(token string) error {
	if m.callbackToken == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(m.callbackToken)) != 1 {
		return fmt.Errorf("callback token mismatch")
	}
	return nil
}
