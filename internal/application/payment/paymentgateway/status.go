package paymentgateway

import (
	"fmt"
	"strings"

	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
)

// Invoice statuses reported in webhooks.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusSettled = "SETTLED"
	InvoiceStatusExpired = "EXPIRED"
	InvoiceStatusFailed  = "FAILED"
)

// MapInvoiceStatus translates the gateway vocabulary into a ledger status.
func MapInvoiceStatus(status string) (vo.TransactionStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case InvoiceStatusPaid, InvoiceStatusSettled:
		return vo.TransactionStatusCompleted, nil
	case InvoiceStatusExpired, InvoiceStatusFailed:
		return vo.TransactionStatusFailed, nil
	case InvoiceStatusPending:
		return vo.TransactionStatusPending, nil
	default:
		return "", fmt.Errorf("%w: %q", payment.ErrUnknownStatus, status)
	}
}
