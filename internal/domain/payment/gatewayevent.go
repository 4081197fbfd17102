package payment

import (
	"encoding/json"
	"time"

	"talentika/internal/shared/biztime"
	"talentika/internal/shared/id"
)

type GatewayEventOutcome string

const (
	GatewayEventProcessed GatewayEventOutcome = "processed"
	GatewayEventIgnored   GatewayEventOutcome = "ignored"
	GatewayEventRejected  GatewayEventOutcome = "rejected"
	GatewayEventFailed    GatewayEventOutcome = "failed"
)

// GatewayEvent is an append-only audit record of one webhook delivery that resolved to a
// ledger transaction.
type GatewayEvent struct {
	ID            string
	Gateway       string
	TransactionID string
	InvoiceID     string
	ExternalID    string
	Status        string
	PaidAmount    int64
	Payload       json.RawMessage
	Outcome       GatewayEventOutcome
	Error         string
	ReceivedAt    time.Time
}

func NewGatewayEvent(transactionID, invoiceID, externalID, status string, paidAmount int64, payload []byte) *GatewayEvent {
	return &GatewayEvent{
		ID:            id.New(),
		Gateway:       GatewayXendit,
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
		ExternalID:    externalID,
		Status:        status,
		PaidAmount:    paidAmount,
		Payload:       payload,
		ReceivedAt:    biztime.NowUTC(),
	}
}
