package payment

import (
	"context"
	"time"

	vo "talentika/internal/domain/payment/valueobjects"
)

type TransactionFilter struct {
	UserID            string
	Status            *vo.TransactionStatus
	ActivationPending *bool
	Page              int
	PageSize          int
}

// TransactionRepository is the Transaction Ledger. Status changes are conditional writes
// so concurrent webhook deliveries cannot both win the same transition.
type TransactionRepository interface {
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByExternalID(ctx context.Context, externalTransactionID string) (*Transaction, error)

	// SetExternalReference stores the gateway invoice id and URL only while no invoice id
	// is recorded. Returns ErrExternalReferenceAlreadySet otherwise.
	SetExternalReference(ctx context.Context, id, externalTransactionID, invoiceURL string) error

	// CompleteIfPending performs pending -> completed. The bool reports whether this call
	// made the transition.
	CompleteIfPending(ctx context.Context, id string, paidAmount int64, paidAt time.Time) (bool, error)
	// FailIfPending performs pending -> failed. The bool reports whether this call made the
	// transition.
	FailIfPending(ctx context.Context, id, reason string, at time.Time) (bool, error)

	MarkActivationSucceeded(ctx context.Context, id string) error
	MarkActivationFailed(ctx context.Context, id, reason string) error
	ListNeedingActivation(ctx context.Context, limit int) ([]*Transaction, error)

	List(ctx context.Context, filter TransactionFilter) ([]*Transaction, int64, error)
}

type GatewayEventRepository interface {
	Create(ctx context.Context, event *GatewayEvent) error
	ListByTransactionID(ctx context.Context, transactionID string) ([]*GatewayEvent, error)
}
