package valueobjects

import "fmt"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func NewTransactionStatus(s string) (TransactionStatus, error) {
	status := TransactionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid transaction status: %s", s)
	}
	return status, nil
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	default:
		return false
	}
}

func (s TransactionStatus) IsPending() bool {
	return s == TransactionStatusPending
}

func (s TransactionStatus) IsCompleted() bool {
	return s == TransactionStatusCompleted
}

// IsFinal reports a terminal state. Terminal states never revert.
func (s TransactionStatus) IsFinal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// CanTransitionTo allows only pending -> completed and pending -> failed.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	return s == TransactionStatusPending && target.IsFinal()
}

func (s TransactionStatus) String() string {
	return string(s)
}
