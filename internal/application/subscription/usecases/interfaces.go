package usecases

import "context"

// TransactionRunner runs fn inside one database transaction. *db.TransactionManager
// satisfies it.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
