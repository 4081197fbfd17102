package payment

import "errors"

var (
	ErrTransactionNotFound         = errors.New("transaction not found")
	ErrExternalReferenceAlreadySet = errors.New("external transaction id already set")
	ErrInvalidTransition           = errors.New("invalid transaction status transition")
	ErrMalformedWebhook            = errors.New("malformed webhook payload")
	ErrUnknownStatus               = errors.New("unknown gateway status")
	ErrInvalidCallbackToken        = errors.New("invalid callback token")
	ErrReferenceMismatch           = errors.New("webhook references a different gateway invoice")
)
