package constants

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	// HeaderCallbackToken carries the shared secret Xendit sends with every webhook.
	HeaderCallbackToken = "X-CALLBACK-TOKEN"

	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
