package payment

import (
	"fmt"

	"talentika/internal/application/payment/paymentgateway"
	"talentika/internal/shared/config"
	"talentika/internal/shared/logger"
)

// NewGateway builds the gateway selected by cfg.Provider.
func NewGateway(cfg *config.PaymentConfig, log logger.Interface) (paymentgateway.PaymentGateway, error) {
	switch cfg.Provider {
	case "xendit":
		return NewXenditGateway(XenditConfig{
			BaseURL:       cfg.BaseURL,
			SecretKey:     cfg.SecretKey,
			CallbackToken: cfg.CallbackToken,
			Timeout:       cfg.RequestTimeout(),
		}, log.Named("xendit")), nil
	case "mock", "":
		log.Warnw("using mock payment gateway, invoices are not real")
		return paymentgateway.NewMockGateway(cfg.CallbackToken, true), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", cfg.Provider)
	}
}
