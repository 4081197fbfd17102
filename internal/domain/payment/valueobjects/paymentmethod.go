package valueobjects

import "fmt"

// PaymentMethod is the hint the client passes along with the invoice request. The hosted
// invoice page narrows the channels it offers accordingly.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEWallet      PaymentMethod = "ewallet"
	PaymentMethodQRIS         PaymentMethod = "qris"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodRetailOutlet PaymentMethod = "retail_outlet"
)

func NewPaymentMethod(method string) (PaymentMethod, error) {
	pm := PaymentMethod(method)
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodBankTransfer, PaymentMethodEWallet, PaymentMethodQRIS,
		PaymentMethodCreditCard, PaymentMethodRetailOutlet:
		return true
	default:
		return false
	}
}

func (pm PaymentMethod) String() string {
	return string(pm)
}
