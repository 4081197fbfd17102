// Package validators registers the domain binding tags used by request structs.
package validators

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	paymentvo "talentika/internal/domain/payment/valueobjects"
	subvo "talentika/internal/domain/subscription/valueobjects"
)

const (
	TagBillingCycle  = "billingcycle"
	TagPaymentMethod = "paymentmethod"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the custom tags to gin's validator engine. Safe to call repeatedly.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagBillingCycle:  validateBillingCycle,
		TagPaymentMethod: validatePaymentMethod,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation tag %q: %w", tag, err)
		}
	}
	return nil
}

// Empty values pass; pair with `required` where needed.
func validateBillingCycle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := subvo.NewBillingCycle(value)
	return err == nil
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := paymentvo.NewPaymentMethod(value)
	return err == nil
}
