package subscription

import (
	"fmt"
	"time"

	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/biztime"
)

// EntitlementMonths is the length of the window granted by one completed transaction,
// whatever the billing cycle of the purchase.
const EntitlementMonths = 1

// ComputeWindow returns the entitlement window for a payment completed at paidAt.
func ComputeWindow(paidAt time.Time) (startsAt, expiresAt time.Time) {
	startsAt = paidAt.UTC()
	return startsAt, biztime.AddMonthsUTC(startsAt, EntitlementMonths)
}

// Subscription is the single per-user entitlement record. It is overwritten by every
// successful activation.
type Subscription struct {
	id            uint
	userID        string
	planID        string
	planType      string
	billingCycle  vo.BillingCycle
	status        vo.SubscriptionStatus
	startsAt      time.Time
	expiresAt     time.Time
	amountPaid    int64
	paymentMethod string
	transactionID string
	createdAt     time.Time
	updatedAt     time.Time
}

type ActivationParams struct {
	UserID        string
	PlanID        string
	PlanType      string
	BillingCycle  vo.BillingCycle
	AmountPaid    int64
	PaymentMethod string
	TransactionID string
	PaidAt        time.Time
}

// NewActivation builds the active subscription produced by one completed transaction.
// The window depends only on PaidAt so replays yield identical rows.
func NewActivation(p ActivationParams) (*Subscription, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.PlanID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if p.TransactionID == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}
	if p.PaidAt.IsZero() {
		return nil, fmt.Errorf("paid at is required")
	}
	if !p.BillingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", p.BillingCycle)
	}

	startsAt, expiresAt := ComputeWindow(p.PaidAt)
	now := biztime.NowUTC()
	return &Subscription{
		userID:        p.UserID,
		planID:        p.PlanID,
		planType:      p.PlanType,
		billingCycle:  p.BillingCycle,
		status:        vo.StatusActive,
		startsAt:      startsAt,
		expiresAt:     expiresAt,
		amountPaid:    p.AmountPaid,
		paymentMethod: p.PaymentMethod,
		transactionID: p.TransactionID,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Supersedes reports whether s may overwrite existing. An activation whose window starts
// before the stored one came from an older transaction and must not win.
func (s *Subscription) Supersedes(existing *Subscription) bool {
	if existing == nil {
		return true
	}
	return !s.startsAt.Before(existing.startsAt)
}

// IsEntitled is the read-time expiry check: the stored status may still say active after
// expires_at has passed.
func (s *Subscription) IsEntitled(now time.Time) bool {
	return s.status == vo.StatusActive && now.Before(s.expiresAt)
}

func (s *Subscription) EffectiveStatus(now time.Time) vo.SubscriptionStatus {
	if s.IsEntitled(now) {
		return vo.StatusActive
	}
	return vo.StatusInactive
}

// Expire flips a lapsed active subscription to inactive. It reports whether anything
// changed.
func (s *Subscription) Expire(now time.Time) bool {
	if s.status != vo.StatusActive || now.Before(s.expiresAt) {
		return false
	}
	s.status = vo.StatusInactive
	s.updatedAt = now.UTC()
	return true
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) UserID() string                { return s.userID }
func (s *Subscription) PlanID() string                { return s.planID }
func (s *Subscription) PlanType() string              { return s.planType }
func (s *Subscription) BillingCycle() vo.BillingCycle { return s.billingCycle }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) StartsAt() time.Time           { return s.startsAt }
func (s *Subscription) ExpiresAt() time.Time          { return s.expiresAt }
func (s *Subscription) AmountPaid() int64             { return s.amountPaid }
func (s *Subscription) PaymentMethod() string         { return s.paymentMethod }
func (s *Subscription) TransactionID() string         { return s.transactionID }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

type SubscriptionReconstructParams struct {
	ID            uint
	UserID        string
	PlanID        string
	PlanType      string
	BillingCycle  vo.BillingCycle
	Status        vo.SubscriptionStatus
	StartsAt      time.Time
	ExpiresAt     time.Time
	AmountPaid    int64
	PaymentMethod string
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructSubscription(p SubscriptionReconstructParams) *Subscription {
	return &Subscription{
		id:            p.ID,
		userID:        p.UserID,
		planID:        p.PlanID,
		planType:      p.PlanType,
		billingCycle:  p.BillingCycle,
		status:        p.Status,
		startsAt:      p.StartsAt,
		expiresAt:     p.ExpiresAt,
		amountPaid:    p.AmountPaid,
		paymentMethod: p.PaymentMethod,
		transactionID: p.TransactionID,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}
