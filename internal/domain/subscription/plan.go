package subscription

import (
	"fmt"
	"time"

	vo "talentika/internal/domain/subscription/valueobjects"
)

// Plan is a purchasable tier. Its type is what gets mirrored into the profile flags.
type Plan struct {
	id           string
	name         string
	planType     string
	price        int64
	billingCycle vo.BillingCycle
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPlan(id, name, planType string, price int64, billingCycle vo.BillingCycle) (*Plan, error) {
	if id == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if len(id) > 64 {
		return nil, fmt.Errorf("plan ID too long (max 64 characters)")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if planType == "" {
		return nil, fmt.Errorf("plan type is required")
	}
	if price <= 0 {
		return nil, fmt.Errorf("plan price must be positive")
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	now := time.Now().UTC()
	return &Plan{
		id:           id,
		name:         name,
		planType:     planType,
		price:        price,
		billingCycle: billingCycle,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func (p *Plan) Deactivate() {
	p.isActive = false
	p.updatedAt = time.Now().UTC()
}

func (p *Plan) ID() string                    { return p.id }
func (p *Plan) Name() string                  { return p.name }
func (p *Plan) Type() string                  { return p.planType }
func (p *Plan) Price() int64                  { return p.price }
func (p *Plan) BillingCycle() vo.BillingCycle { return p.billingCycle }
func (p *Plan) IsActive() bool                { return p.isActive }
func (p *Plan) CreatedAt() time.Time          { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time          { return p.updatedAt }

func ReconstructPlan(id, name, planType string, price int64, billingCycle vo.BillingCycle,
	isActive bool, createdAt, updatedAt time.Time) *Plan {
	return &Plan{
		id:           id,
		name:         name,
		planType:     planType,
		price:        price,
		billingCycle: billingCycle,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}
