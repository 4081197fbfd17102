package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrPlanInactive         = errors.New("subscription plan inactive")
	ErrStaleActivation      = errors.New("a newer subscription window is already recorded")
)
