package valueobjects

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusInactive SubscriptionStatus = "inactive"
)

func (s SubscriptionStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s SubscriptionStatus) String() string {
	return string(s)
}
