package models

// All returns every model owned by the service, in dependency order.
func All() []interface{} {
	return []interface{}{
		&PlanModel{},
		&TransactionModel{},
		&GatewayEventModel{},
		&SubscriptionModel{},
		&ProfileModel{},
	}
}
