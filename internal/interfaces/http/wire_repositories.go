package http

import (
	"gorm.io/gorm"

	"talentika/internal/domain/payment"
	"talentika/internal/domain/profile"
	"talentika/internal/domain/subscription"
	"talentika/internal/infrastructure/repository"
	"talentika/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	transactionRepo  payment.TransactionRepository
	eventRepo        payment.GatewayEventRepository
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	profileRepo      profile.Repository
	txManager        *db.TransactionManager
}

func newRepositories(gdb *gorm.DB) *repositories {
	return &repositories{
		transactionRepo:  repository.NewTransactionRepository(gdb),
		eventRepo:        repository.NewGatewayEventRepository(gdb),
		subscriptionRepo: repository.NewSubscriptionRepository(gdb),
		planRepo:         repository.NewPlanRepository(gdb),
		profileRepo:      repository.NewProfileRepository(gdb),
		txManager:        db.NewTransactionManager(gdb),
	}
}
