package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"talentika/internal/domain/payment"
	"talentika/internal/infrastructure/persistence/models"
)

func GatewayEventToModel(e *payment.GatewayEvent) *models.GatewayEventModel {
	model := &models.GatewayEventModel{
		ID:            e.ID,
		Gateway:       e.Gateway,
		TransactionID: e.TransactionID,
		InvoiceID:     e.InvoiceID,
		ExternalID:    e.ExternalID,
		Status:        e.Status,
		PaidAmount:    e.PaidAmount,
		Outcome:       string(e.Outcome),
		Error:         e.Error,
		ReceivedAt:    e.ReceivedAt,
	}
	// The payload column is JSON; a body that is not valid JSON is stored as a string.
	if len(e.Payload) > 0 {
		if json.Valid(e.Payload) {
			model.Payload = datatypes.JSON(e.Payload)
		} else if quoted, err := json.Marshal(string(e.Payload)); err == nil {
			model.Payload = datatypes.JSON(quoted)
		}
	}
	return model
}

func GatewayEventToDomain(model *models.GatewayEventModel) *payment.GatewayEvent {
	return &payment.GatewayEvent{
		ID:            model.ID,
		Gateway:       model.Gateway,
		TransactionID: model.TransactionID,
		InvoiceID:     model.InvoiceID,
		ExternalID:    model.ExternalID,
		Status:        model.Status,
		PaidAmount:    model.PaidAmount,
		Payload:       json.RawMessage(model.Payload),
		Outcome:       payment.GatewayEventOutcome(model.Outcome),
		Error:         model.Error,
		ReceivedAt:    model.ReceivedAt.UTC(),
	}
}
