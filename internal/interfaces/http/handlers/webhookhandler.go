package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	paymentUsecases "talentika/internal/application/payment/usecases"
	"talentika/internal/shared/constants"
	"talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
)

const maxWebhookBodySize = 1 << 20

// xenditInvoiceCallback is the subset of the invoice callback body the reconciler reads.
type xenditInvoiceCallback struct {
	ID         string   `json:"id"`
	ExternalID string   `json:"external_id"`
	Status     string   `json:"status"`
	PaidAmount *float64 `json:"paid_amount"`
	PaidAt     string   `json:"paid_at"`
}

type WebhookHandler struct {
	handleWebhookUC handleWebhookUseCase
	logger          logger.Interface
}

func NewWebhookHandler(handleWebhookUC handleWebhookUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		handleWebhookUC: handleWebhookUC,
		logger:          logger,
	}
}

// @Summary		Gateway invoice callback
// @Description	Reconcile an invoice status change. Responds in plain text.
// @Tags			payments
// @Accept			json
// @Produce		plain
// @Param			X-CALLBACK-TOKEN	header	string	true	"Callback verification token"
// @Success		200
// @Failure		400
// @Failure		401
// @Failure		404
// @Failure		500
// @Router			/payments/webhook [post]
func (h *WebhookHandler) HandleInvoiceCallback(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodySize+1))
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}
	if len(body) > maxWebhookBodySize {
		c.String(http.StatusBadRequest, "body too large")
		return
	}

	var payload xenditInvoiceCallback
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warnw("malformed webhook body", "error", err)
		c.String(http.StatusBadRequest, "malformed payload")
		return
	}

	cmd := paymentUsecases.WebhookCommand{
		CallbackToken: c.GetHeader(constants.HeaderCallbackToken),
		InvoiceID:     payload.ID,
		ExternalID:    payload.ExternalID,
		Status:        payload.Status,
		Payload:       body,
	}
	if payload.PaidAmount != nil {
		cmd.PaidAmount = int64(math.Round(*payload.PaidAmount))
	}
	if payload.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, payload.PaidAt); err == nil {
			paidAt = paidAt.UTC()
			cmd.PaidAt = &paidAt
		}
	}

	result, err := h.handleWebhookUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		status, message := webhookFailure(err)
		if status >= http.StatusInternalServerError {
			h.logger.Errorw("failed to handle webhook", "error", err, "external_id", payload.ExternalID)
		}
		c.String(status, message)
		return
	}

	h.logger.Infow("webhook handled",
		"transaction_id", result.TransactionID,
		"status", result.Status,
		"transitioned", result.Transitioned,
		"activated", result.Activated,
	)
	c.String(http.StatusOK, "OK")
}

func webhookFailure(err error) (int, string) {
	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Code >= http.StatusInternalServerError {
		return http.StatusInternalServerError, "internal error"
	}
	switch appErr.Code {
	case http.StatusUnauthorized, http.StatusNotFound:
		return appErr.Code, appErr.Message
	default:
		return http.StatusBadRequest, appErr.Message
	}
}
