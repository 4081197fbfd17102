package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentUsecases "talentika/internal/application/payment/usecases"
	"talentika/internal/interfaces/http/middleware"
	"talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
	"talentika/internal/shared/utils"
)

type PaymentHandler struct {
	createInvoiceUC  createInvoiceUseCase
	getTransactionUC getTransactionUseCase
	logger           logger.Interface
}

func NewPaymentHandler(
	createInvoiceUC createInvoiceUseCase,
	getTransactionUC getTransactionUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		createInvoiceUC:  createInvoiceUC,
		getTransactionUC: getTransactionUC,
		logger:           logger,
	}
}

type CreateInvoiceRequest struct {
	PlanID        string `json:"planId" binding:"required,max=64"`
	UserID        string `json:"userId" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" binding:"required,paymentmethod"`
	BillingCycle  string `json:"billingCycle" binding:"required,billingcycle"`
	VoucherID     string `json:"voucherId" binding:"omitempty,max=64"`
}

// CreateInvoiceResponse keeps the flat shape the web client already consumes.
type CreateInvoiceResponse struct {
	Success       bool   `json:"success"`
	InvoiceURL    string `json:"invoice_url,omitempty"`
	InvoiceID     string `json:"invoice_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// @Summary		Create invoice
// @Description	Record a pending transaction and open a hosted invoice for it
// @Tags			payments
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			invoice	body		CreateInvoiceRequest	true	"Invoice request"
// @Success		200		{object}	CreateInvoiceResponse
// @Failure		400		{object}	CreateInvoiceResponse
// @Failure		401		{object}	CreateInvoiceResponse
// @Failure		403		{object}	CreateInvoiceResponse
// @Failure		429		{object}	CreateInvoiceResponse
// @Router			/payments/invoices [post]
func (h *PaymentHandler) CreateInvoice(c *gin.Context) {
	subject, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, CreateInvoiceResponse{Error: "user not authenticated"})
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid invoice request", "error", err, "user_id", subject)
		c.JSON(http.StatusBadRequest, CreateInvoiceResponse{Error: "invalid request: " + err.Error()})
		return
	}

	if req.UserID != subject {
		h.logger.Warnw("invoice requested for another user", "user_id", subject, "requested_user_id", req.UserID)
		c.JSON(http.StatusForbidden, CreateInvoiceResponse{Error: "userId does not match the authenticated user"})
		return
	}

	cmd := paymentUsecases.CreateInvoiceCommand{
		UserID:        subject,
		PlanID:        req.PlanID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		BillingCycle:  req.BillingCycle,
		VoucherID:     req.VoucherID,
	}

	result, err := h.createInvoiceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		status, message := invoiceFailure(err)
		if message == invoiceRetryMessage {
			h.logger.Errorw("failed to create invoice", "error", err, "user_id", subject, "plan_id", req.PlanID)
		}
		c.JSON(status, CreateInvoiceResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, CreateInvoiceResponse{
		Success:       true,
		InvoiceURL:    result.InvoiceURL,
		InvoiceID:     result.InvoiceID,
		TransactionID: result.TransactionID,
	})
}

// RejectInvoice writes middleware rejections on the invoice endpoint in the same flat
// shape as its handler responses.
func RejectInvoice(c *gin.Context, status int, message string) {
	c.JSON(status, CreateInvoiceResponse{Error: message})
}

const invoiceRetryMessage = "failed to create invoice, please retry"

// invoiceFailure collapses use case errors onto the statuses the client handles. Auth
// and rate limits keep their own codes, every other failure is a 400.
func invoiceFailure(err error) (int, string) {
	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Type == errors.ErrorTypeInternal {
		return http.StatusBadRequest, invoiceRetryMessage
	}
	switch appErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return appErr.Code, appErr.Message
	}
	return http.StatusBadRequest, appErr.Message
}

// @Summary		Get transaction
// @Description	Poll the state of a checkout. Owners and operators only.
// @Tags			payments
// @Produce		json
// @Security		Bearer
// @Param			id	path		string	true	"Transaction ID"
// @Success		200	{object}	utils.APIResponse{data=paymentUsecases.TransactionView}
// @Failure		404	{object}	utils.APIResponse
// @Router			/payments/transactions/{id} [get]
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	transactionID, err := utils.ParseUUIDParam(c, "id", "transaction")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	view, err := h.getTransactionUC.Execute(c.Request.Context(), paymentUsecases.GetTransactionQuery{
		TransactionID: transactionID,
		RequesterID:   userID,
		RequesterRole: middleware.GetUserRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", view)
}
