package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	paymentUsecases "talentika/internal/application/payment/usecases"
	"talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
	"talentika/internal/shared/utils"
)

// AdminHandler serves the operator billing console.
type AdminHandler struct {
	listTransactionsUC listTransactionsUseCase
	retryActivationUC  retryActivationUseCase
	listPlansUC        listPlansUseCase
	logger             logger.Interface
}

func NewAdminHandler(
	listTransactionsUC listTransactionsUseCase,
	retryActivationUC retryActivationUseCase,
	listPlansUC listPlansUseCase,
	logger logger.Interface,
) *AdminHandler {
	return &AdminHandler{
		listTransactionsUC: listTransactionsUC,
		retryActivationUC:  retryActivationUC,
		listPlansUC:        listPlansUC,
		logger:             logger,
	}
}

// @Summary		List transactions
// @Tags			admin
// @Produce		json
// @Security		Bearer
// @Param			status				query		string	false	"pending, completed or failed"
// @Param			user_id				query		string	false	"Filter by user"
// @Param			activation_pending	query		bool	false	"Only transactions awaiting activation"
// @Param			page				query		int		false	"Page"
// @Param			page_size			query		int		false	"Page size"
// @Success		200					{object}	utils.APIResponse{data=utils.ListResponse}
// @Router			/admin/transactions [get]
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	p := utils.ParsePagination(c)
	query := paymentUsecases.ListTransactionsQuery{
		UserID:   c.Query("user_id"),
		Status:   c.Query("status"),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if raw := c.Query("activation_pending"); raw != "" {
		pending, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid activation_pending value", raw))
			return
		}
		query.ActivationPending = &pending
	}

	result, err := h.listTransactionsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, p.Page, p.PageSize)
}

// @Summary		List gateway events for a transaction
// @Tags			admin
// @Produce		json
// @Security		Bearer
// @Param			id	path		string	true	"Transaction ID"
// @Success		200	{object}	utils.APIResponse{data=[]paymentUsecases.GatewayEventView}
// @Router			/admin/transactions/{id}/events [get]
func (h *AdminHandler) ListTransactionEvents(c *gin.Context) {
	transactionID, err := utils.ParseUUIDParam(c, "id", "transaction")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	events, err := h.listTransactionsUC.ListEvents(c.Request.Context(), transactionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", events)
}

// @Summary		Retry subscription activation
// @Description	Run the activator again for a completed transaction still awaiting activation
// @Tags			admin
// @Produce		json
// @Security		Bearer
// @Param			id	path		string	true	"Transaction ID"
// @Success		200	{object}	utils.APIResponse
// @Failure		409	{object}	utils.APIResponse	"Already activated or not completed"
// @Router			/admin/transactions/{id}/retry-activation [post]
func (h *AdminHandler) RetryActivation(c *gin.Context) {
	transactionID, err := utils.ParseUUIDParam(c, "id", "transaction")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.retryActivationUC.ExecuteOne(c.Request.Context(), transactionID); err != nil {
		h.logger.Warnw("manual activation retry failed", "error", err, "transaction_id", transactionID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("manual activation retry succeeded", "transaction_id", transactionID)
	utils.SuccessResponse(c, http.StatusOK, "subscription activated", nil)
}

// @Summary		List all plans
// @Tags			admin
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=[]subscriptionUsecases.PlanView}
// @Router			/admin/plans [get]
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context(), false)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", plans)
}
