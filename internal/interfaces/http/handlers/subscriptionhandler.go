package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentika/internal/interfaces/http/middleware"
	"talentika/internal/shared/logger"
	"talentika/internal/shared/utils"
)

type SubscriptionHandler struct {
	getSubscriptionUC getSubscriptionUseCase
	listPlansUC       listPlansUseCase
	logger            logger.Interface
}

func NewSubscriptionHandler(
	getSubscriptionUC getSubscriptionUseCase,
	listPlansUC listPlansUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getSubscriptionUC: getSubscriptionUC,
		listPlansUC:       listPlansUC,
		logger:            logger,
	}
}

// @Summary		Get my subscription
// @Description	Effective subscription status of the caller
// @Tags			subscriptions
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=subscriptionUsecases.SubscriptionView}
// @Router			/subscriptions/me [get]
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	view, err := h.getSubscriptionUC.Execute(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to get subscription", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", view)
}

// @Summary		List plans
// @Tags			plans
// @Produce		json
// @Success		200	{object}	utils.APIResponse{data=[]subscriptionUsecases.PlanView}
// @Router			/plans [get]
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context(), true)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", plans)
}
