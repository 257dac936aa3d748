package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kazihub-inc/kazihub/internal/application/entitlement/usecases"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/middleware"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
	"github.com/kazihub-inc/kazihub/internal/shared/utils"
)

// dashboardPath is where the web client lands after a successful trial
// start or checkout settlement.
const dashboardPath = "/dashboard"

type EntitlementHandler struct {
	evaluateAccessUC   *usecases.EvaluateAccessUseCase
	startTrialUC       *usecases.StartTrialUseCase
	cancelUC           *usecases.CancelEntitlementUseCase
	listEntitlementsUC *usecases.ListEntitlementsUseCase
	trialDays          int
	logger             logger.Interface
}

func NewEntitlementHandler(
	evaluateAccessUC *usecases.EvaluateAccessUseCase,
	startTrialUC *usecases.StartTrialUseCase,
	cancelUC *usecases.CancelEntitlementUseCase,
	listEntitlementsUC *usecases.ListEntitlementsUseCase,
	trialDays int,
) *EntitlementHandler {
	return &EntitlementHandler{
		evaluateAccessUC:   evaluateAccessUC,
		startTrialUC:       startTrialUC,
		cancelUC:           cancelUC,
		listEntitlementsUC: listEntitlementsUC,
		trialDays:          trialDays,
		logger:             logger.NewLogger(),
	}
}

type StartTrialRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// GetAccess returns the current access decision for the caller. Evaluation
// expires elapsed trials as a side effect, so the answer is always current.
func (h *EntitlementHandler) GetAccess(c *gin.Context) {
	decision, err := h.evaluateAccessUC.Execute(c.Request.Context(), usecases.EvaluateAccessCommand{
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, decision)
}

func (h *EntitlementHandler) StartTrial(c *gin.Context) {
	var req StartTrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for start trial", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.startTrialUC.Execute(c.Request.Context(), usecases.StartTrialCommand{
		AccountEmail: middleware.AccountEmail(c),
		PlanID:       req.PlanID,
		TrialDays:    h.trialDays,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"entitlement": result,
		"redirect_to": dashboardPath,
	}, "Trial started")
}

// CancelActive requires ?confirm=true so a stray DELETE cannot silently
// drop a paid plan.
func (h *EntitlementHandler) CancelActive(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.ErrorResponse(c, http.StatusBadRequest, "cancellation requires confirm=true")
		return
	}

	err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelEntitlementCommand{
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *EntitlementHandler) ListHistory(c *gin.Context) {
	result, err := h.listEntitlementsUC.Execute(c.Request.Context(), usecases.ListEntitlementsCommand{
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
