package handlers

import (
	"github.com/gin-gonic/gin"

	planUsecases "github.com/kazihub-inc/kazihub/internal/application/plan/usecases"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/middleware"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
	"github.com/kazihub-inc/kazihub/internal/shared/utils"
)

type PlanHandler struct {
	catalog *plan.Catalog
	cycleUC *planUsecases.CyclePreferenceUseCase
	logger  logger.Interface
}

func NewPlanHandler(catalog *plan.Catalog, cycleUC *planUsecases.CyclePreferenceUseCase) *PlanHandler {
	return &PlanHandler{
		catalog: catalog,
		cycleUC: cycleUC,
		logger:  logger.NewLogger(),
	}
}

// PlanResponse is the public view of a catalog plan. Prices are KES cents.
type PlanResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	MonthlyCents int64    `json:"monthly_cents"`
	AnnualCents  int64    `json:"annual_cents"`
	Audience     string   `json:"audience"`
	Benefits     []string `json:"benefits"`
}

type SetCyclePreferenceRequest struct {
	Cycle string `json:"cycle" validate:"required,oneof=monthly annual"`
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans := h.catalog.List()

	response := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		response = append(response, PlanResponse{
			ID:           p.ID(),
			Title:        p.Title(),
			MonthlyCents: p.MonthlyCents(),
			AnnualCents:  p.AnnualCents(),
			Audience:     string(p.Audience()),
			Benefits:     p.Benefits(),
		})
	}

	utils.OKResponse(c, response)
}

func (h *PlanHandler) GetCyclePreference(c *gin.Context) {
	cycle, err := h.cycleUC.Get(c.Request.Context(), middleware.AccountEmail(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"cycle": cycle})
}

func (h *PlanHandler) SetCyclePreference(c *gin.Context) {
	var req SetCyclePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for cycle preference", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.cycleUC.Set(c.Request.Context(), planUsecases.SetCyclePreferenceCommand{
		AccountEmail: middleware.AccountEmail(c),
		Cycle:        req.Cycle,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"cycle": req.Cycle}, "Billing cycle preference saved")
}
