package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/usecases"
	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/middleware"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
	"github.com/kazihub-inc/kazihub/internal/shared/utils"
)

type CheckoutHandler struct {
	beginUC         *usecases.BeginCheckoutUseCase
	selectMethodUC  *usecases.SelectMethodUseCase
	submitDetailsUC *usecases.SubmitDetailsUseCase
	confirmUC       *usecases.ConfirmCheckoutUseCase
	retryUC         *usecases.RetryCheckoutUseCase
	getUC           *usecases.GetCheckoutUseCase
	abandonUC       *usecases.AbandonCheckoutUseCase
	logger          logger.Interface
}

func NewCheckoutHandler(
	beginUC *usecases.BeginCheckoutUseCase,
	selectMethodUC *usecases.SelectMethodUseCase,
	submitDetailsUC *usecases.SubmitDetailsUseCase,
	confirmUC *usecases.ConfirmCheckoutUseCase,
	retryUC *usecases.RetryCheckoutUseCase,
	getUC *usecases.GetCheckoutUseCase,
	abandonUC *usecases.AbandonCheckoutUseCase,
) *CheckoutHandler {
	return &CheckoutHandler{
		beginUC:         beginUC,
		selectMethodUC:  selectMethodUC,
		submitDetailsUC: submitDetailsUC,
		confirmUC:       confirmUC,
		retryUC:         retryUC,
		getUC:           getUC,
		abandonUC:       abandonUC,
		logger:          logger.NewLogger(),
	}
}

type BeginCheckoutRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
	Cycle  string `json:"cycle" validate:"required,oneof=monthly annual"`
}

type SelectMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// SubmitDetailsRequest carries the payment form. Which fields matter depends
// on the selected method; the domain decides, not the binding layer.
type SubmitDetailsRequest struct {
	Phone string `json:"phone"`

	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`

	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Email      string `json:"email"`

	WalletEmail string `json:"wallet_email"`

	CryptoPayload string `json:"crypto_payload"`
}

func (h *CheckoutHandler) Begin(c *gin.Context) {
	var req BeginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for begin checkout", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.beginUC.Execute(c.Request.Context(), usecases.BeginCheckoutCommand{
		AccountEmail: middleware.AccountEmail(c),
		PlanID:       req.PlanID,
		Cycle:        req.Cycle,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Checkout session opened")
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetCheckoutCommand{
		CheckoutSID:  c.Param("sid"),
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *CheckoutHandler) SelectMethod(c *gin.Context) {
	var req SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for select method", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.selectMethodUC.Execute(c.Request.Context(), usecases.SelectMethodCommand{
		CheckoutSID:  c.Param("sid"),
		AccountEmail: middleware.AccountEmail(c),
		Method:       req.Method,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// SubmitDetails validates the payment form. Field problems come back as a
// 200 with field_errors populated; the session stays on the details step.
func (h *CheckoutHandler) SubmitDetails(c *gin.Context) {
	var req SubmitDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for submit details", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitDetailsUC.Execute(c.Request.Context(), usecases.SubmitDetailsCommand{
		CheckoutSID:   c.Param("sid"),
		AccountEmail:  middleware.AccountEmail(c),
		Phone:         req.Phone,
		CardName:      req.CardName,
		CardNumber:    req.CardNumber,
		CardExpiry:    req.CardExpiry,
		CardCVV:       req.CardCVV,
		FullName:      req.FullName,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Email:         req.Email,
		WalletEmail:   req.WalletEmail,
		CryptoPayload: req.CryptoPayload,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *CheckoutHandler) Confirm(c *gin.Context) {
	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmCheckoutCommand{
		CheckoutSID:  c.Param("sid"),
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if result.State == checkout.StateSucceeded.String() {
		utils.OKResponse(c, gin.H{
			"checkout":    result,
			"redirect_to": dashboardPath,
		})
		return
	}

	utils.OKResponse(c, result)
}

func (h *CheckoutHandler) Retry(c *gin.Context) {
	result, err := h.retryUC.Execute(c.Request.Context(), usecases.RetryCheckoutCommand{
		CheckoutSID:  c.Param("sid"),
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *CheckoutHandler) Abandon(c *gin.Context) {
	err := h.abandonUC.Execute(c.Request.Context(), usecases.AbandonCheckoutCommand{
		CheckoutSID:  c.Param("sid"),
		AccountEmail: middleware.AccountEmail(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
