package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/shared/utils"
)

// respondDomainError translates domain sentinels into HTTP statuses. Anything
// unrecognized falls through to the generic AppError mapping.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entitlement.ErrNotAuthenticated):
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, entitlement.ErrTrialAlreadyUsed):
		utils.ErrorResponse(c, http.StatusConflict, "trial already used for this plan")
	case errors.Is(err, entitlement.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "no active plan found")
	case errors.Is(err, entitlement.ErrNotActive):
		utils.ErrorResponse(c, http.StatusConflict, "plan is no longer active")
	case errors.Is(err, checkout.ErrDraftNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "checkout session not found")
	case errors.Is(err, checkout.ErrDraftExpired):
		utils.ErrorResponse(c, http.StatusGone, "checkout session expired")
	case errors.Is(err, checkout.ErrNotOwner):
		utils.ErrorResponse(c, http.StatusForbidden, "checkout session belongs to another account")
	case strings.HasPrefix(err.Error(), "unknown plan"):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case strings.HasPrefix(err.Error(), "invalid billing cycle"):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case strings.Contains(err.Error(), "in state "),
		strings.Contains(err.Error(), "settlement already in progress"):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		utils.ErrorResponseWithError(c, err)
	}
}
