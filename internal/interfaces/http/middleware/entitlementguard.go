package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kazihub-inc/kazihub/internal/application/entitlement/dto"
	"github.com/kazihub-inc/kazihub/internal/application/entitlement/usecases"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/cache"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
	"github.com/kazihub-inc/kazihub/internal/shared/utils"
)

// PremiumProjection is the read side of the premium flag cache.
type PremiumProjection interface {
	GetPremium(ctx context.Context, accountEmail string) (bool, error)
}

// AccessEvaluator evaluates full entitlement access for an account.
type AccessEvaluator interface {
	Execute(ctx context.Context, cmd usecases.EvaluateAccessCommand) (*dto.AccessDecision, error)
}

// EntitlementGuard gates premium routes. The cached projection answers the
// common case without touching the database; a cache miss falls through to
// the evaluator, which is the authoritative path and expires stale trials
// as a side effect.
type EntitlementGuard struct {
	projection PremiumProjection
	evaluator  AccessEvaluator
	logger     logger.Interface
}

func NewEntitlementGuard(projection PremiumProjection, evaluator AccessEvaluator, logger logger.Interface) *EntitlementGuard {
	return &EntitlementGuard{
		projection: projection,
		evaluator:  evaluator,
		logger:     logger,
	}
}

// RequireEntitlement gates a route group behind an active plan. feature is
// the user-facing name of what is being gated; it only shapes the denial
// payload.
func (g *EntitlementGuard) RequireEntitlement(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := AccountEmail(c)
		if email == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		premium, err := g.projection.GetPremium(c.Request.Context(), email)
		if err == nil {
			if premium {
				c.Next()
				return
			}
			// A cached negative can lag a fresh purchase, so re-check
			// before denying.
		} else if !errors.Is(err, cache.ErrProjectionMiss) {
			g.logger.Warnw("premium projection lookup failed", "account_email", email, "error", err)
		}

		decision, err := g.evaluator.Execute(c.Request.Context(), usecases.EvaluateAccessCommand{
			AccountEmail: email,
		})
		if err != nil {
			g.logger.Errorw("access evaluation failed", "account_email", email, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to evaluate access")
			c.Abort()
			return
		}

		if !decision.Allowed {
			g.logger.Debugw("premium access denied",
				"account_email", email,
				"feature", feature,
				"reason", decision.Reason,
			)
			c.JSON(http.StatusPaymentRequired, utils.APIResponse{
				Success: false,
				Data: denialPayload{
					Decision:    decision,
					Feature:     feature,
					Message:     denialMessage(feature, decision),
					UpgradeURL:  "/plans",
					Dismissible: decision.Reason != dto.ReasonTrialExpired,
				},
				Error: &utils.ErrorInfo{
					Type:    "payment_required",
					Message: "an active plan is required for this feature",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

type denialPayload struct {
	Decision    *dto.AccessDecision `json:"decision"`
	Feature     string              `json:"feature"`
	Message     string              `json:"message"`
	UpgradeURL  string              `json:"upgrade_url"`
	Dismissible bool                `json:"dismissible"`
}

func denialMessage(feature string, decision *dto.AccessDecision) string {
	if decision.Reason == dto.ReasonTrialExpired {
		return fmt.Sprintf("Your free trial of %s has ended. Choose a plan to keep using %s.", decision.ExpiredPlanID, feature)
	}
	return fmt.Sprintf("Upgrade to a paid plan to use %s.", feature)
}
