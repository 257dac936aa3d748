// Package gateway holds settlement gateway implementations. The demo ships
// with a simulated gateway; a real PSP integration would live here too.
package gateway

import (
	"context"
	"time"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/usecases"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// SimulatedGateway approves every settlement after an artificial processing
// delay, so the UI's "Settling" state is observable.
type SimulatedGateway struct {
	delay  time.Duration
	logger logger.Interface
}

func NewSimulatedGateway(delay time.Duration, logger logger.Interface) *SimulatedGateway {
	return &SimulatedGateway{
		delay:  delay,
		logger: logger,
	}
}

func (g *SimulatedGateway) Settle(ctx context.Context, req usecases.SettlementRequest) error {
	g.logger.Infow("simulating settlement",
		"checkout_sid", req.CheckoutSID,
		"method", req.Method.String(),
		"amount_cents", req.AmountCents,
	)

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return nil
}
