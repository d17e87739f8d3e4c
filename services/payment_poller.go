package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
)

// PaymentPoller confirms a mobile-money charge by initiating it and then
// polling the gateway until it completes, fails, or the wall-clock budget
// runs out. One call owns both the repeating check and the deadline; a
// single context cancellation stops everything.
type PaymentPoller struct {
	gateway  PaymentGateway
	interval time.Duration
	budget   time.Duration
	logger   *zap.Logger
}

func NewPaymentPoller(gateway PaymentGateway, interval, budget time.Duration, logger *zap.Logger) *PaymentPoller {
	return &PaymentPoller{
		gateway:  gateway,
		interval: interval,
		budget:   budget,
		logger:   logger,
	}
}

// Confirm initiates the charge and blocks until a terminal outcome. It
// returns the checkout request id in all cases so the caller can reference
// the transaction, plus:
//
//   - nil when the gateway reports COMPLETED
//   - apperrors.ErrPaymentFailed when it reports FAILED
//   - apperrors.ErrPaymentTimeout when the budget elapses while PENDING;
//     the payment may still land out-of-band, which is why this is a
//     distinct outcome from failure
//
// Polling is the detection mechanism for an inherently asynchronous state
// change, not a retry scheme; there are no retries beyond the interval.
func (p *PaymentPoller) Confirm(ctx context.Context, phoneNumber string, amount int) (string, error) {
	checkoutRequestID, err := p.gateway.InitiateSTKPush(ctx, phoneNumber, amount)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrPaymentFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.budget)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				p.logger.Warn("payment confirmation timed out",
					zap.String("checkout_request_id", checkoutRequestID),
				)
				return checkoutRequestID, apperrors.ErrPaymentTimeout
			}
			return checkoutRequestID, ctx.Err()

		case <-ticker.C:
			status, err := p.gateway.QueryStatus(ctx, checkoutRequestID)
			if err != nil {
				// Transient query error; the deadline bounds how long we keep
				// trying.
				p.logger.Warn("payment status query failed",
					zap.String("checkout_request_id", checkoutRequestID),
					zap.Error(err),
				)
				continue
			}

			switch status {
			case models.TransactionCompleted:
				p.logger.Info("payment confirmed",
					zap.String("checkout_request_id", checkoutRequestID),
				)
				return checkoutRequestID, nil
			case models.TransactionFailed:
				return checkoutRequestID, apperrors.ErrPaymentFailed
			}
			// Still PENDING; keep polling.
		}
	}
}
