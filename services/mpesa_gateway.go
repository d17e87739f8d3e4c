package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

// PaymentGateway is the contract the payment poller consumes. The real
// network is represented here by MpesaGateway, which simulates the
// customer authorizing the charge on their phone.
type PaymentGateway interface {
	InitiateSTKPush(ctx context.Context, phoneNumber string, amount int) (string, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (models.TransactionStatus, error)
}

// MpesaGateway simulates an STK-push mobile-money gateway: initiating a
// charge creates a PENDING transaction and schedules its completion after
// a fixed delay, the way a real callback would arrive whether or not
// anyone is polling.
type MpesaGateway struct {
	transactions    repository.TransactionRepository
	completionDelay time.Duration
	logger          *zap.Logger
}

func NewMpesaGateway(transactions repository.TransactionRepository, completionDelay time.Duration, logger *zap.Logger) *MpesaGateway {
	return &MpesaGateway{
		transactions:    transactions,
		completionDelay: completionDelay,
		logger:          logger,
	}
}

func (g *MpesaGateway) InitiateSTKPush(ctx context.Context, phoneNumber string, amount int) (string, error) {
	checkoutRequestID := newCheckoutRequestID()

	tx := &models.Transaction{
		CheckoutRequestID: checkoutRequestID,
		PhoneNumber:       phoneNumber,
		Amount:            amount,
		Status:            models.TransactionPending,
		Date:              time.Now(),
	}
	if err := g.transactions.Create(ctx, tx); err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	// The simulated customer enters their PIN after the delay. The timer is
	// bound to the transaction id and goes through the same compare-and-set
	// discipline as any other transition, so it is safe to fire even if the
	// transaction is never queried again, and it cannot complete twice.
	time.AfterFunc(g.completionDelay, func() {
		g.complete(checkoutRequestID)
	})

	g.logger.Info("STK push initiated",
		zap.String("checkout_request_id", checkoutRequestID),
		zap.Int("amount", amount),
	)
	return checkoutRequestID, nil
}

func (g *MpesaGateway) complete(checkoutRequestID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := g.transactions.Transition(ctx, checkoutRequestID, models.TransactionPending, models.TransactionCompleted)
	if errors.Is(err, repository.ErrConflict) {
		// Already terminal; nothing to do.
		return
	}
	if err != nil {
		g.logger.Error("failed to complete simulated payment",
			zap.String("checkout_request_id", checkoutRequestID),
			zap.Error(err),
		)
		return
	}
	g.logger.Info("simulated M-Pesa payment success",
		zap.String("checkout_request_id", checkoutRequestID),
	)
}

func (g *MpesaGateway) QueryStatus(ctx context.Context, checkoutRequestID string) (models.TransactionStatus, error) {
	tx, err := g.transactions.FindByID(ctx, checkoutRequestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return tx.Status, nil
}

func newCheckoutRequestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return fmt.Sprintf("ws_CO_%d%s", time.Now().UnixMilli(), suffix)
}
