package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

// PaymentConfirmer is the confirmation contract consumed by checkout.
// Implemented by PaymentPoller.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, phoneNumber string, amount int) (string, error)
}

// PrescriptionFile is an uploaded prescription document handed to the
// file-storage collaborator before any payment is initiated.
type PrescriptionFile struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

type CheckoutInput struct {
	Address      string
	Phone        string
	Notes        string
	Prescription *PrescriptionFile
	// PrescriptionURL may reference an already-stored document; a file in
	// Prescription takes precedence.
	PrescriptionURL string
}

// CheckoutService composes contact collection, the prescription gate,
// payment confirmation and order creation into a single transaction from
// the customer's point of view. Any failure before the order is persisted
// leaves the cart untouched and creates no order.
type CheckoutService struct {
	orders      repository.OrderRepository
	carts       repository.CartStore
	payments    PaymentConfirmer
	storage     FileStorage
	events      EventPublisher
	sms         SMSSender
	deliveryFee int
	logger      *zap.Logger

	// active maps a customer id to the token of their in-flight checkout
	// attempt. One attempt per customer; the token is re-checked at
	// finalization so a superseded attempt can never create an order.
	active sync.Map
}

func NewCheckoutService(
	orders repository.OrderRepository,
	carts repository.CartStore,
	payments PaymentConfirmer,
	storage FileStorage,
	events EventPublisher,
	sms SMSSender,
	deliveryFee int,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:      orders,
		carts:       carts,
		payments:    payments,
		storage:     storage,
		events:      events,
		sms:         sms,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, customerID string, input CheckoutInput) (*models.Order, error) {
	if input.Address == "" || input.Phone == "" {
		return nil, apperrors.ErrInvalidInput
	}

	cart, err := s.carts.GetCart(ctx, customerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	prescriptionURL := input.PrescriptionURL
	if input.Prescription != nil {
		url, err := s.storage.Store(ctx, input.Prescription.Name, input.Prescription.ContentType, input.Prescription.Reader)
		if err != nil {
			// Nothing has been charged yet; abort cleanly.
			return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
		}
		prescriptionURL = url
	}
	if cart.NeedsPrescription() && prescriptionURL == "" {
		return nil, apperrors.ErrPrescriptionRequired
	}

	token := uuid.NewString()
	if _, busy := s.active.LoadOrStore(customerID, token); busy {
		return nil, apperrors.ErrCheckoutInProgress
	}
	defer s.active.CompareAndDelete(customerID, token)

	// An abandoned request releases the claim the moment its context is
	// cancelled, so the customer can retry immediately. The token re-check
	// below then refuses this attempt if its confirmation still lands.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			s.active.CompareAndDelete(customerID, token)
		case <-watchDone:
		}
	}()

	totalAmount := cart.Total() + s.deliveryFee

	checkoutRequestID, err := s.payments.Confirm(ctx, input.Phone, totalAmount)
	if err != nil {
		return nil, err
	}

	// The payment cleared, but only the attempt that is still registered may
	// finalize: a cancelled or timed-out checkout whose payment lands late
	// must not materialize an order behind the customer's back.
	if current, ok := s.active.Load(customerID); !ok || current != token {
		s.logger.Warn("payment confirmed for a superseded checkout attempt; order not created",
			zap.String("user_id", customerID),
			zap.String("checkout_request_id", checkoutRequestID),
		)
		return nil, apperrors.ErrCheckoutInProgress
	}

	order := &models.Order{
		ID:                "ord_" + uuid.NewString(),
		UserID:            customerID,
		Items:             snapshotItems(cart.Items),
		TotalAmount:       totalAmount,
		Status:            models.OrderPending,
		Date:              time.Now(),
		PaymentMethod:     "MPESA",
		ShippingAddress:   input.Address,
		Notes:             input.Notes,
		PrescriptionImage: prescriptionURL,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Money has moved. This must never be swallowed.
		s.logger.Error("payment captured but order persistence failed",
			zap.String("user_id", customerID),
			zap.String("checkout_request_id", checkoutRequestID),
			zap.Int("amount", totalAmount),
			zap.Error(err),
		)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.carts.DeleteCart(ctx, customerID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("user_id", customerID),
			zap.Error(err),
		)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", customerID),
		zap.Int("total_amount", totalAmount),
	)

	s.publish(ctx, models.OrderEvent{
		Event:     models.EventOrderCreated,
		OrderID:   order.ID,
		UserID:    customerID,
		Status:    order.Status,
		Timestamp: time.Now(),
	})
	s.notify(ctx, input.Phone, order)

	return order, nil
}

func (s *CheckoutService) publish(ctx context.Context, event models.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("order event publish failed",
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}

func (s *CheckoutService) notify(ctx context.Context, phone string, order *models.Order) {
	if s.sms == nil {
		return
	}
	msg := fmt.Sprintf("AfyaBora: order %s confirmed, total KSh %d. We will notify you when it ships.",
		order.ID, order.TotalAmount)
	if _, err := s.sms.SendSMS(ctx, phone, msg); err != nil {
		s.logger.Warn("order confirmation SMS failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}

func snapshotItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Category:  item.Category,
			ImageURL:  item.ImageURL,
		})
	}
	return out
}
