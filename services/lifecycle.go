package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

// EventPublisher emits order events to the event stream. Publishing is
// best-effort; a nil publisher disables it.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

// transitionRoles is the single source of truth for which role may move an
// order along which edge. Every status-update request is authorized here
// and nowhere else. Admin deliberately retains the delivery-agent edges:
// the storefront has always let an admin both approve and perform
// deliveries, and that dual authority is kept as explicit policy.
var transitionRoles = map[models.OrderStatus]map[models.OrderStatus][]models.UserRole{
	models.OrderPending: {
		models.OrderProcessing: {models.RoleAdmin},
		models.OrderCancelled:  {models.RoleAdmin},
	},
	models.OrderProcessing: {
		models.OrderShipped:   {models.RoleDeliveryAgent, models.RoleAdmin},
		models.OrderCancelled: {models.RoleAdmin},
	},
	models.OrderShipped: {
		models.OrderDelivered: {models.RoleDeliveryAgent, models.RoleAdmin},
	},
}

// assignableStatuses are the only statuses in which an admin may set or
// overwrite the delivery agent.
var assignableStatuses = []models.OrderStatus{models.OrderPending, models.OrderProcessing}

// LifecycleService enforces the order state machine and the role required
// for each transition.
type LifecycleService struct {
	orders repository.OrderRepository
	events EventPublisher
	logger *zap.Logger
}

func NewLifecycleService(orders repository.OrderRepository, events EventPublisher, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		orders: orders,
		events: events,
		logger: logger,
	}
}

// UpdateStatus moves an order to the requested status on behalf of actor.
// Concurrent attempts on the same order are first-committed-wins: the
// loser's expected source status no longer matches and it gets
// ErrInvalidTransition, with the order left unchanged.
func (s *LifecycleService) UpdateStatus(ctx context.Context, actor models.Identity, orderID string, to models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	roles, ok := transitionRoles[order.Status][to]
	if !ok {
		return nil, apperrors.ErrInvalidTransition
	}
	if !roleAllowed(roles, actor.Role) {
		return nil, apperrors.ErrForbidden
	}
	if actor.Role == models.RoleDeliveryAgent && order.DeliveryAgentID != actor.ID {
		// Agents act only on orders currently assigned to them.
		return nil, apperrors.ErrForbidden
	}

	if err := s.orders.UpdateStatusFrom(ctx, orderID, order.Status, to); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.ErrInvalidTransition
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)),
		zap.String("actor", actor.ID),
		zap.String("role", string(actor.Role)),
	)
	s.publish(ctx, models.OrderEvent{
		Event:     models.EventOrderStatusChanged,
		OrderID:   orderID,
		UserID:    order.UserID,
		Status:    to,
		Timestamp: time.Now(),
	})

	order.Status = to
	return order, nil
}

// AssignAgent sets (or overwrites) the delivery agent for an order. Admin
// only, and only while the order is still Pending or Processing.
func (s *LifecycleService) AssignAgent(ctx context.Context, actor models.Identity, orderID, agentID string) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	if agentID == "" {
		return apperrors.ErrInvalidInput
	}

	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return notFoundOr(err)
	}

	if err := s.orders.AssignAgent(ctx, orderID, agentID, assignableStatuses); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return apperrors.ErrInvalidTransition
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.logger.Info("delivery agent assigned",
		zap.String("order_id", orderID),
		zap.String("agent_id", agentID),
	)
	return nil
}

func (s *LifecycleService) publish(ctx context.Context, event models.OrderEvent) {
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

func roleAllowed(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
