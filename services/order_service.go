package services

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

type OrderResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// agentVisibleStatuses is what the delivery dashboard shows: active work
// plus the completed-assignment audit trail.
var agentVisibleStatuses = []models.OrderStatus{
	models.OrderProcessing,
	models.OrderShipped,
	models.OrderDelivered,
}

// OrderService serves the role-scoped read views over the order store.
type OrderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// GetUserOrders retrieves paginated orders for a specific customer,
// newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderResponse, error) {
	orders, total, err := s.orders.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("failed to fetch user orders", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &OrderResponse{
		Orders: orders,
		Meta:   buildMeta(page, limit, total),
	}, nil
}

// GetAllOrders retrieves paginated orders across all customers (admin
// view), newest first.
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderResponse, error) {
	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("failed to fetch all orders", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &OrderResponse{
		Orders: orders,
		Meta:   buildMeta(page, limit, total),
	}, nil
}

// GetAgentOrders retrieves the orders currently assigned to a delivery
// agent, restricted to Processing, Shipped and Delivered.
func (s *OrderService) GetAgentOrders(ctx context.Context, agentID string) ([]models.Order, error) {
	orders, err := s.orders.FindByAgentID(ctx, agentID, agentVisibleStatuses)
	if err != nil {
		s.logger.Error("failed to fetch agent orders", zap.String("agent_id", agentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return orders, nil
}

// GetOrder returns a single order, visible to its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, actor models.Identity, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if order.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

func buildMeta(page, limit int, total int64) MetaData {
	return MetaData{
		Page:        page,
		Limit:       limit,
		TotalOrders: total,
		TotalPages:  calculateTotalPages(total, limit),
		HasMore:     total > int64(page*limit),
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
