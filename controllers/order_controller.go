package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/middleware"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
	"github.com/Jayden7895/afyabora-app/services"
)

// LifecycleAPI is the transition surface this controller drives.
type LifecycleAPI interface {
	UpdateStatus(ctx context.Context, actor models.Identity, orderID string, to models.OrderStatus) (*models.Order, error)
	AssignAgent(ctx context.Context, actor models.Identity, orderID, agentID string) error
}

// OrderQueryAPI serves the role-scoped read views.
type OrderQueryAPI interface {
	GetUserOrders(ctx context.Context, userID string, page, limit int) (*services.OrderResponse, error)
	GetAllOrders(ctx context.Context, page, limit int) (*services.OrderResponse, error)
	GetAgentOrders(ctx context.Context, agentID string) ([]models.Order, error)
	GetOrder(ctx context.Context, actor models.Identity, orderID string) (*models.Order, error)
}

type OrderController struct {
	lifecycle LifecycleAPI
	orders    OrderQueryAPI
	users     repository.UserRepository
	logger    *zap.Logger
}

func NewOrderController(lifecycle LifecycleAPI, orders OrderQueryAPI, users repository.UserRepository, logger *zap.Logger) *OrderController {
	return &OrderController{
		lifecycle: lifecycle,
		orders:    orders,
		users:     users,
		logger:    logger,
	}
}

// GetOrders returns the authenticated customer's own orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	page, limit := parsePaginationParams(c)
	result, err := oc.orders.GetUserOrders(c.Request.Context(), identity.ID, page, limit)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetOrderByID returns one order, visible to its owner or an admin.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	order, err := oc.orders.GetOrder(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetAllOrders returns every order (admin view), newest first.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)
	result, err := oc.orders.GetAllOrders(c.Request.Context(), page, limit)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDeliveryOrders returns the orders assigned to the authenticated
// delivery agent.
func (oc *OrderController) GetDeliveryOrders(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	orders, err := oc.orders.GetAgentOrders(c.Request.Context(), identity.ID)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus moves an order along the lifecycle table on behalf of the
// authenticated admin or delivery agent.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	order, err := oc.lifecycle.UpdateStatus(c.Request.Context(), identity, c.Param("id"), req.Status)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type assignAgentRequest struct {
	AgentID string `json:"agentId" binding:"required"`
}

// AssignAgent sets the delivery agent for an order (admin only).
func (oc *OrderController) AssignAgent(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	var req assignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	if err := oc.lifecycle.AssignAgent(c.Request.Context(), identity, c.Param("id"), req.AgentID); err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListAgents returns the delivery agents an admin can assign orders to.
func (oc *OrderController) ListAgents(c *gin.Context) {
	agents, err := oc.users.FindByRole(c.Request.Context(), models.RoleDeliveryAgent)
	if err != nil {
		oc.logger.Error("failed to list delivery agents", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, agents)
}

// parsePaginationParams extracts and validates pagination parameters
func parsePaginationParams(c *gin.Context) (int, int) {
	const maxLimit = 100

	page, limit := 1, 10
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limit = l
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	return page, limit
}
