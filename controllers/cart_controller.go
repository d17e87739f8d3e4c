package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/middleware"
	"github.com/Jayden7895/afyabora-app/services"
)

type CartController struct {
	cart   *services.CartService
	logger *zap.Logger
}

func NewCartController(cart *services.CartService, logger *zap.Logger) *CartController {
	return &CartController{cart: cart, logger: logger}
}

func (cc *CartController) GetCart(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	cart, err := cc.cart.GetCart(c.Request.Context(), identity.ID)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (cc *CartController) AddItem(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	cart, err := cc.cart.AddItem(c.Request.Context(), identity.ID, req.ProductID, req.Quantity)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	cart, err := cc.cart.RemoveItem(c.Request.Context(), identity.ID, c.Param("productId"))
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	if err := cc.cart.ClearCart(c.Request.Context(), identity.ID); err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

type wishlistToggleRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (cc *CartController) ToggleWishlist(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
		return
	}

	var req wishlistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	wishlist, err := cc.cart.ToggleWishlist(c.Request.Context(), identity.ID, req.ProductID)
	if err != nil {
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}
