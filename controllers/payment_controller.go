package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/services"
)

// PaymentController exposes the gateway simulator directly: initiate an
// STK push and query its status. Checkout drives the same gateway through
// the poller; these endpoints exist for clients that poll themselves.
type PaymentController struct {
	gateway services.PaymentGateway
	logger  *zap.Logger
}

func NewPaymentController(gateway services.PaymentGateway, logger *zap.Logger) *PaymentController {
	return &PaymentController{gateway: gateway, logger: logger}
}

type stkPushRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Amount      int    `json:"amount" binding:"required,min=1"`
}

func (pc *PaymentController) InitiateSTKPush(c *gin.Context) {
	var req stkPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	checkoutRequestID, err := pc.gateway.InitiateSTKPush(c.Request.Context(), req.PhoneNumber, req.Amount)
	if err != nil {
		pc.logger.Error("failed to initiate STK push", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           "CustomerMpesaToBusiness STK Push initiated",
		"checkoutRequestId": checkoutRequestID,
	})
}

func (pc *PaymentController) QueryStatus(c *gin.Context) {
	status, err := pc.gateway.QueryStatus(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		if appErr, ok := err.(*apperrors.Error); ok && appErr.Code == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"status": "NOT_FOUND"})
			return
		}
		apperrors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
