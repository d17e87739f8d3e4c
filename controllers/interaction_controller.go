package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/services"
)

type InteractionController struct {
	interactions *services.InteractionService
}

func NewInteractionController(interactions *services.InteractionService) *InteractionController {
	return &InteractionController{interactions: interactions}
}

type interactionRequest struct {
	Medicines []string `json:"medicines" binding:"required"`
}

// Check runs the advisory drug-interaction rules over the given medicine
// names.
func (ic *InteractionController) Check(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}
	c.JSON(http.StatusOK, ic.interactions.Check(req.Medicines))
}
