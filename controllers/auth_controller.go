package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

type AuthController struct {
	users     repository.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthController(users repository.UserRepository, jwtSecret string, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret, logger: logger}
}

type loginRequest struct {
	Email string          `json:"email" binding:"required,email"`
	Role  models.UserRole `json:"role" binding:"required"`
	Phone string          `json:"phone"`
}

// Login registers the user on first sight and issues a 24h token carrying
// id, email and role. The demo storefront lets the login screen pick the
// role, so a changed role is written back.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	switch req.Role {
	case models.RoleCustomer, models.RoleAdmin, models.RoleDeliveryAgent:
	default:
		apperrors.Abort(c, apperrors.ErrInvalidInput)
		return
	}

	ctx := c.Request.Context()

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			ID:    "u_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9],
			Name:  strings.Split(req.Email, "@")[0],
			Email: req.Email,
			Role:  req.Role,
			Phone: req.Phone,
		}
		if err := ac.users.Create(ctx, user); err != nil {
			ac.logger.Error("failed to create user", zap.Error(err))
			apperrors.Abort(c, apperrors.ErrInternalServer)
			return
		}
	} else if err != nil {
		ac.logger.Error("failed to look up user", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	} else if user.Role != req.Role {
		if err := ac.users.UpdateRole(ctx, user.ID, req.Role); err != nil {
			ac.logger.Error("failed to update user role", zap.Error(err))
			apperrors.Abort(c, apperrors.ErrInternalServer)
			return
		}
		user.Role = req.Role
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ac.jwtSecret))
	if err != nil {
		ac.logger.Error("failed to sign token", zap.Error(err))
		apperrors.Abort(c, apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
